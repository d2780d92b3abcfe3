package auth

import (
	"club-api/core/cache"
	"club-api/core/database"
	"club-api/core/middleware"
	"club-api/core/worker"
	"club-api/modules/auth/controller"
	"club-api/modules/auth/repository"
	"club-api/modules/auth/router"
	"club-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware, mailer worker.Enqueuer) {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, c, mailer)
	ctrl := controller.NewAuthController(svc)

	router.NewAuthRouter(ctrl).Setup(e, mw)
}
