package coach

import (
	"club-api/core/database"
	"club-api/core/middleware"
	"club-api/modules/coach/controller"
	"club-api/modules/coach/repository"
	"club-api/modules/coach/router"
	"club-api/modules/coach/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, store service.ObjectStore) {
	repo := repository.NewCoachRepository(db)
	svc := service.NewCoachService(repo, store)
	ctrl := controller.NewCoachController(svc)
	rtr := router.NewCoachRouter(ctrl)

	rtr.Setup(e, mw)
}
