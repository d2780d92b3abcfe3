package team

import (
	"club-api/core/database"
	"club-api/core/middleware"
	"club-api/core/realtime"
	eventRepository "club-api/modules/event/repository"
	"club-api/modules/team/controller"
	"club-api/modules/team/repository"
	"club-api/modules/team/router"
	"club-api/modules/team/service"
	"time"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, hub *realtime.Hub, loc *time.Location) {
	repo := repository.NewTeamRepository(db)
	events := eventRepository.NewEventRepository(db)
	svc := service.NewTeamService(repo, events, loc)
	ctrl := controller.NewTeamController(svc, hub)
	rtr := router.NewTeamRouter(ctrl)

	rtr.Setup(e, mw)
}
