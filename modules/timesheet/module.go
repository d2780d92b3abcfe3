package timesheet

import (
	"club-api/core/database"
	"club-api/core/middleware"
	eventRepository "club-api/modules/event/repository"
	"club-api/modules/timesheet/controller"
	"club-api/modules/timesheet/repository"
	"club-api/modules/timesheet/router"
	"club-api/modules/timesheet/service"
	"time"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, loc *time.Location) {
	events := eventRepository.NewEventRepository(db)
	repo := repository.NewTimesheetRepository(db)
	svc := service.NewTimesheetService(events, repo, loc)
	ctrl := controller.NewTimesheetController(svc)
	rtr := router.NewTimesheetRouter(ctrl)

	rtr.Setup(e, mw)
}
