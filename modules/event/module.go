package event

import (
	"club-api/core/database"
	"club-api/core/middleware"
	"club-api/core/realtime"
	"club-api/modules/event/controller"
	"club-api/modules/event/repository"
	"club-api/modules/event/router"
	"club-api/modules/event/service"
	"time"

	"github.com/labstack/echo/v4"
)

// Init registers the event routes and returns the service so the worker can
// build daily digests from it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, hub realtime.Publisher, loc *time.Location) service.EventServiceInterface {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, hub, loc)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
