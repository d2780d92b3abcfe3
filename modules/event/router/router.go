package router

import (
	"club-api/core/constants"
	"club-api/core/middleware"
	"club-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	adminRoutes := v1.Group("/admin/events", mw.AuthMiddleware(constants.RoleAdmin))
	adminRoutes.POST("", r.EventController.CreateEvent)
	adminRoutes.GET("", r.EventController.GetEvents)
	adminRoutes.GET("/:id", r.EventController.GetEvent)
	adminRoutes.PUT("/:id", r.EventController.UpdateEvent)
	adminRoutes.PATCH("/:id/coaches", r.EventController.UpdateEventCoaches)
	adminRoutes.DELETE("/:id", r.EventController.DeleteEvent)

	coachRoutes := v1.Group("/coach/events", mw.AuthMiddleware(constants.RoleCoach))
	coachRoutes.POST("", r.EventController.CreateEvent)
	coachRoutes.GET("", r.EventController.GetEvents)
	coachRoutes.GET("/:id", r.EventController.GetEvent)
	coachRoutes.PATCH("/:id", r.EventController.UpdateEvent)
	coachRoutes.DELETE("/:id", r.EventController.DeleteEvent)
}
