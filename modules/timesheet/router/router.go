package router

import (
	"club-api/core/constants"
	"club-api/core/middleware"
	"club-api/modules/timesheet/controller"

	"github.com/labstack/echo/v4"
)

type TimesheetRouter struct {
	TimesheetController *controller.TimesheetController
}

func NewTimesheetRouter(timesheetController *controller.TimesheetController) *TimesheetRouter {
	return &TimesheetRouter{TimesheetController: timesheetController}
}

func (r *TimesheetRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/admin/events/timesheet", r.TimesheetController.AdminTimesheet, mw.AuthMiddleware(constants.RoleAdmin))
	v1.GET("/coach/events/timesheet", r.TimesheetController.CoachTimesheet, mw.AuthMiddleware(constants.RoleCoach))
	v1.GET("/player/team", r.TimesheetController.PlayerTeam, mw.AuthMiddleware(constants.RolePlayer))
	v1.GET("/parent/players/:playerId/dashboard", r.TimesheetController.ParentDashboard, mw.AuthMiddleware(constants.RoleParent))
}
