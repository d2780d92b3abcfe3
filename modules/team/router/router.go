package router

import (
	"club-api/core/constants"
	"club-api/core/middleware"
	"club-api/modules/team/controller"

	"github.com/labstack/echo/v4"
)

type TeamRouter struct {
	TeamController *controller.TeamController
}

func NewTeamRouter(teamController *controller.TeamController) *TeamRouter {
	return &TeamRouter{TeamController: teamController}
}

func (r *TeamRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	adminRoutes := v1.Group("/admin/teams", mw.AuthMiddleware(constants.RoleAdmin))
	adminRoutes.POST("", r.TeamController.CreateTeam)
	adminRoutes.GET("", r.TeamController.GetTeams)
	adminRoutes.GET("/:id", r.TeamController.GetTeam)
	adminRoutes.PUT("/:id", r.TeamController.UpdateTeam)
	adminRoutes.DELETE("/:id", r.TeamController.DeleteTeam)

	// Public: calendar apps cannot send bearer tokens.
	v1.GET("/teams/:code/calendar.ics", r.TeamController.CalendarFeed)

	v1.GET("/ws/teams/:id", r.TeamController.Subscribe, mw.AuthMiddleware())
}
