package router

import (
	"club-api/core/constants"
	"club-api/core/middleware"
	"club-api/modules/coach/controller"

	"github.com/labstack/echo/v4"
)

type CoachRouter struct {
	CoachController *controller.CoachController
}

func NewCoachRouter(coachController *controller.CoachController) *CoachRouter {
	return &CoachRouter{CoachController: coachController}
}

func (r *CoachRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	coachRoutes := v1.Group("/coach/profile", mw.AuthMiddleware(constants.RoleCoach))
	coachRoutes.GET("", r.CoachController.GetProfile)
	coachRoutes.PUT("/picture", r.CoachController.UpdateProfilePicture)
}
