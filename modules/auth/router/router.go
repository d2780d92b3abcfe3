package router

import (
	"club-api/core/constants"
	"club-api/core/middleware"
	"club-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

var roles = []string{constants.RoleAdmin, constants.RoleCoach, constants.RolePlayer, constants.RoleParent}

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	for _, role := range roles {
		g := v1.Group("/" + role + "/auth")
		g.POST("/login", r.AuthController.Login(role))
		g.POST("/forgot-password", r.AuthController.ForgotPassword(role))
		g.POST("/verify-otp", r.AuthController.VerifyOTP(role))
		g.POST("/reset-password", r.AuthController.ResetPassword(role))
	}

	authRoutes := v1.Group("/auth")
	authRoutes.POST("/refresh", r.AuthController.RefreshToken)
	authRoutes.POST("/logout", r.AuthController.Logout, mw.AuthMiddleware())
}
