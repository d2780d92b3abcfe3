package controller

import (
	"club-api/core/controller"
	"club-api/core/errors"
	"club-api/core/utils"
	"club-api/modules/auth/dto"
	"club-api/modules/auth/service"
	"club-api/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

// AuthController handlers that depend on the account type are built per role,
// one set for each of /admin, /coach, /player and /parent.
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

func (ctrl *AuthController) Login(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(dto.LoginRequest)
		if err := c.Bind(req); err != nil {
			return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
		}
		if result := validator.ValidateLoginRequest(req); result.HasError() {
			return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
		}

		resp, appErr := ctrl.AuthService.Login(c.Request().Context(), role, req)
		if appErr != nil {
			return ctrl.ErrorResponse(c, appErr)
		}
		return ctrl.SuccessResponse(c, resp, "Login successful")
	}
}

func (ctrl *AuthController) ForgotPassword(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(dto.ForgotPasswordRequest)
		if err := c.Bind(req); err != nil {
			return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
		}
		if result := validator.ValidateForgotPasswordRequest(req); result.HasError() {
			return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
		}

		if appErr := ctrl.AuthService.ForgotPassword(c.Request().Context(), role, req); appErr != nil {
			return ctrl.ErrorResponse(c, appErr)
		}
		return ctrl.SuccessResponse(c, nil, "OTP sent to your email")
	}
}

func (ctrl *AuthController) VerifyOTP(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(dto.VerifyOTPRequest)
		if err := c.Bind(req); err != nil {
			return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
		}
		if result := validator.ValidateVerifyOTPRequest(req); result.HasError() {
			return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
		}

		resp, appErr := ctrl.AuthService.VerifyOTP(c.Request().Context(), role, req)
		if appErr != nil {
			return ctrl.ErrorResponse(c, appErr)
		}
		return ctrl.SuccessResponse(c, resp, "OTP verified")
	}
}

func (ctrl *AuthController) ResetPassword(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(dto.ResetPasswordRequest)
		if err := c.Bind(req); err != nil {
			return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
		}
		if result := validator.ValidateResetPasswordRequest(req); result.HasError() {
			return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
		}

		if appErr := ctrl.AuthService.ResetPassword(c.Request().Context(), role, req); appErr != nil {
			return ctrl.ErrorResponse(c, appErr)
		}
		return ctrl.SuccessResponse(c, nil, "Password updated successfully")
	}
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	req := new(dto.RefreshTokenRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateRefreshTokenRequest(req); result.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	resp, appErr := ctrl.AuthService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "Token refreshed")
}

// Logout revokes the bearer token and, when sent in the body, the refresh token.
func (ctrl *AuthController) Logout(c echo.Context) error {
	token, err := utils.GetTokenFromHeader(c)
	if err != nil {
		return ctrl.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing authorization header")
	}
	req := new(dto.LogoutRequest)
	_ = c.Bind(req)

	if appErr := ctrl.AuthService.Logout(c.Request().Context(), token, req.RefreshToken); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, nil, "Logged out successfully")
}
