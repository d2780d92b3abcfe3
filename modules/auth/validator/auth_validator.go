package validator

import (
	"club-api/core/constants"
	"club-api/core/utils"
	"club-api/core/validation"
	"club-api/modules/auth/dto"
	"strings"
	"unicode"
)

const minPasswordLength = 8

func ValidateLoginRequest(req *dto.LoginRequest) *validation.Result {
	result := &validation.Result{}
	req.Email = strings.TrimSpace(req.Email)
	if !utils.IsValidEmail(req.Email) {
		result.Add("email", "A valid email is required")
	}
	if req.Password == "" {
		result.Add("password", "Password is required")
	}
	return result
}

func ValidateRefreshTokenRequest(req *dto.RefreshTokenRequest) *validation.Result {
	result := &validation.Result{}
	if strings.TrimSpace(req.RefreshToken) == "" {
		result.Add("refresh_token", "Refresh token is required")
	}
	return result
}

func ValidateForgotPasswordRequest(req *dto.ForgotPasswordRequest) *validation.Result {
	result := &validation.Result{}
	req.Email = strings.TrimSpace(req.Email)
	if !utils.IsValidEmail(req.Email) {
		result.Add("email", "A valid email is required")
	}
	return result
}

func ValidateVerifyOTPRequest(req *dto.VerifyOTPRequest) *validation.Result {
	result := &validation.Result{}
	req.Email = strings.TrimSpace(req.Email)
	if !utils.IsValidEmail(req.Email) {
		result.Add("email", "A valid email is required")
	}
	if len(req.OTP) != constants.OTPLength || strings.IndexFunc(req.OTP, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		result.Add("otp", "OTP must be 6 digits")
	}
	return result
}

func ValidateResetPasswordRequest(req *dto.ResetPasswordRequest) *validation.Result {
	result := &validation.Result{}
	if strings.TrimSpace(req.Token) == "" {
		result.Add("token", "Reset token is required")
	}
	if len(req.NewPassword) < minPasswordLength {
		result.Add("new_password", "Password must be at least 8 characters")
	}
	if req.ConfirmPassword != req.NewPassword {
		result.Add("confirm_password", "Passwords do not match")
	}
	return result
}
