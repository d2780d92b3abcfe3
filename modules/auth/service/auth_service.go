package service

import (
	"club-api/core/cache"
	"club-api/core/constants"
	"club-api/core/errors"
	"club-api/core/logger"
	"club-api/core/mail"
	"club-api/core/utils"
	"club-api/core/worker"
	"club-api/modules/auth/dto"
	"club-api/modules/auth/entity"
	"club-api/modules/auth/mapper"
	"club-api/modules/auth/repository"
	"context"
	stdErrors "errors"
	"strings"
)

type AuthService struct {
	repo   repository.AuthRepositoryInterface
	cache  cache.Cache
	mailer worker.Enqueuer
}

type AuthServiceInterface interface {
	Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	RefreshToken(ctx context.Context, token string) (*dto.RefreshTokenResponse, *errors.AppError)
	Logout(ctx context.Context, accessToken, refreshToken string) *errors.AppError
	ForgotPassword(ctx context.Context, role string, req *dto.ForgotPasswordRequest) *errors.AppError
	VerifyOTP(ctx context.Context, role string, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, *errors.AppError)
	ResetPassword(ctx context.Context, role string, req *dto.ResetPasswordRequest) *errors.AppError
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.Cache, mailer worker.Enqueuer) *AuthService {
	return &AuthService{repo: repo, cache: c, mailer: mailer}
}

func loginKey(role, email string) string {
	return role + ":" + strings.ToLower(email)
}

func otpKey(account *entity.Account) string {
	return account.Role + ":" + account.ID.String()
}

// Login checks the lockout counter before touching the database, so a blocked
// account cannot be probed further until the window expires.
func (s *AuthService) Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	key := loginKey(role, req.Email)
	blocked, err := s.cache.IsLoginBlocked(ctx, key)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check login attempts", err)
	}
	if blocked {
		return nil, errors.NewAppError(errors.ErrTooManyRequests, "Too many failed attempts. Try again in 15 minutes", nil)
	}

	account, err := s.repo.GetByEmail(ctx, role, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get account", err)
	}
	if account == nil || !utils.ComparePassword(account.Password, req.Password) {
		if _, err := s.cache.IncrementLoginAttempt(ctx, key); err != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	access, refresh, appErr := s.issue(account)
	if appErr != nil {
		return nil, appErr
	}
	if err := s.cache.Del(ctx, cache.LoginKey(key)); err != nil {
		logger.Warn("AuthService:Login:ClearAttempts", "error", err)
	}

	logger.Info("AuthService:Login:Success", "role", role, "account_id", account.ID)
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         mapper.ToAccountResponse(account),
	}, nil
}

// RefreshToken rotates the pair: the presented refresh token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, token string) (*dto.RefreshTokenResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	claims, appErr := s.parse(ctx, token, constants.ScopeTokenRefresh)
	if appErr != nil {
		return nil, appErr
	}

	account, err := s.repo.GetByID(ctx, claims.Role, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get account", err)
	}
	if account == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Account no longer exists", nil)
	}

	access, refresh, appErr := s.issue(account)
	if appErr != nil {
		return nil, appErr
	}
	if err := s.cache.AddToTokenBlacklist(ctx, token, utils.TokenTTL(claims)); err != nil {
		logger.Error("AuthService:RefreshToken:AddToTokenBlacklist", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to revoke refresh token", err)
	}

	return &dto.RefreshTokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	for _, token := range []string{accessToken, refreshToken} {
		if token == "" {
			continue
		}
		claims, err := utils.ValidateAndParseToken(token)
		if err != nil {
			// Expired or forged tokens need no revocation.
			continue
		}
		if err := s.cache.AddToTokenBlacklist(ctx, token, utils.TokenTTL(claims)); err != nil {
			logger.Error("AuthService:Logout:AddToTokenBlacklist", err)
			return errors.NewAppError(errors.ErrInternalServer, "Failed to revoke token", err)
		}
	}
	return nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, role string, req *dto.ForgotPasswordRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	account, err := s.repo.GetByEmail(ctx, role, req.Email)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to get account", err)
	}
	if account == nil {
		return errors.NewAppError(errors.ErrNotFound, "No account found with this email", nil)
	}

	otp := utils.GenerateOTP()
	if otp == "" {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to generate OTP", nil)
	}
	if err := s.cache.SetOTP(ctx, otpKey(account), otp); err != nil {
		logger.Error("AuthService:ForgotPassword:SetOTP", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save OTP", err)
	}

	body, err := mail.Render("otp_email.html", mail.OTPData{
		Name:    account.FirstName,
		OTPCode: otp,
		Minutes: int(constants.OTPExpiration.Minutes()),
	})
	if err != nil {
		logger.Error("AuthService:ForgotPassword:Render", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to build OTP email", err)
	}
	msg := mail.Message{To: []string{account.Email}, Subject: "Your password reset code", Body: body, IsHTML: true}
	if err := s.mailer.EnqueueEmail(ctx, msg); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to send OTP email", err)
	}
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, role string, req *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	account, err := s.repo.GetByEmail(ctx, role, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get account", err)
	}
	if account == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid or expired OTP", nil)
	}

	otp, err := s.cache.GetOTP(ctx, otpKey(account))
	if err != nil {
		logger.Error("AuthService:VerifyOTP:GetOTP", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to read OTP", err)
	}
	if otp == "" || otp != req.OTP {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid or expired OTP", nil)
	}
	if err := s.cache.Del(ctx, cache.OTPKey(otpKey(account))); err != nil {
		logger.Warn("AuthService:VerifyOTP:Del", "error", err)
	}

	email := account.Email
	token, err := utils.GenerateToken(account.ID, &email, role, constants.ScopeTokenResetPassword)
	if err != nil {
		logger.Error("AuthService:VerifyOTP:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate token", err)
	}
	return &dto.VerifyOTPResponse{Token: token}, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, role string, req *dto.ResetPasswordRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	claims, appErr := s.parse(ctx, req.Token, constants.ScopeTokenResetPassword)
	if appErr != nil {
		return appErr
	}
	if claims.Role != role {
		return errors.NewAppError(errors.ErrUnauthorized, "Invalid token", nil)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("AuthService:ResetPassword:HashPassword", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}
	if err := s.repo.UpdatePassword(ctx, role, claims.UserID, hash); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to update password", err)
	}
	if err := s.cache.AddToTokenBlacklist(ctx, req.Token, utils.TokenTTL(claims)); err != nil {
		logger.Error("AuthService:ResetPassword:AddToTokenBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to revoke reset token", err)
	}

	logger.Info("AuthService:ResetPassword:Done", "role", role, "account_id", claims.UserID)
	return nil
}

func (s *AuthService) issue(account *entity.Account) (string, string, *errors.AppError) {
	email := account.Email
	access, err := utils.GenerateToken(account.ID, &email, account.Role, constants.ScopeTokenAccess)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrInternalServer, "Failed to generate access token", err)
	}
	refresh, err := utils.GenerateToken(account.ID, &email, account.Role, constants.ScopeTokenRefresh)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrInternalServer, "Failed to generate refresh token", err)
	}
	return access, refresh, nil
}

func (s *AuthService) parse(ctx context.Context, token, scope string) (*utils.TokenClaims, *errors.AppError) {
	blacklisted, err := s.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:IsTokenBlacklisted", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check token", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token has been revoked", nil)
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		if stdErrors.Is(err, utils.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "Token expired", nil)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token", nil)
	}
	if claims.Scope != scope {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token", nil)
	}
	return claims, nil
}
