package service

import (
	"club-api/core/cache"
	"club-api/core/config"
	"club-api/core/constants"
	"club-api/core/errors"
	"club-api/core/mail"
	"club-api/core/utils"
	"club-api/modules/auth/dto"
	"club-api/modules/auth/entity"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	accounts map[string]*entity.Account
}

func (f *fakeRepo) GetByEmail(ctx context.Context, role, email string) (*entity.Account, error) {
	a, ok := f.accounts[role+"/"+strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, role string, id uuid.UUID) (*entity.Account, error) {
	for _, a := range f.accounts {
		if a.Role == role && a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, role string, id uuid.UUID, hash string) error {
	a, _ := f.GetByID(ctx, role, id)
	if a != nil {
		a.Password = hash
	}
	return nil
}

type fakeMailer struct {
	sent []mail.Message
}

func (f *fakeMailer) EnqueueEmail(ctx context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) EnqueueDailyDigest(ctx context.Context, day time.Time) error { return nil }

func setup(t *testing.T) (*AuthService, *entity.Account, *fakeMailer, *miniredis.Miniredis) {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{
		Secret: "auth-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour, ResetTTL: 10 * time.Minute,
	}})
	mr := miniredis.RunT(t)
	c := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	coach := &entity.Account{ID: uuid.New(), Email: "dana@example.com", Password: hash, FirstName: "Dana", LastName: "Reyes", Role: constants.RoleCoach}
	repo := &fakeRepo{accounts: map[string]*entity.Account{constants.RoleCoach + "/dana@example.com": coach}}
	mailer := &fakeMailer{}
	return NewAuthService(repo, c, mailer), coach, mailer, mr
}

func TestLogin(t *testing.T) {
	svc, coach, _, _ := setup(t)
	ctx := context.Background()

	resp, appErr := svc.Login(ctx, constants.RoleCoach, &dto.LoginRequest{Email: "Dana@Example.com", Password: "correct-horse"})
	require.Nil(t, appErr)
	assert.Equal(t, coach.ID.String(), resp.User.ID)

	claims, err := utils.ValidateAndParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleCoach, claims.Role)
	assert.Equal(t, constants.ScopeTokenAccess, claims.Scope)

	_, appErr = svc.Login(ctx, constants.RoleParent, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	svc, _, _, mr := setup(t)
	ctx := context.Background()
	bad := &dto.LoginRequest{Email: "dana@example.com", Password: "wrong"}

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, appErr := svc.Login(ctx, constants.RoleCoach, bad)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
	}

	_, appErr := svc.Login(ctx, constants.RoleCoach, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrTooManyRequests, appErr.Code)

	mr.FastForward(constants.BlockDuration + time.Second)
	_, appErr = svc.Login(ctx, constants.RoleCoach, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	assert.Nil(t, appErr)
}

func TestRefreshToken_Rotates(t *testing.T) {
	svc, _, _, _ := setup(t)
	ctx := context.Background()

	login, appErr := svc.Login(ctx, constants.RoleCoach, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.Nil(t, appErr)

	refreshed, appErr := svc.RefreshToken(ctx, login.RefreshToken)
	require.Nil(t, appErr)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, appErr = svc.RefreshToken(ctx, login.RefreshToken)
	require.NotNil(t, appErr)
	assert.Equal(t, "Token has been revoked", appErr.Message)

	_, appErr = svc.RefreshToken(ctx, login.AccessToken)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	svc, _, _, _ := setup(t)
	ctx := context.Background()

	login, appErr := svc.Login(ctx, constants.RoleCoach, &dto.LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.Nil(t, appErr)
	require.Nil(t, svc.Logout(ctx, login.AccessToken, login.RefreshToken))

	revoked, err := svc.cache.IsTokenBlacklisted(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, appErr = svc.RefreshToken(ctx, login.RefreshToken)
	assert.NotNil(t, appErr)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, coach, mailer, mr := setup(t)
	ctx := context.Background()

	require.Nil(t, svc.ForgotPassword(ctx, constants.RoleCoach, &dto.ForgotPasswordRequest{Email: "dana@example.com"}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"dana@example.com"}, mailer.sent[0].To)

	otp, err := mr.Get(constants.RedisKeyOTPResetPassword + constants.RoleCoach + ":" + coach.ID.String())
	require.NoError(t, err)
	assert.Len(t, otp, constants.OTPLength)
	assert.Contains(t, mailer.sent[0].Body, otp)

	_, appErr := svc.VerifyOTP(ctx, constants.RoleCoach, &dto.VerifyOTPRequest{Email: "dana@example.com", OTP: "000000x"})
	require.NotNil(t, appErr)

	verified, appErr := svc.VerifyOTP(ctx, constants.RoleCoach, &dto.VerifyOTPRequest{Email: "dana@example.com", OTP: otp})
	require.Nil(t, appErr)

	_, appErr = svc.VerifyOTP(ctx, constants.RoleCoach, &dto.VerifyOTPRequest{Email: "dana@example.com", OTP: otp})
	require.NotNil(t, appErr, "an OTP is single use")

	reset := &dto.ResetPasswordRequest{Token: verified.Token, NewPassword: "new-password-1", ConfirmPassword: "new-password-1"}
	appErr = svc.ResetPassword(ctx, constants.RolePlayer, reset)
	require.NotNil(t, appErr, "token is bound to the role it was issued for")

	require.Nil(t, svc.ResetPassword(ctx, constants.RoleCoach, reset))
	assert.True(t, utils.ComparePassword(coach.Password, "new-password-1"))

	appErr = svc.ResetPassword(ctx, constants.RoleCoach, reset)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc, _, mailer, _ := setup(t)
	appErr := svc.ForgotPassword(context.Background(), constants.RoleCoach, &dto.ForgotPasswordRequest{Email: "ghost@example.com"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.Empty(t, mailer.sent)
}
