package utils

import (
	"club-api/core/config"
	"club-api/core/constants"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig() {
	config.Set(&config.Config{JWT: config.JWTConfig{
		Secret:     "unit-test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		ResetTTL:   10 * time.Minute,
	}})
}

func TestToken_RoundTripKeepsRoleAndScope(t *testing.T) {
	setTestConfig()
	id := uuid.New()
	email := "coach@example.com"

	token, err := GenerateToken(id, &email, constants.RoleCoach, constants.ScopeTokenAccess)
	require.NoError(t, err)

	claims, err := ValidateAndParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, constants.RoleCoach, claims.Role)
	assert.Equal(t, constants.ScopeTokenAccess, claims.Scope)
	assert.InDelta(t, time.Hour.Seconds(), TokenTTL(claims).Seconds(), 5)
}

func TestToken_Expired(t *testing.T) {
	setTestConfig()
	token, err := GenerateToken(uuid.New(), nil, constants.RoleAdmin, constants.ScopeTokenAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAndParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestToken_WrongSecret(t *testing.T) {
	setTestConfig()
	token, err := GenerateToken(uuid.New(), nil, constants.RoleAdmin, constants.ScopeTokenAccess)
	require.NoError(t, err)

	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "another"}})
	_, err = ValidateAndParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetTokenFromHeader(t *testing.T) {
	e := echo.New()
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def", "abc.def", nil},
		{"bearer abc", "abc", nil},
		{"", "", ErrMissingToken},
		{"Basic xyz", "", ErrInvalidToken},
		{"Bearer ", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set(echo.HeaderAuthorization, tt.header)
		}
		got, err := GetTokenFromHeader(e.NewContext(req, httptest.NewRecorder()))
		assert.ErrorIs(t, err, tt.wantErr)
		assert.Equal(t, tt.want, got)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, ComparePassword(hash, "s3cret!"))
	assert.False(t, ComparePassword(hash, "wrong"))
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateOTP()
		assert.Len(t, otp, constants.OTPLength)
		assert.Regexp(t, `^[0-9]+$`, otp)
	}
}

func TestGenerateTeamCode(t *testing.T) {
	code, err := GenerateTeamCode()
	require.NoError(t, err)
	assert.Len(t, code, constants.TeamCodeLength)
	assert.Regexp(t, `^[A-Z2-9]+$`, code)
	assert.Equal(t, code, NormalizeTeamCode(" "+code+" "))
}

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	d, err := ParseDate("2024-06-20", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, loc), d)

	d, err = ParseDate("2024-06-20T08:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 6, 20, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, loc, d.Location())

	// An explicit offset wins over the literal date: 02:00Z is the previous
	// evening in Chicago.
	d, err = ParseDate("2024-06-20T02:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, 19, d.Day())
	assert.Equal(t, 21, d.Hour())

	_, err = ParseDate("20/06/2024", loc)
	assert.Error(t, err)

	none, err := ParseOptionalDate("", loc)
	assert.NoError(t, err)
	assert.Nil(t, none)
}
