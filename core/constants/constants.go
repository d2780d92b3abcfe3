package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 5 * time.Second
	ShutdownTimeout       = 15 * time.Second
)

// Database pool defaults, overridable through config.
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Echo context keys.
const (
	ContextTokenData = "token_data"
)

// Token scopes.
const (
	ScopeTokenAccess        = "access"
	ScopeTokenRefresh       = "refresh"
	ScopeTokenResetPassword = "reset_password"
)

// Account roles, also used as the URL segment of role-scoped routes.
const (
	RoleAdmin  = "admin"
	RoleCoach  = "coach"
	RolePlayer = "player"
	RoleParent = "parent"
)

// Coach permission levels.
const (
	PermissionFull     = "full"
	PermissionReadOnly = "read_only"
)

// Redis keys.
const (
	RedisKeyOTPResetPassword = "otp:reset_password:"
	RedisKeyTokenBlacklist   = "token:blacklist:"
	RedisKeyLoginAttempt     = "login:attempt:"
)

const (
	OTPLength        = 6
	OTPExpiration    = 5 * time.Minute
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

const (
	MaxUploadSize      = 5 << 20
	ProfilePictureDir  = "profiles"
	TeamCodeLength     = 6
	TeamCodeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	UpcomingEventsSpan = 1  // years
	CalendarFeedMonths = 6
	DefaultPageSize    = 20
	MaxPageSize        = 100
)
