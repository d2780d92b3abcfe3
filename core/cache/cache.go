package cache

import (
	"club-api/core/config"
	"club-api/core/constants"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the redis-backed store for OTPs, revoked tokens and login throttling.
type Cache interface {
	SetOTP(ctx context.Context, key, otp string) error
	GetOTP(ctx context.Context, key string) (string, error)
	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	IncrementLoginAttempt(ctx context.Context, key string) (int64, error)
	IsLoginBlocked(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Client() *redis.Client
}

type redisCache struct {
	client *redis.Client
}

func NewCache(cfg config.RedisConfig) Cache {
	return &redisCache{client: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Client() *redis.Client {
	return c.client
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) SetOTP(ctx context.Context, key, otp string) error {
	return c.client.Set(ctx, constants.RedisKeyOTPResetPassword+key, otp, constants.OTPExpiration).Err()
}

// GetOTP returns "" when no code is stored for key.
func (c *redisCache) GetOTP(ctx context.Context, key string) (string, error) {
	otp, err := c.client.Get(ctx, constants.RedisKeyOTPResetPassword+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return otp, err
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, "1", ttl).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementLoginAttempt bumps the failure counter; the first failure starts the
// block window.
func (c *redisCache) IncrementLoginAttempt(ctx context.Context, key string) (int64, error) {
	k := constants.RedisKeyLoginAttempt + key
	n, err := c.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, k, constants.BlockDuration).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *redisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	v, err := c.client.Get(ctx, constants.RedisKeyLoginAttempt+key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, nil
	}
	return n >= constants.MaxLoginAttempts, nil
}

// Del takes full keys; LoginKey and OTPKey build them.
func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func LoginKey(key string) string { return constants.RedisKeyLoginAttempt + key }
func OTPKey(key string) string   { return constants.RedisKeyOTPResetPassword + key }
