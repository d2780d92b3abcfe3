package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	S3        S3Config        `mapstructure:"s3"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Env         string `mapstructure:"env"`
	BaseURL     string `mapstructure:"base_url"`
	FrontendURL string `mapstructure:"frontend_url"`
	// Timezone is the IANA zone calendar days, weeks and months are computed in.
	Timezone string `mapstructure:"timezone"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
	ResetTTL   time.Duration `mapstructure:"reset_ttl"`
}

type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// Endpoint overrides the AWS endpoint (MinIO, LocalStack).
	Endpoint string `mapstructure:"endpoint"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type WorkerConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	DigestCron  string `mapstructure:"digest_cron"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var current atomic.Pointer[Config]

// Load reads .env (when present), an optional config.yaml and the environment.
// Environment keys are the upper-cased paths with dots replaced by underscores,
// e.g. DATABASE_HOST or JWT_SECRET.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret is required")
	}

	current.Store(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("server.timezone", "UTC")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "club")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_ttl", "24h")
	v.SetDefault("jwt.refresh_ttl", "720h")
	v.SetDefault("jwt.reset_ttl", "15m")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("worker.concurrency", 5)
	v.SetDefault("worker.digest_cron", "0 6 * * *")

	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("cors.origins", []string{"*"})
	v.SetDefault("log.level", "info")
}

// Get returns the loaded config and panics when Load has not run.
func Get() *Config {
	cfg := current.Load()
	if cfg == nil {
		panic("config: Get called before Load")
	}
	return cfg
}

// GetSafe returns the loaded config, if any.
func GetSafe() (*Config, bool) {
	cfg := current.Load()
	return cfg, cfg != nil
}

// Set installs cfg as the process config. Used by tests.
func Set(cfg *Config) {
	current.Store(cfg)
}

// Location resolves Server.Timezone, falling back to UTC.
func (s ServerConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location is the configured calendar location, or UTC before Load.
func Location() *time.Location {
	if cfg, ok := GetSafe(); ok {
		return cfg.Server.Location()
	}
	return time.UTC
}
