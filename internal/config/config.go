package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Admin        AdminConfig
	RateLimit    RateLimitConfig
	Notification NotificationConfig
	CORS         CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                   string
	Env                    string
	Host                   string
	Port                   string
	Version                string
	RequestTimeoutSeconds  int
	ShutdownTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	TimeoutMS int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level   string
	Format  string
	Service string
}

// AuthConfig defines authentication parameters.
//
// An empty JWTSecret makes the server generate a random one at startup, so
// tokens do not survive a restart.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	PBKDF2Iterations      int
	MaxFailedSignIns      int
	SignInLockoutMinutes  int
}

// AdminConfig describes the seed admin account ensured at startup.
type AdminConfig struct {
	Seed     bool
	Username string
	Email    string
	Password string
	FullName string
}

// RateLimitConfig configures the per-client request limiter.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// NotificationConfig holds outbound mail settings.
type NotificationConfig struct {
	EmailFrom      string
	EmailFromName  string
	SendGridAPIKey string
}

// CORSConfig lists allowed browser origins.
type CORSConfig struct {
	AllowOrigins string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                   getEnv("APP_NAME", "brainswarm-booking-api"),
			Env:                    getEnv("APP_ENV", "development"),
			Host:                   getEnv("APP_HOST", "0.0.0.0"),
			Port:                   getEnv("APP_PORT", "8001"),
			Version:                getEnv("APP_VERSION", "1.0.0"),
			RequestTimeoutSeconds:  getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			ShutdownTimeoutSeconds: getEnvAsInt("HTTP_SHUTDOWN_TIMEOUT_SECONDS", 10),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			PoolSize:  getEnvAsInt("REDIS_POOL_SIZE", 10),
			TimeoutMS: getEnvAsInt("REDIS_TIMEOUT_MS", 500),
		},
		Logger: LoggerConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
			Service: getEnv("APP_NAME", "brainswarm-booking-api"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 30),
			PBKDF2Iterations:      getEnvAsInt("AUTH_PBKDF2_ITERATIONS", 100000),
			MaxFailedSignIns:      getEnvAsInt("AUTH_MAX_FAILED_SIGNINS", 5),
			SignInLockoutMinutes:  getEnvAsInt("AUTH_SIGNIN_LOCKOUT_MINUTES", 15),
		},
		Admin: AdminConfig{
			Seed:     getEnvAsBool("ADMIN_SEED", true),
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@brainswarm.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
			FullName: getEnv("ADMIN_FULL_NAME", "Administrator"),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Notification: NotificationConfig{
			EmailFrom:      getEnv("NOTIFY_EMAIL_FROM", "noreply@brainswarm.com"),
			EmailFromName:  getEnv("NOTIFY_EMAIL_FROM_NAME", "Brain Swarm"),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
	}

	if cfg.Auth.PBKDF2Iterations <= 0 {
		return nil, fmt.Errorf("invalid AUTH_PBKDF2_ITERATIONS: %d", cfg.Auth.PBKDF2Iterations)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ShutdownTimeout bounds graceful shutdown.
func (a AppConfig) ShutdownTimeout() time.Duration {
	if a.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.ShutdownTimeoutSeconds) * time.Second
}

// Timeout bounds every Redis round trip, including the dial.
func (r RedisConfig) Timeout() time.Duration {
	if r.TimeoutMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(r.TimeoutMS) * time.Millisecond
}

// AccessTokenTTL returns the bearer token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// SignInLockout returns the window failed sign-ins are counted over.
func (a AuthConfig) SignInLockout() time.Duration {
	return time.Duration(a.SignInLockoutMinutes) * time.Minute
}

// IsProduction reports whether the service runs with production settings.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
