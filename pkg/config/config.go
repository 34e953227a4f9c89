package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "atelier"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	Save          SaveConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ATELIER_APP_ENV" default:"dev"`
	Port         string `envconfig:"ATELIER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ATELIER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ATELIER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig selects the durable store. The default deployment is local-only
// sqlite; postgres stays available for hosted installs.
type DBConfig struct {
	Driver string `envconfig:"ATELIER_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"ATELIER_DB_DSN" default:"file:atelier.db?_pragma=busy_timeout(5000)"`

	MaxOpenConns    int           `envconfig:"ATELIER_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ATELIER_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ATELIER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ATELIER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) validate() error {
	switch strings.ToLower(d.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", d.Driver)
	}
	if strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

// GooseDialect maps the configured driver onto goose's dialect names.
func (d DBConfig) GooseDialect() string {
	if strings.EqualFold(d.Driver, DriverPostgres) {
		return "postgres"
	}
	return "sqlite3"
}

type RedisConfig struct {
	URL          string        `envconfig:"ATELIER_REDIS_URL"`
	Address      string        `envconfig:"ATELIER_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"ATELIER_REDIS_PASSWORD"`
	DB           int           `envconfig:"ATELIER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ATELIER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ATELIER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ATELIER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ATELIER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ATELIER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ATELIER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ATELIER_JWT_ISSUER" default:"atelier"`
	ExpirationMinutes int    `envconfig:"ATELIER_JWT_EXPIRATION_MINUTES" default:"720"`
}

// SessionTTL returns the operator session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ATELIER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ATELIER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ATELIER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ATELIER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ATELIER_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig carries the operator credential. PasswordHash is an argon2id
// hash produced by cmd/hashpass; the plaintext secret is never configured.
type AdminConfig struct {
	PasswordHash string `envconfig:"ATELIER_ADMIN_PASSWORD_HASH" required:"true"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"ATELIER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"ATELIER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

// SaveConfig tunes the debounced content persistence loop. The defaults match
// the live site's feel: a one second quiet window, a visible saving pulse, and
// a short "saved" acknowledgement.
type SaveConfig struct {
	Debounce     time.Duration `envconfig:"ATELIER_SAVE_DEBOUNCE" default:"1s"`
	MinVisible   time.Duration `envconfig:"ATELIER_SAVE_MIN_VISIBLE" default:"600ms"`
	SavedDisplay time.Duration `envconfig:"ATELIER_SAVE_SAVED_DISPLAY" default:"2.5s"`
	Disabled     bool          `envconfig:"ATELIER_SAVE_DISABLED" default:"false"`
}

// CheckoutConfig identifies the external messaging destination the cart
// hand-off composes for (a phone number or handle; the compose flow itself is
// the frontend's concern).
type CheckoutConfig struct {
	Destination string `envconfig:"ATELIER_CHECKOUT_DESTINATION" default:""`
	BrandName   string `envconfig:"ATELIER_CHECKOUT_BRAND_NAME" default:"H&R GRIFES"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ATELIER_AUTO_MIGRATE" default:"true"`
}
