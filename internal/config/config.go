package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	GRPC     GRPCConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Log      LogConfig
	Payment  PaymentConfig
	SMTP     SMTPConfig
	Redis    RedisConfig
	Shop     ShopConfig
	Tracking TrackingConfig
	Session  SessionConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// GRPCConfig contains settings of the back-office gRPC server.
type GRPCConfig struct {
	Address string // e.g. ":50051"
}

// HTTPConfig contains settings of the storefront HTTP server.
type HTTPConfig struct {
	Address string // e.g. ":8080"
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string // bootstrap admin, created on startup when both are set
	AdminPassword string
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string
}

// PaymentConfig contains hosted checkout settings.
type PaymentConfig struct {
	StripeSecretKey string
	Currency        string
}

// SMTPConfig contains outgoing mail settings. An empty User disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// RedisConfig contains Redis settings. An empty Addr selects the in-process change feed and session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ShopConfig describes the shop itself.
type ShopConfig struct {
	Lat                  float64
	Lng                  float64
	PublicURL            string          // storefront origin used in redirect and tracking URLs
	MeasurementSurcharge decimal.Decimal // flat fee added when measurements are included
}

// TrackingConfig controls the simulated location pushes while an order is out for delivery.
type TrackingConfig struct {
	Enabled  bool
	Interval time.Duration
}

// SessionConfig controls storefront session lifetime.
type SessionConfig struct {
	TTL time.Duration
}

// envBindings maps viper keys to environment variable names.
var envBindings = map[string]string{
	"database.path":              "DB_PATH",
	"grpc.address":               "GRPC_ADDRESS",
	"http.address":               "HTTP_ADDRESS",
	"auth.jwt_secret":            "JWT_SECRET",
	"auth.token_ttl":             "TOKEN_TTL",
	"auth.admin_username":        "ADMIN_USERNAME",
	"auth.admin_password":        "ADMIN_PASSWORD",
	"log.level":                  "LOG_LEVEL",
	"payment.stripe_secret_key":  "STRIPE_SECRET_KEY",
	"payment.currency":           "PAYMENT_CURRENCY",
	"smtp.host":                  "SMTP_HOST",
	"smtp.port":                  "SMTP_PORT",
	"smtp.user":                  "SMTP_USER",
	"smtp.password":              "SMTP_PASS",
	"smtp.from":                  "SMTP_FROM",
	"redis.addr":                 "REDIS_ADDR",
	"redis.password":             "REDIS_PASSWORD",
	"redis.db":                   "REDIS_DB",
	"shop.lat":                   "SHOP_LAT",
	"shop.lng":                   "SHOP_LNG",
	"shop.public_url":            "PUBLIC_URL",
	"shop.measurement_surcharge": "MEASUREMENT_SURCHARGE",
	"tracking.enabled":           "TRACKING_ENABLED",
	"tracking.interval":          "TRACKING_INTERVAL",
	"session.ttl":                "SESSION_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "storefront.db")
	v.SetDefault("grpc.address", ":50051")
	v.SetDefault("http.address", ":8080")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("payment.currency", "inr")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "Elite Stitch World <noreply@elitestitch.world>")
	v.SetDefault("shop.lat", 11.6643)
	v.SetDefault("shop.lng", 78.1460)
	v.SetDefault("shop.public_url", "http://localhost:3000")
	v.SetDefault("shop.measurement_surcharge", "500")
	v.SetDefault("tracking.enabled", true)
	v.SetDefault("tracking.interval", "3s")
	v.SetDefault("session.ttl", "72h")
}

// newViper layers defaults, an optional YAML file named by CONFIG_FILE, a .env file and
// the process environment, in increasing precedence.
func newViper() (*viper.Viper, error) {
	// A missing .env is not an error; it only seeds the process environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	if path := getEnv("CONFIG_FILE", ""); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	surcharge, err := decimal.NewFromString(v.GetString("shop.measurement_surcharge"))
	if err != nil {
		return nil, fmt.Errorf("invalid MEASUREMENT_SURCHARGE: %w", err)
	}
	if surcharge.IsNegative() {
		return nil, fmt.Errorf("MEASUREMENT_SURCHARGE must not be negative")
	}
	interval := v.GetDuration("tracking.interval")
	if interval <= 0 {
		return nil, fmt.Errorf("TRACKING_INTERVAL must be positive")
	}
	return &Config{
		Database: DatabaseConfig{Path: v.GetString("database.path")},
		GRPC:     GRPCConfig{Address: v.GetString("grpc.address")},
		HTTP:     HTTPConfig{Address: v.GetString("http.address")},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("auth.jwt_secret"),
			TokenTTL:      v.GetDuration("auth.token_ttl"),
			AdminUsername: v.GetString("auth.admin_username"),
			AdminPassword: v.GetString("auth.admin_password"),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
		Payment: PaymentConfig{
			StripeSecretKey: v.GetString("payment.stripe_secret_key"),
			Currency:        v.GetString("payment.currency"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			User:     v.GetString("smtp.user"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Shop: ShopConfig{
			Lat:                  v.GetFloat64("shop.lat"),
			Lng:                  v.GetFloat64("shop.lng"),
			PublicURL:            v.GetString("shop.public_url"),
			MeasurementSurcharge: surcharge,
		},
		Tracking: TrackingConfig{
			Enabled:  v.GetBool("tracking.enabled"),
			Interval: interval,
		},
		Session: SessionConfig{TTL: v.GetDuration("session.ttl")},
	}, nil
}

// Load loads configuration from the environment (and optional config file) with sensible defaults.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	v.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	return fromViper(v)
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, gRPC: %s, HTTP: %s, Redis: %q, SMTP: %s, Stripe: %s, Auth: *** (masked) ***}",
		c.Database.Path, c.GRPC.Address, c.HTTP.Address, c.Redis.Addr, mask(c.SMTP.User), mask(c.Payment.StripeSecretKey))
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "***"
}
