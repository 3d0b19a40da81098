package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the storefront cart service and cartctl.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	GRPCPort    string `mapstructure:"GRPC_PORT"`
	MetricsPort string `mapstructure:"METRICS_PORT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	CatalogDriver   string        `mapstructure:"CATALOG_DRIVER"`
	CatalogDSN      string        `mapstructure:"CATALOG_DSN"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	LocalSlotDir string        `mapstructure:"LOCAL_SLOT_DIR"`
	LocalSlotTTL time.Duration `mapstructure:"LOCAL_SLOT_TTL"`

	KafkaBrokers  []string `mapstructure:"KAFKA_BROKERS"`
	CheckoutTopic string   `mapstructure:"CHECKOUT_TOPIC"`
	SnapshotTopic string   `mapstructure:"SNAPSHOT_TOPIC"`

	CheckoutEndpoint   string `mapstructure:"CHECKOUT_ENDPOINT"`
	CheckoutSuccessURL string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string `mapstructure:"CHECKOUT_CANCEL_URL"`

	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

const insecureSecret = "change-me-storefront-secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "storefront_cart")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("GRPC_PORT", "50052")
	v.SetDefault("METRICS_PORT", "9093")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "cartdb")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CATALOG_DRIVER", "sqlite")
	v.SetDefault("CATALOG_DSN", "./storefront.db")
	v.SetDefault("CATALOG_CACHE_TTL", 15*time.Minute)

	v.SetDefault("LOCAL_SLOT_DIR", ".storefront")
	v.SetDefault("LOCAL_SLOT_TTL", 30*24*time.Hour)

	v.SetDefault("KAFKA_BROKERS", []string{})
	v.SetDefault("CHECKOUT_TOPIC", "checkout-outbox")
	v.SetDefault("SNAPSHOT_TOPIC", "cart-snapshots")

	v.SetDefault("CHECKOUT_ENDPOINT", "")
	v.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:5173/checkout/success")
	v.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:5173/checkout")

	v.SetDefault("JWT_SECRET", insecureSecret)
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads defaults, an optional storefront.yaml from the working directory
// (or configFile when set), then environment variables.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.CatalogDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported CATALOG_DRIVER %q", c.CatalogDriver)
	}
	if c.CatalogDSN == "" {
		return errors.New("CATALOG_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// InsecureSecret reports whether JWT_SECRET was left at its default.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == insecureSecret
}
