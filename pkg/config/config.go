package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Accounts AccountsConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
	Toasts   ToastsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GMCAPS_APP_ENV" required:"true"`
	Port         string `envconfig:"GMCAPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GMCAPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GMCAPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver  string `envconfig:"GMCAPS_STORAGE_DRIVER" default:"file"`
	DataDir string `envconfig:"GMCAPS_STORAGE_DATA_DIR" default:"./data"`
}

func (s StorageConfig) validate(redis RedisConfig) error {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case StorageDriverFile:
		if strings.TrimSpace(s.DataDir) == "" {
			return fmt.Errorf("%s is required for the file storage driver", EnvStorageDataDir)
		}
	case StorageDriverRedis:
		if strings.TrimSpace(redis.URL) == "" {
			return fmt.Errorf("%s is required for the redis storage driver", EnvRedisURL)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
	return nil
}

// NormalizedDriver returns the lowercase storage driver name.
func (s StorageConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

type RedisConfig struct {
	URL          string        `envconfig:"GMCAPS_REDIS_URL"`
	DialTimeout  time.Duration `envconfig:"GMCAPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GMCAPS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"GMCAPS_REDIS_WRITE_TIMEOUT" default:"3s"`
	PoolSize     int           `envconfig:"GMCAPS_REDIS_POOL_SIZE" default:"10"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GMCAPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GMCAPS_JWT_ISSUER" default:"gmcaps"`
	ExpirationMinutes int    `envconfig:"GMCAPS_JWT_EXPIRATION_MINUTES" default:"480"`
}

// AccountsConfig carries the configured credential pairs. There is no user
// database: login is a direct comparison against these values.
type AccountsConfig struct {
	AdminEmail       string `envconfig:"GMCAPS_ADMIN_EMAIL" default:"admin@gmcaps.com"`
	AdminPassword    string `envconfig:"GMCAPS_ADMIN_PASSWORD" default:"admin123"`
	CustomerEmail    string `envconfig:"GMCAPS_CUSTOMER_EMAIL" default:"cliente@gmcaps.com"`
	CustomerPassword string `envconfig:"GMCAPS_CUSTOMER_PASSWORD" default:"cliente123"`
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `envconfig:"GMCAPS_CHECKOUT_PROCESSING_DELAY" default:"2s"`
}

type CatalogConfig struct {
	SeedPath string `envconfig:"GMCAPS_CATALOG_SEED_PATH"`
}

type ToastsConfig struct {
	FeedCapacity int `envconfig:"GMCAPS_TOASTS_FEED_CAPACITY" default:"20"`
}
