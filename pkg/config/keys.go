package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for variables without a tag.
const EnvPrefix = "GMCAPS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	StorageDriverFile   = "file"
	StorageDriverRedis  = "redis"
	StorageDriverMemory = "memory"
)

// Environment variable names referenced in error messages and tests.
const (
	EnvAppEnv         = "GMCAPS_APP_ENV"
	EnvPort           = "GMCAPS_APP_PORT"
	EnvStorageDriver  = "GMCAPS_STORAGE_DRIVER"
	EnvStorageDataDir = "GMCAPS_STORAGE_DATA_DIR"
	EnvRedisURL       = "GMCAPS_REDIS_URL"
	EnvJWTSecret      = "GMCAPS_JWT_SECRET"
)
