package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8080
	defaultEnv        = "development"
	defaultTokenTTL   = 24 * time.Hour
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "storyshare"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultStorageDir = "storage"
	defaultLogsDir    = "logs"
	defaultRateLimit  = 50
	defaultS3Region   = "us-east-1"

	EnvPrefix = "STORY_"

	LedgerRedis  = "redis"
	LedgerMemory = "memory"

	StorageLocal = "local"
	StorageS3    = "s3"

	DatabaseMySQL  = "mysql"
	DatabaseMemory = "memory"

	// insecureSecret is what jwt_secret falls back to; production refuses it.
	insecureSecret = "storyshare-secret-change-me"
)
