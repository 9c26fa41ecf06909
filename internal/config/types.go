package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	JWTSecret      string         `yaml:"jwt_secret"`
	TokenTTL       time.Duration  `yaml:"token_ttl"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	Ledger         LedgerConfig   `yaml:"ledger"`
	Storage        StorageConfig  `yaml:"storage"`
	Paths          PathsConfig    `yaml:"paths"`
	RateLimit      RateLimit      `yaml:"rate_limit"`
}

type DatabaseConfig struct {
	Driver      string            `yaml:"driver"` // "mysql" | "memory"
	DSN         string            `yaml:"dsn"`
	Host        string            `yaml:"host"`
	Port        int               `yaml:"port"`
	User        string            `yaml:"user"`
	Password    string            `yaml:"password"`
	Name        string            `yaml:"name"`
	Charset     string            `yaml:"charset"`
	Loc         string            `yaml:"loc"`
	Params      map[string]string `yaml:"params"`
	AutoMigrate *bool             `yaml:"auto_migrate"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
	Disable  bool   `yaml:"disable"`
}

type LedgerConfig struct {
	Driver        string        `yaml:"driver"` // "redis" | "memory"
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type StorageConfig struct {
	Driver    string   `yaml:"driver"` // "local" | "s3"
	LocalDir  string   `yaml:"local_dir"`
	PublicURL string   `yaml:"public_url"`
	S3        S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyle       bool   `yaml:"path_style"`
}

type PathsConfig struct {
	Logs string `yaml:"logs"`
}

type RateLimit struct {
	Enable       *bool `yaml:"enable"`
	MaxPerSecond int   `yaml:"max_per_second"`
}
