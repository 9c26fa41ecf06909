package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath, applies defaults and environment
// overrides, and validates the result. A missing file yields the defaults.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := Default()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, os.LookupEnv)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		TokenTTL: defaultTokenTTL,
		Database: DatabaseConfig{Driver: DatabaseMySQL},
		Ledger:   LedgerConfig{Driver: LedgerRedis, SweepInterval: time.Minute},
		Storage:  StorageConfig{Driver: StorageLocal},
	}
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("ENV"); ok {
		cfg.Env = v
	}
	if v, ok := get("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v, ok := get("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := get("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	if v, ok := get("DSN"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := get("REDIS_URL"); ok {
		cfg.Redis.URL = v
	}
}

func (c *AppConfig) normalize() {
	c.Env = normalizeEnv(c.Env)
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		c.JWTSecret = insecureSecret
	}
	c.AllowedOrigins = normalizeOrigins(c.AllowedOrigins)
	c.Database.Driver = lowerOr(c.Database.Driver, DatabaseMySQL)
	c.Ledger.Driver = lowerOr(c.Ledger.Driver, LedgerRedis)
	if c.Ledger.SweepInterval <= 0 {
		c.Ledger.SweepInterval = time.Minute
	}
	c.Storage.Driver = lowerOr(c.Storage.Driver, StorageLocal)
	if c.Storage.S3.Region == "" {
		c.Storage.S3.Region = defaultS3Region
	}
	if c.RateLimit.MaxPerSecond <= 0 {
		c.RateLimit.MaxPerSecond = defaultRateLimit
	}
}

// Validate rejects configurations the server cannot run with.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if !c.IsDev() && c.JWTSecret == insecureSecret {
		return errors.New("jwt_secret must be set in production")
	}
	switch c.Database.Driver {
	case DatabaseMySQL, DatabaseMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	switch c.Ledger.Driver {
	case LedgerRedis:
		if c.Redis.Disable {
			return errors.New("ledger.driver redis requires redis")
		}
	case LedgerMemory:
	default:
		return fmt.Errorf("unknown ledger.driver %q", c.Ledger.Driver)
	}
	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		s3 := c.Storage.S3
		if s3.Bucket == "" || s3.AccessKeyID == "" || s3.SecretAccessKey == "" {
			return errors.New("incomplete storage.s3 config: bucket/access_key_id/secret_access_key are required")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	return nil
}

func (c *AppConfig) IsDev() bool { return c.Env == defaultEnv }

// Addr returns the listen address.
func (c *AppConfig) Addr() string { return ":" + strconv.Itoa(c.Port) }

// RateLimitEnabled defaults to on outside development.
func (c *AppConfig) RateLimitEnabled() bool {
	if c.RateLimit.Enable != nil {
		return *c.RateLimit.Enable
	}
	return !c.IsDev()
}

func (c *AppConfig) LogDir() string { return resolveDir(c.Paths.Logs, defaultLogsDir) }

func (c *AppConfig) StorageDir() string {
	return resolveDir(c.Storage.LocalDir, defaultStorageDir)
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return "production"
	default:
		return defaultEnv
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func lowerOr(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
