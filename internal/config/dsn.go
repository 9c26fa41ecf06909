package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

// DSNValue returns the MySQL DSN, building one from discrete fields when no
// explicit dsn is configured.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := orDefault(c.Host, defaultDBHost)
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := orDefault(c.User, defaultDBUser)
	password := orDefault(c.Password, defaultDBPassword)
	name := orDefault(c.Name, defaultDBName)

	params := neturl.Values{}
	for key, value := range c.Params {
		k, v := strings.TrimSpace(key), strings.TrimSpace(value)
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}
	if params.Get("charset") == "" {
		params.Set("charset", orDefault(c.Charset, defaultDBCharset))
	}
	// Timestamps are scanned into time.Time.
	params.Set("parseTime", "true")
	if params.Get("loc") == "" {
		params.Set("loc", orDefault(c.Loc, defaultDBLoc))
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		user, password, net.JoinHostPort(host, strconv.Itoa(port)), name, params.Encode())
}

// ShouldAutoMigrate defaults to true.
func (c DatabaseConfig) ShouldAutoMigrate() bool {
	return c.AutoMigrate == nil || *c.AutoMigrate
}

// URLValue returns the redis connection URL.
func (c RedisConfig) URLValue() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		if !strings.Contains(u, "://") {
			u = "redis://" + u
		}
		return u
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	u := neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(orDefault(c.Host, defaultRedisHost), strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Password != "" {
		u.User = neturl.UserPassword(c.Username, c.Password)
	} else if c.Username != "" {
		u.User = neturl.User(c.Username)
	}
	return u.String()
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
