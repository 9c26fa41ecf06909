package app

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/storyshare/core/internal/config"
)

// corsConfig allows every origin in development or when no allow-list is set.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc:  func(string) bool { return true },
	}
	if len(cfg.AllowedOrigins) == 0 || cfg.IsDev() {
		return c
	}
	allowed := append([]string(nil), cfg.AllowedOrigins...)
	c.AllowOriginFunc = func(origin string) bool {
		return originAllowed(allowed, origin)
	}
	return c
}

func originAllowed(patterns []string, origin string) bool {
	host := originHost(origin)
	for _, p := range patterns {
		if hostMatches(strings.TrimSpace(p), host) {
			return true
		}
	}
	return false
}

// originHost strips scheme and path, leaving host[:port].
func originHost(origin string) string {
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return u.Host
	}
	return origin
}

// hostMatches supports exact hosts, "*.domain" and "host:*".
func hostMatches(pattern, host string) bool {
	switch {
	case pattern == "":
		return false
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, strings.TrimSuffix(pattern, "*"))
	}
	return false
}
