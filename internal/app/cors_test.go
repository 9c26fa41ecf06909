package app

import (
	"testing"

	"github.com/storyshare/core/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestHostMatches(t *testing.T) {
	assert.True(t, hostMatches("example.com", "example.com"))
	assert.True(t, hostMatches("*.example.com", "api.example.com"))
	assert.False(t, hostMatches("*.example.com", "example.org"))
	assert.True(t, hostMatches("localhost:*", "localhost:5173"))
	assert.False(t, hostMatches("", "example.com"))
	assert.Equal(t, "example.com:8080", originHost("https://example.com:8080"))
}

func TestCorsConfig(t *testing.T) {
	c := config.Default()
	cfg := &c
	cfg.AllowedOrigins = []string{"*.stories.test"}

	dev := corsConfig(cfg)
	assert.True(t, dev.AllowOriginFunc("https://evil.test"))

	cfg.Env = "production"
	prod := corsConfig(cfg)
	assert.True(t, prod.AllowOriginFunc("https://app.stories.test"))
	assert.False(t, prod.AllowOriginFunc("https://evil.test"))
}
