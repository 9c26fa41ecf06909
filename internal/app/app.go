package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/storyshare/core/internal/config"
	"github.com/storyshare/core/internal/middleware"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg       *config.AppConfig
	router    *gin.Engine
	logger    *zap.Logger
	res       *resources
	startedAt time.Time
}

// New initializes the application: config → DB → Redis → ledger → store → routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	deps, res, err := openDeps(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := NewWithDeps(logger, cfg, deps)
	a.res = res
	return a, nil
}

// NewWithDeps builds the HTTP application on already opened collaborators.
func NewWithDeps(logger *zap.Logger, cfg *config.AppConfig, deps Deps) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 16 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	if deps.Redis != nil && cfg.RateLimitEnabled() {
		router.Use(middleware.RateLimit(deps.Redis, cfg.RateLimit.MaxPerSecond, logger))
	}

	a := &App{cfg: cfg, router: router, logger: logger, res: &resources{}, startedAt: time.Now()}
	a.registerRoutes(deps)
	return a
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background work and closes connections.
func (a *App) Shutdown() { a.res.close(a.logger) }

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Truncate(time.Second).String()
	}
	if d < time.Hour {
		return d.Truncate(time.Minute).String()
	}
	if d < 24*time.Hour {
		return d.Truncate(time.Hour).String()
	}
	return d.Truncate(24 * time.Hour).String()
}
