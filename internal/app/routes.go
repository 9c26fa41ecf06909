package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storyshare/core/internal/middleware"
	"github.com/storyshare/core/internal/modules/auth"
	"github.com/storyshare/core/internal/modules/bookmark"
	"github.com/storyshare/core/internal/modules/category"
	"github.com/storyshare/core/internal/modules/story"
	"github.com/storyshare/core/internal/modules/user"
	"github.com/storyshare/core/internal/pkg/jwt"
	"github.com/storyshare/core/internal/pkg/response"
)

func (a *App) registerRoutes(d Deps) {
	r := a.router
	log := a.logger

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})
	if d.LocalDir != "" {
		r.Static("/storage", d.LocalDir)
	}

	tokens := jwt.NewService(a.cfg.JWTSecret, a.cfg.TokenTTL, d.Clock)
	gate := middleware.NewGate(tokens, d.Ledger, d.Users, log)
	authMW := gate.Require()

	root := r.Group("")
	root.GET("/ping", func(c *gin.Context) {
		response.OK(c, "pong", gin.H{"uptime": humanizeDuration(time.Since(a.startedAt))})
	})

	auth.NewHandler(auth.NewService(d.Users, d.Hasher, tokens, d.Ledger, log), log).
		RegisterRoutes(root, authMW)
	user.NewHandler(user.NewService(d.Users, d.Hasher, d.Store, log), log).
		RegisterRoutes(root, authMW)
	category.NewHandler(category.NewService(d.Categories), log).
		RegisterRoutes(root)
	story.NewHandler(story.NewService(d.Stories, d.Categories, d.Bookmarks, d.Store, log), log).
		RegisterRoutes(root, authMW, gate.Optional())
	bookmark.NewHandler(bookmark.NewService(d.Bookmarks, d.Stories, d.Store, log), log).
		RegisterRoutes(root, authMW)
}
