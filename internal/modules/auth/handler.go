package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/storyshare/core/internal/middleware"
	"github.com/storyshare/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/logout", authMW, h.logout)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	u, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, "User registered successfully", toRegistered(u))
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	issued, err := h.svc.Login(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Login successful", tokenResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresAt: issued.ExpiresAt,
	})
}

func (h *Handler) logout(c *gin.Context) {
	err := h.svc.Logout(c.Request.Context(), middleware.CurrentToken(c), middleware.CurrentClaims(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Successfully logged out", nil)
}
