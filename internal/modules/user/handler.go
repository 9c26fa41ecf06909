package user

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
	u := rg.Group("/user")
	u.GET("/profile/:user_id", h.publicProfile)

	authed := u.Group("", authMW)
	authed.GET("/user-profile", h.me)
	authed.PUT("/update", h.update)
	authed.PUT("/update-profile", h.updateProfile)
	authed.PUT("/change-password", h.changePassword)
	authed.POST("/update-picture", h.updatePicture)
}

func (h *Handler) me(c *gin.Context) {
	if u := middleware.CurrentUser(c); u != nil {
		response.OK(c, "User profile retrieved successfully", toProfile(h.svc.Store(), u))
		return
	}
	u, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "User profile retrieved successfully", toProfile(h.svc.Store(), u))
}

func (h *Handler) publicProfile(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "User data retrieved successfully", toPublicProfile(h.svc.Store(), u))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	u, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Record updated successfully", toProfile(h.svc.Store(), u))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Profile updated successfully", toProfile(h.svc.Store(), u))
}

func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), &dto); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Password updated successfully", nil)
}

func (h *Handler) updatePicture(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, h.log, missingFile("avatar", "Avatar is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer f.Close()

	u, err := h.svc.UpdatePicture(c.Request.Context(), middleware.CurrentUserID(c), f)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Profile picture updated successfully", gin.H{
		"avatar_url": AvatarURL(h.svc.Store(), u.Avatar),
	})
}
