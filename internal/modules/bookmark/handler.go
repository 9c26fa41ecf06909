package bookmark

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
	authed := rg.Group("", authMW)
	authed.POST("/bookmark", h.toggle)
	authed.GET("/bookmarks", h.list)
	authed.DELETE("/bookmark/:id", h.delete)
}

func (h *Handler) toggle(c *gin.Context) {
	var dto ToggleDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	marked, err := h.svc.Toggle(c.Request.Context(), middleware.CurrentUserID(c), dto.StoryID)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	msg := "Bookmark removed"
	if marked {
		msg = "Story bookmarked"
	}
	response.OK(c, msg, toggleResponse{Bookmarked: marked, StoryID: dto.StoryID})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Bookmarks retrieved successfully", items)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Bookmark deleted successfully", nil)
}
