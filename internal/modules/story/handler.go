package story

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/storyshare/core/internal/middleware"
	"github.com/storyshare/core/internal/pkg/apperr"
	"github.com/storyshare/core/internal/pkg/pagination"
	"github.com/storyshare/core/internal/pkg/response"
	"github.com/storyshare/core/internal/repositories/stories"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the story endpoints. optionalMW identifies callers
// without requiring a token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalMW gin.HandlerFunc) {
	rg.GET("/stories", optionalMW, h.list)
	rg.GET("/story/:id", optionalMW, h.get)
	rg.POST("/story/create", authMW, h.create)
	rg.PUT("/story/:id", authMW, h.update)
	rg.DELETE("/story/:id", authMW, h.delete)
}

func (h *Handler) list(c *gin.Context) {
	f := stories.Filter{
		CategoryID: c.Query("category"),
		UserID:     c.Query("user"),
		Title:      c.Query("title"),
		Search:     c.Query("search"),
		Sort:       stories.ParseSort(c.Query("sort")),
	}
	items, pag, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), f, pagination.FromContext(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Paged(c, "Stories retrieved successfully", items, pag)
}

func (h *Handler) get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Story retrieved successfully", detail)
}

func (h *Handler) create(c *gin.Context) {
	uploads, closeAll, err := openImages(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer closeAll()

	item, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), &CreateInput{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		CategoryID: c.PostForm("category_id"),
		Images:     uploads,
	})
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, "Story created successfully", item)
}

// update takes either a JSON body (text fields only) or a multipart form
// that may also replace the images.
func (h *Handler) update(c *gin.Context) {
	if c.ContentType() == binding.MIMEJSON {
		var body UpdateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
		h.save(c, body.input())
		return
	}

	uploads, closeAll, err := openImages(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer closeAll()

	in := &UpdateInput{Images: uploads}
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		in.Content = &v
	}
	if v, ok := c.GetPostForm("category_id"); ok {
		in.CategoryID = &v
	}
	h.save(c, in)
}

func (h *Handler) save(c *gin.Context, in *UpdateInput) {
	item, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), in)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Story updated successfully", item)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, "Story deleted successfully", nil)
}

// openImages opens the uploaded "images" files. It returns nil readers when
// the request carries no files at all.
func openImages(c *gin.Context) ([]io.Reader, func(), error) {
	noop := func() {}
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, noop, nil
		}
		return nil, noop, apperr.BadRequest("Invalid multipart form")
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		headers = form.File["images[]"]
	}
	if len(headers) == 0 {
		return nil, noop, nil
	}

	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	readers := make([]io.Reader, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, closeAll, nil
}
