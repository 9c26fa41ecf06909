package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storyshare/core/internal/pkg/apperr"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	PerPage     int   `json:"per_page"`
	HasNextPage bool  `json:"has_next_page"`
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Status     string              `json:"status"`
	Message    string              `json:"message"`
	Data       interface{}         `json:"data,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Paged sends a paginated list.
func Paged(c *gin.Context, message string, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data, Pagination: &pagination})
}

// Fail aborts with an error envelope.
func Fail(c *gin.Context, status int, message string, fields ...apperr.FieldError) {
	c.AbortWithStatusJSON(status, Envelope{Status: StatusError, Message: message, Errors: fields})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	Fail(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as an error envelope. Internal causes are logged and
// replaced with a generic message; unauthorized causes are never echoed.
func Error(c *gin.Context, log *zap.Logger, err error) {
	ae := apperr.From(err)
	status := StatusFor(ae.Kind)
	if ae.Kind == apperr.KindInternal && log != nil {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(ae.Err),
		)
	}
	Fail(c, status, ae.Message, ae.Fields...)
}
