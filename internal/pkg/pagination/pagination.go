package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storyshare/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
	// MaxPage keeps (page-1)*size within int for every allowed size.
	MaxPage = math.MaxInt / MaxSize
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip, saturating at math.MaxInt.
func (q Query) Offset() int {
	if q.Page <= 1 || q.Size <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Size {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Size
}

// FromContext extracts and clamps pagination params from the request.
func FromContext(c *gin.Context) Query {
	size := c.Query("per_page")
	if size == "" {
		size = c.Query("size")
	}
	return Normalize(parseIntOr(c.Query("page"), DefaultPage), parseIntOr(size, DefaultSize))
}

// Normalize clamps page and size into their valid ranges.
func Normalize(page, size int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: page, Size: size}
}

// Meta builds pagination metadata for a result window.
func Meta(q Query, total int64) response.Pagination {
	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		PerPage:     q.Size,
		HasNextPage: q.Page < totalPage,
	}
}

// Paginate applies limit/offset to a GORM query and returns the pagination metadata.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := db.Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}
	return Meta(q, total), nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
