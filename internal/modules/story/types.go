package story

import (
	"io"
	"time"

	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/modules/user"
	"github.com/storyshare/core/internal/pkg/storage"
)

const similarLimit = 4

// CreateInput carries a new story. Images are raw uploads in display order.
type CreateInput struct {
	Title      string
	Content    string
	CategoryID string
	Images     []io.Reader
}

// UpdateInput is a partial update. A non-nil Images replaces the full set.
type UpdateInput struct {
	Title      *string
	Content    *string
	CategoryID *string
	Images     []io.Reader
}

// UpdateBody is the JSON form of a story edit.
type UpdateBody struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	CategoryID *string `json:"category_id"`
}

func (b *UpdateBody) input() *UpdateInput {
	return &UpdateInput{Title: b.Title, Content: b.Content, CategoryID: b.CategoryID}
}

func (in *UpdateInput) empty() bool {
	return in.Title == nil && in.Content == nil && in.CategoryID == nil && in.Images == nil
}

type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	Images         []string     `json:"images"`
	Category       *CategoryRef `json:"category"`
	Author         *Author      `json:"user"`
	BookmarksCount int64        `json:"bookmarks_count"`
	IsBookmarked   bool         `json:"is_bookmarked"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type Detail struct {
	Story   Item   `json:"story"`
	Similar []Item `json:"similar_stories"`
}

func toItem(store storage.Store, v models.StoryView) Item {
	s := v.Story
	images := make([]string, 0, len(s.Images))
	for _, k := range s.Images {
		images = append(images, store.URL(k))
	}
	it := Item{
		ID:             s.ID,
		Title:          s.Title,
		Content:        s.Content,
		Images:         images,
		BookmarksCount: v.BookmarksCount,
		IsBookmarked:   v.IsBookmarked,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.Category != nil {
		it.Category = &CategoryRef{ID: s.Category.ID, Name: s.Category.Name}
	}
	if s.User != nil {
		it.Author = &Author{
			ID:       s.User.ID,
			Name:     s.User.Name,
			Username: s.User.Username,
			Avatar:   user.AvatarURL(store, s.User.Avatar),
		}
	}
	return it
}

const (
	imagePrefix       = "stories"
	msgImagesCount    = "Images must contain between 1 and 4 files"
	msgCategoryExists = "The selected category is invalid"
	msgNothingToEdit  = "No fields to update"
)
