package bookmark

import (
	"time"
	"unicode/utf8"
)

type ToggleDTO struct {
	StoryID string `json:"story_id" form:"story_id"`
}

type toggleResponse struct {
	Bookmarked bool   `json:"bookmarked"`
	StoryID    string `json:"story_id"`
}

// Summary is a bookmark with the story facts a list view needs.
type Summary struct {
	ID           string    `json:"id"`
	StoryID      string    `json:"story_id"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	BookmarkedAt time.Time `json:"bookmarked_at"`
}

const excerptRunes = 150

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s
	}
	return string([]rune(s)[:excerptRunes]) + "..."
}
