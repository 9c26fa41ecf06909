package models

// BookmarkModel links a user to a story. (user_id, story_id) is unique.
type BookmarkModel struct {
	Base
	UserID  string `json:"user_id"  gorm:"type:char(36);not null;uniqueIndex:idx_bookmarks_user_story,priority:1"`
	StoryID string `json:"story_id" gorm:"type:char(36);not null;uniqueIndex:idx_bookmarks_user_story,priority:2;index"`

	Story *StoryModel `json:"story,omitempty" gorm:"foreignKey:StoryID"`
}

func (BookmarkModel) TableName() string { return "bookmarks" }

// OwnedBy reports whether userID holds the bookmark.
func (b *BookmarkModel) OwnedBy(userID string) bool {
	return b != nil && userID != "" && b.UserID == userID
}
