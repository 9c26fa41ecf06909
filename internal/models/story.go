package models

const (
	MinStoryImages = 1
	MaxStoryImages = 4
)

// StoryModel is a published story. Images holds blob store keys in display order.
type StoryModel struct {
	Base
	SoftDelete
	Title      string      `json:"title"       gorm:"size:255;not null"`
	Content    string      `json:"content"     gorm:"type:longtext;not null"`
	CategoryID string      `json:"category_id" gorm:"type:char(36);index;not null"`
	UserID     string      `json:"user_id"     gorm:"type:char(36);index;not null"`
	Images     StringArray `json:"images"      gorm:"type:longtext"`

	Category *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	User     *UserModel     `json:"user,omitempty"     gorm:"foreignKey:UserID"`
}

func (StoryModel) TableName() string { return "stories" }

// OwnedBy reports whether userID created the story.
func (s *StoryModel) OwnedBy(userID string) bool {
	return s != nil && userID != "" && s.UserID == userID
}

// StoryView is a story with its author, category and bookmark facts resolved.
type StoryView struct {
	Story          StoryModel
	BookmarksCount int64
	IsBookmarked   bool
}
