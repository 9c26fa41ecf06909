package models

// CategoryModel groups stories.
type CategoryModel struct {
	Base
	SoftDelete
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

func (CategoryModel) TableName() string { return "categories" }

// DefaultCategories are seeded into an empty categories table.
var DefaultCategories = []string{"romance", "fantasy", "comedy", "horror", "slice-of-life"}
