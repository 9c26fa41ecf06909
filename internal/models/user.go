package models

// UserModel is a registered account.
type UserModel struct {
	Base
	Name     string `json:"name"     gorm:"size:255;not null"`
	Username string `json:"username" gorm:"size:15;uniqueIndex;not null"`
	Email    string `json:"email"    gorm:"size:191;uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
	Bio      string `json:"bio"      gorm:"type:text"`
	Avatar   string `json:"avatar"   gorm:"size:255"` // blob store key
}

func (UserModel) TableName() string { return "users" }
