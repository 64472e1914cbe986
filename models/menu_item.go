package models

import "gorm.io/gorm"

// MenuItem is a user-curated "quick menu" preset, saved from a logged
// food so it can be re-logged with one tap.
type MenuItem struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Calories    int
	MealType    string `gorm:"size:20"`
	Description string `gorm:"type:text"`
}
