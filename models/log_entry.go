package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
	MealSnack     = "Snack"
)

// LogEntry is one logged event: a weight check-in (calories 0), a food
// item (weight 0), or both from a single check-in form.
type LogEntry struct {
	gorm.Model
	UID       string    `gorm:"type:varchar(36);uniqueIndex;not null"` // stable identity for the edit grid
	UserID    uint      `gorm:"index;not null"`
	Timestamp time.Time `gorm:"index;not null"`
	Weight    float64   // kg, 0 for pure food entries
	Calories  int       // kcal, 0 for pure weight check-ins
	Notes     string    `gorm:"type:text"`
	MealType  string    `gorm:"size:20"` // Breakfast|Lunch|Dinner|Snack
	PhotoURL  string
}

// ValidMealType reports whether t is one of the four meal slots.
func ValidMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}
