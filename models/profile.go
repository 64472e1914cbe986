package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds each user's body stats and goals. One row per user,
// created during onboarding and edited in place afterwards.
type Profile struct {
	gorm.Model
	UserID        uint    `gorm:"uniqueIndex;not null"`
	HeightCm      float64 // e.g. 165
	StartWeight   float64 // kg, recorded at onboarding
	GoalWeight    float64 // kg
	CalorieTarget float64 // kcal/day
	GoalDate      *time.Time
	Age           int
	Sex           string `gorm:"size:10"` // "female" | "male"
}
