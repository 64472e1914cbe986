package models

import "gorm.io/gorm"

// FoodRef is a row of the built-in food reference table, the first stage
// of the hybrid local/AI food lookup. Seeded at migration time.
type FoodRef struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null"`
	Calories int    // kcal per typical serving
	Serving  string // e.g. "1 cup", "100 g"
}
