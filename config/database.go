package config

import (
	"fmt"

	"github.com/badinlee/sister-fitness/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(cfg *Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(DB); err != nil {
		return err
	}
	return SeedFoodRefs(DB)
}

// Migrate runs schema migrations for all models. Kept separate from InitDB
// so tests can run it against their own database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.LogEntry{},
		&models.MenuItem{},
		&models.FoodRef{},
		&models.Alert{},
		&models.UserDevice{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedFoodRefs fills the built-in food reference table on first run.
// Existing rows are left alone so user edits survive restarts.
func SeedFoodRefs(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.FoodRef{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	refs := []models.FoodRef{
		{Name: "white rice", Calories: 205, Serving: "1 cup cooked"},
		{Name: "brown rice", Calories: 215, Serving: "1 cup cooked"},
		{Name: "chicken breast", Calories: 165, Serving: "100 g"},
		{Name: "egg", Calories: 78, Serving: "1 large"},
		{Name: "banana", Calories: 105, Serving: "1 medium"},
		{Name: "apple", Calories: 95, Serving: "1 medium"},
		{Name: "bread", Calories: 79, Serving: "1 slice"},
		{Name: "oatmeal", Calories: 150, Serving: "1 cup cooked"},
		{Name: "salmon", Calories: 208, Serving: "100 g"},
		{Name: "milk", Calories: 103, Serving: "1 cup"},
		{Name: "yogurt", Calories: 100, Serving: "1 cup plain"},
		{Name: "potato", Calories: 161, Serving: "1 medium baked"},
		{Name: "pasta", Calories: 220, Serving: "1 cup cooked"},
		{Name: "salad", Calories: 33, Serving: "1 bowl, no dressing"},
		{Name: "instant noodles", Calories: 380, Serving: "1 pack"},
	}
	return db.Create(&refs).Error
}
