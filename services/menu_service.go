package services

import (
	"errors"

	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/models"

	"gorm.io/gorm"
)

type MenuItemInput struct {
	Name        string `json:"name" binding:"required"`
	Calories    int    `json:"calories"`
	MealType    string `json:"meal_type"`
	Description string `json:"description"`
}

// SaveMenuItem adds a preset to the user's quick menu.
func SaveMenuItem(userID uint, in MenuItemInput) (*models.MenuItem, error) {
	if in.MealType != "" && !models.ValidMealType(in.MealType) {
		return nil, errors.New("invalid meal_type")
	}
	item := &models.MenuItem{
		UserID:      userID,
		Name:        in.Name,
		Calories:    in.Calories,
		MealType:    in.MealType,
		Description: in.Description,
	}
	if err := config.DB.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func ListMenuItems(userID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := config.DB.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func DeleteMenuItem(userID, itemID uint) error {
	res := config.DB.
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LogMenuItem appends a log entry straight from a quick-menu preset.
func LogMenuItem(userID, itemID uint) (*models.LogEntry, error) {
	var item models.MenuItem
	if err := config.DB.
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return AppendEntry(userID, EntryInput{
		Calories: item.Calories,
		Notes:    item.Name,
		MealType: item.MealType,
	})
}
