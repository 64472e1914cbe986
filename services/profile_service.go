package services

import (
	"errors"
	"time"

	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/models"

	"gorm.io/gorm"
)

// ErrProfileNotFound gates the dashboard: without a profile the client
// must run onboarding before any metric is meaningful.
var ErrProfileNotFound = errors.New("profile not found")

type ProfileInput struct {
	HeightCm      float64 `json:"height_cm"`
	StartWeight   float64 `json:"start_weight"`
	GoalWeight    float64 `json:"goal_weight"`
	CalorieTarget float64 `json:"calorie_target"`
	GoalDate      string  `json:"goal_date"` // YYYY-MM-DD, optional
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
}

func GetProfile(userID uint) (*models.Profile, error) {
	var p models.Profile
	err := config.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates the profile on first use and edits it in place
// afterwards. Zero-valued fields in the input leave stored values alone,
// matching the goal-edit forms which submit only what changed.
func UpsertProfile(userID uint, in ProfileInput) (*models.Profile, error) {
	var p models.Profile
	err := config.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	created := errors.Is(err, gorm.ErrRecordNotFound)
	if created {
		p = models.Profile{UserID: userID}
	}

	if in.HeightCm > 0 {
		p.HeightCm = in.HeightCm
	}
	if in.StartWeight > 0 {
		p.StartWeight = in.StartWeight
	}
	if in.GoalWeight > 0 {
		p.GoalWeight = in.GoalWeight
	}
	if in.CalorieTarget > 0 {
		p.CalorieTarget = in.CalorieTarget
	}
	if in.Age > 0 {
		p.Age = in.Age
	}
	if in.Sex != "" {
		p.Sex = in.Sex
	}
	if in.GoalDate != "" {
		d, perr := time.Parse("2006-01-02", in.GoalDate)
		if perr != nil {
			return nil, errors.New("invalid goal_date, use YYYY-MM-DD")
		}
		p.GoalDate = &d
	}

	if created {
		if err := config.DB.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err := config.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ApplyRecommendedTarget overwrites the stored calorie target with the
// Mifflin-St Jeor suggestion. Explicit apply only; the dashboard just
// shows the suggestion next to the stored target.
func ApplyRecommendedTarget(userID uint) (*models.Profile, error) {
	p, err := GetProfile(userID)
	if err != nil {
		return nil, err
	}

	entries, err := ListAllEntries(userID)
	if err != nil {
		return nil, err
	}
	weight := LatestWeight(entries)
	if weight <= 0 {
		weight = p.StartWeight
	}

	rec := RecommendedTarget(p, weight)
	if rec <= 0 {
		return nil, errors.New("profile incomplete: need height, age and a logged weight")
	}

	p.CalorieTarget = rec
	if err := config.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
