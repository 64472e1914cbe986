package services

import (
	"sort"
	"time"

	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/models"
	"github.com/badinlee/sister-fitness/utils"
)

// Dashboard is everything the main view renders, computed fresh from
// the log on every read.
type Dashboard struct {
	Date          string  `json:"date"`
	TodayTotal    int     `json:"today_total"`
	CalorieTarget float64 `json:"calorie_target"`
	Remaining     float64 `json:"remaining"` // negative = over budget
	OverBudget    bool    `json:"over_budget"`

	LatestWeight  float64 `json:"latest_weight"`
	StartWeight   float64 `json:"start_weight"`
	GoalWeight    float64 `json:"goal_weight"`
	WeightLossPct float64 `json:"weight_loss_pct"`

	WeeklyBalance float64 `json:"weekly_balance"` // positive = banked
	Streak        int     `json:"streak"`

	BMI         float64 `json:"bmi,omitempty"`
	BMICategory string  `json:"bmi_category,omitempty"`

	RecommendedTarget float64 `json:"recommended_target,omitempty"`
}

// GetDashboard assembles the metrics for one user. Returns
// ErrProfileNotFound when onboarding has not happened yet.
func GetDashboard(userID uint, now time.Time) (*Dashboard, error) {
	profile, err := GetProfile(userID)
	if err != nil {
		return nil, err
	}
	entries, err := ListAllEntries(userID)
	if err != nil {
		return nil, err
	}

	todayTotal := TodayTotal(entries, now)
	latest := LatestWeight(entries)
	first := FirstWeight(entries)
	if first <= 0 {
		first = profile.StartWeight
	}
	if latest <= 0 {
		latest = profile.StartWeight
	}
	remaining := Remaining(profile.CalorieTarget, todayTotal)

	d := &Dashboard{
		Date:          now.Format("2006-01-02"),
		TodayTotal:    todayTotal,
		CalorieTarget: profile.CalorieTarget,
		Remaining:     remaining,
		OverBudget:    remaining < 0,
		LatestWeight:  latest,
		StartWeight:   first,
		GoalWeight:    profile.GoalWeight,
		WeightLossPct: WeightLossPercent(first, latest),
		WeeklyBalance: WeeklyBalance(profile.CalorieTarget, entries, now),
		Streak:        Streak(entries, now),
	}

	if bmi, err := utils.CalculateBMI(profile.HeightCm, latest); err == nil {
		d.BMI = round2(bmi)
		d.BMICategory = utils.BMICategory(bmi)
	}
	d.RecommendedTarget = RecommendedTarget(profile, latest)

	return d, nil
}

type LeaderboardRow struct {
	UserID        uint    `json:"user_id"`
	DisplayName   string  `json:"display_name"`
	StartWeight   float64 `json:"start_weight"`
	LatestWeight  float64 `json:"latest_weight"`
	WeightLossPct float64 `json:"weight_loss_pct"`
}

// Leaderboard ranks every onboarded user by weight-loss percentage,
// each computed independently from their own first and latest weights.
func Leaderboard(now time.Time) ([]LeaderboardRow, error) {
	var profiles []models.Profile
	if err := config.DB.Find(&profiles).Error; err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(profiles))
	for _, p := range profiles {
		entries, err := ListAllEntries(p.UserID)
		if err != nil {
			return nil, err
		}
		first := FirstWeight(entries)
		latest := LatestWeight(entries)
		if first <= 0 {
			first = p.StartWeight
		}
		if latest <= 0 {
			latest = first
		}

		var user models.User
		name := ""
		if err := config.DB.First(&user, p.UserID).Error; err == nil {
			name = user.DisplayName
		}

		rows = append(rows, LeaderboardRow{
			UserID:        p.UserID,
			DisplayName:   name,
			StartWeight:   first,
			LatestWeight:  latest,
			WeightLossPct: WeightLossPercent(first, latest),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].WeightLossPct > rows[j].WeightLossPct
	})
	return rows, nil
}
