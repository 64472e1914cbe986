package services

import (
	"errors"
	"testing"
	"time"

	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/models"
)

func TestGetDashboard_RequiresOnboarding(t *testing.T) {
	setupTestDB(t)

	if _, err := GetDashboard(1, time.Now()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("got %v, want ErrProfileNotFound", err)
	}
}

func TestGetDashboard(t *testing.T) {
	setupTestDB(t)

	if _, err := UpsertProfile(1, ProfileInput{
		HeightCm: 165, StartWeight: 80, GoalWeight: 65, CalorieTarget: 1800, Age: 30, Sex: "female",
	}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	now := time.Now()
	mustAppend(t, 1, EntryInput{Timestamp: tsPtr(now.AddDate(0, 0, -3)), Weight: 80})
	mustAppend(t, 1, EntryInput{Timestamp: tsPtr(now.Add(-2 * time.Hour)), Weight: 72})
	mustAppend(t, 1, EntryInput{Timestamp: tsPtr(now.Add(-1 * time.Hour)), Calories: 2000, Notes: "big lunch"})

	d, err := GetDashboard(1, now)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if d.TodayTotal != 2000 {
		t.Errorf("today total = %d, want 2000", d.TodayTotal)
	}
	if d.Remaining != -200 || !d.OverBudget {
		t.Errorf("remaining = %v over=%v, want -200/true", d.Remaining, d.OverBudget)
	}
	if d.LatestWeight != 72 {
		t.Errorf("latest weight = %v, want 72", d.LatestWeight)
	}
	if d.WeightLossPct != 10.0 {
		t.Errorf("loss pct = %v, want 10.0", d.WeightLossPct)
	}
	// BMI at 72kg / 1.65m = 26.45
	if d.BMI != 26.45 {
		t.Errorf("bmi = %v, want 26.45", d.BMI)
	}
	if d.BMICategory != "Overweight" {
		t.Errorf("bmi category = %q", d.BMICategory)
	}
	if d.RecommendedTarget == 0 {
		t.Error("recommended target missing")
	}
}

func TestGetDashboard_NoEntriesFallsBackToStartWeight(t *testing.T) {
	setupTestDB(t)

	if _, err := UpsertProfile(1, ProfileInput{
		HeightCm: 165, StartWeight: 80, GoalWeight: 65, CalorieTarget: 1800, Age: 30, Sex: "female",
	}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	d, err := GetDashboard(1, time.Now())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if d.LatestWeight != 80 || d.WeightLossPct != 0 {
		t.Errorf("empty log: latest=%v loss=%v, want 80/0", d.LatestWeight, d.WeightLossPct)
	}
	if d.Streak != 0 {
		t.Errorf("streak = %d, want 0", d.Streak)
	}
}

func TestLeaderboard_RanksByLossPercent(t *testing.T) {
	setupTestDB(t)

	for i, u := range []struct {
		id    uint
		name  string
		start float64
		now   float64
	}{
		{1, "Me", 80, 72},     // 10%
		{2, "Sister", 60, 57}, // 5%
	} {
		config.DB.Create(&models.User{Email: u.name + "@example.com", Password: "x", DisplayName: u.name})
		if _, err := UpsertProfile(u.id, ProfileInput{
			HeightCm: 160, StartWeight: u.start, GoalWeight: 55, CalorieTarget: 1600, Age: 30 + i, Sex: "female",
		}); err != nil {
			t.Fatalf("UpsertProfile: %v", err)
		}
		ts := time.Now().AddDate(0, 0, -10)
		mustAppend(t, u.id, EntryInput{Timestamp: tsPtr(ts), Weight: u.start})
		mustAppend(t, u.id, EntryInput{Weight: u.now})
	}

	rows, err := Leaderboard(time.Now())
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].DisplayName != "Me" || rows[0].WeightLossPct != 10.0 {
		t.Errorf("rows[0] = %+v, want Me at 10%%", rows[0])
	}
	if rows[1].DisplayName != "Sister" || rows[1].WeightLossPct != 5.0 {
		t.Errorf("rows[1] = %+v, want Sister at 5%%", rows[1])
	}
}
