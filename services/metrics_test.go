package services

import (
	"testing"
	"time"

	"github.com/badinlee/sister-fitness/models"
)

func entryAt(ts time.Time, weight float64, calories int) models.LogEntry {
	return models.LogEntry{Timestamp: ts, Weight: weight, Calories: calories}
}

func TestTodayTotal_OnlyCountsToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
	entries := []models.LogEntry{
		entryAt(now.Add(-10*time.Hour), 0, 400), // this morning
		entryAt(now.Add(-1*time.Hour), 0, 600),
		entryAt(now.AddDate(0, 0, -1), 0, 900), // yesterday
	}

	if got := TodayTotal(entries, now); got != 1000 {
		t.Errorf("TodayTotal = %d, want 1000", got)
	}
}

func TestRemaining_MayBeNegative(t *testing.T) {
	if got := Remaining(1800, 2000); got != -200 {
		t.Errorf("Remaining(1800, 2000) = %v, want -200", got)
	}
	if got := Remaining(1800, 1500); got != 300 {
		t.Errorf("Remaining(1800, 1500) = %v, want 300", got)
	}
}

func TestLatestWeight_ByTimestampNotPosition(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	// slice deliberately out of chronological order, as after a bulk edit
	entries := []models.LogEntry{
		entryAt(now.AddDate(0, 0, -1), 71.5, 0),
		entryAt(now, 70.2, 0),
		entryAt(now.AddDate(0, 0, -3), 72.8, 0),
		entryAt(now.Add(time.Hour), 0, 500), // food entry, no weight
	}

	if got := LatestWeight(entries); got != 70.2 {
		t.Errorf("LatestWeight = %v, want 70.2", got)
	}
	if got := FirstWeight(entries); got != 72.8 {
		t.Errorf("FirstWeight = %v, want 72.8", got)
	}
}

func TestWeightLossPercent(t *testing.T) {
	if got := WeightLossPercent(80.0, 72.0); got != 10.0 {
		t.Errorf("WeightLossPercent(80, 72) = %v, want 10.0", got)
	}
	// gained weight: negative, not clamped
	if got := WeightLossPercent(80.0, 84.0); got != -5.0 {
		t.Errorf("WeightLossPercent(80, 84) = %v, want -5.0", got)
	}
	// zero start weight must not divide by zero
	if got := WeightLossPercent(0, 72.0); got != 0 {
		t.Errorf("WeightLossPercent(0, 72) = %v, want 0", got)
	}
}

func TestWeeklyBalance(t *testing.T) {
	now := time.Date(2026, 8, 29, 20, 0, 0, 0, time.UTC)

	// 7 days of entries summing to 10000 against a 1600/day target
	var entries []models.LogEntry
	daily := []int{1500, 1400, 1600, 1300, 1500, 1400, 1300} // = 10000
	for i, cals := range daily {
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), 0, cals))
	}
	// outside the window, must not contribute
	entries = append(entries, entryAt(now.AddDate(0, 0, -7), 0, 2500))

	if got := WeeklyBalance(1600, entries, now); got != 1200 {
		t.Errorf("WeeklyBalance = %v, want 1200 (banked)", got)
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	t.Run("ends today", func(t *testing.T) {
		entries := []models.LogEntry{
			entryAt(now, 0, 100),
			entryAt(now.AddDate(0, 0, -1), 0, 100),
			entryAt(now.AddDate(0, 0, -2), 0, 100),
			entryAt(now.AddDate(0, 0, -4), 0, 100), // gap breaks it
		}
		if got := Streak(entries, now); got != 3 {
			t.Errorf("Streak = %d, want 3", got)
		}
	})

	t.Run("yesterday keeps it alive", func(t *testing.T) {
		entries := []models.LogEntry{
			entryAt(now.AddDate(0, 0, -1), 0, 100),
			entryAt(now.AddDate(0, 0, -2), 0, 100),
		}
		if got := Streak(entries, now); got != 2 {
			t.Errorf("Streak = %d, want 2", got)
		}
	})

	t.Run("gap before yesterday breaks it", func(t *testing.T) {
		entries := []models.LogEntry{
			entryAt(now.AddDate(0, 0, -2), 0, 100),
		}
		if got := Streak(entries, now); got != 0 {
			t.Errorf("Streak = %d, want 0", got)
		}
	})

	t.Run("no entries", func(t *testing.T) {
		if got := Streak(nil, now); got != 0 {
			t.Errorf("Streak = %d, want 0", got)
		}
	})
}

func TestRecommendedTarget(t *testing.T) {
	p := &models.Profile{HeightCm: 165, Age: 30, Sex: "female"}
	// BMR = 10*70 + 6.25*165 - 5*30 - 161 = 1420.25; *1.2 - 500 = 1204.3
	if got := RecommendedTarget(p, 70); got != 1204 {
		t.Errorf("RecommendedTarget = %v, want 1204", got)
	}

	male := &models.Profile{HeightCm: 180, Age: 40, Sex: "male"}
	// BMR = 10*85 + 6.25*180 - 5*40 + 5 = 1780; *1.2 - 500 = 1636
	if got := RecommendedTarget(male, 85); got != 1636 {
		t.Errorf("RecommendedTarget (male) = %v, want 1636", got)
	}

	if got := RecommendedTarget(&models.Profile{}, 70); got != 0 {
		t.Errorf("RecommendedTarget on empty profile = %v, want 0", got)
	}
	if got := RecommendedTarget(nil, 70); got != 0 {
		t.Errorf("RecommendedTarget(nil) = %v, want 0", got)
	}
}
