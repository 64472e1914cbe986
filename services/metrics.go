package services

import (
	"math"
	"time"

	"github.com/badinlee/sister-fitness/models"
)

// Metrics are pure functions over a user's log slice and profile. Every
// dashboard read recomputes them; nothing here touches the database.

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// TodayTotal sums calories over entries whose calendar date matches now.
func TodayTotal(entries []models.LogEntry, now time.Time) int {
	total := 0
	for _, e := range entries {
		if sameDay(e.Timestamp, now) {
			total += e.Calories
		}
	}
	return total
}

// Remaining is target minus today's total. May be negative; the caller
// surfaces negatives as an over-budget warning, never clamps.
func Remaining(target float64, todayTotal int) float64 {
	return target - float64(todayTotal)
}

// LatestWeight returns the weight of the most recent check-in by
// timestamp, skipping pure food entries. Zero when no weight was ever
// logged.
func LatestWeight(entries []models.LogEntry) float64 {
	var best time.Time
	var w float64
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if best.IsZero() || e.Timestamp.After(best) {
			best = e.Timestamp
			w = e.Weight
		}
	}
	return w
}

// FirstWeight returns the earliest logged weight, zero if none.
func FirstWeight(entries []models.LogEntry) float64 {
	var best time.Time
	var w float64
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if best.IsZero() || e.Timestamp.Before(best) {
			best = e.Timestamp
			w = e.Weight
		}
	}
	return w
}

// WeightLossPercent is (first - latest) / first * 100, rounded to two
// decimals. A zero or missing first weight yields 0 rather than a
// division by zero.
func WeightLossPercent(first, latest float64) float64 {
	if first <= 0 {
		return 0
	}
	return round2((first - latest) / first * 100)
}

// WeeklyBalance is target*7 minus calories consumed over the 7 calendar
// days ending today. Positive means "banked" (under budget).
func WeeklyBalance(target float64, entries []models.LogEntry, now time.Time) float64 {
	start := dayStart(now).AddDate(0, 0, -6)
	end := dayStart(now).AddDate(0, 0, 1)
	sum := 0
	for _, e := range entries {
		if !e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			sum += e.Calories
		}
	}
	return target*7 - float64(sum)
}

// Streak counts consecutive calendar days with at least one entry,
// ending today or yesterday. A gap before yesterday breaks it.
func Streak(entries []models.LogEntry, now time.Time) int {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[e.Timestamp.Format("2006-01-02")] = true
	}

	d := dayStart(now)
	if !days[d.Format("2006-01-02")] {
		d = d.AddDate(0, 0, -1) // an entry yesterday still keeps the streak alive
	}

	streak := 0
	for days[d.Format("2006-01-02")] {
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

// RecommendedTarget applies Mifflin-St Jeor to the profile and current
// weight: BMR x 1.2 activity factor, minus a fixed 500 kcal deficit.
// Returns 0 when the profile is too incomplete to compute.
func RecommendedTarget(p *models.Profile, weightKg float64) float64 {
	if p == nil || p.HeightCm <= 0 || p.Age <= 0 || weightKg <= 0 {
		return 0
	}
	sexTerm := -161.0 // female
	if p.Sex == "male" {
		sexTerm = 5.0
	}
	bmr := 10*weightKg + 6.25*p.HeightCm - 5*float64(p.Age) + sexTerm
	return math.Round(bmr*1.2 - 500)
}
