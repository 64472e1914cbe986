package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/models"
	"github.com/badinlee/sister-fitness/utils"
)

// WeeklySummary is the once-a-week rollup, also rendered into the
// report email.
type WeeklySummary struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	EntriesLogged int     `json:"entries_logged"`
	DaysLogged    int     `json:"days_logged"`
	Consumed      int     `json:"consumed"`
	WeeklyBalance float64 `json:"weekly_balance"`
	Banked        bool    `json:"banked"`
	LatestWeight  float64 `json:"latest_weight"`
	WeightLossPct float64 `json:"weight_loss_pct"`
}

func BuildWeeklySummary(userID uint, now time.Time) (*WeeklySummary, error) {
	profile, err := GetProfile(userID)
	if err != nil {
		return nil, err
	}
	entries, err := ListAllEntries(userID)
	if err != nil {
		return nil, err
	}

	start := dayStart(now).AddDate(0, 0, -6)
	end := dayStart(now).AddDate(0, 0, 1)

	consumed := 0
	count := 0
	days := map[string]bool{}
	for _, e := range entries {
		if e.Timestamp.Before(start) || !e.Timestamp.Before(end) {
			continue
		}
		count++
		consumed += e.Calories
		days[e.Timestamp.Format("2006-01-02")] = true
	}

	first := FirstWeight(entries)
	if first <= 0 {
		first = profile.StartWeight
	}
	latest := LatestWeight(entries)
	balance := WeeklyBalance(profile.CalorieTarget, entries, now)

	return &WeeklySummary{
		From:          start.Format("2006-01-02"),
		To:            dayStart(now).Format("2006-01-02"),
		EntriesLogged: count,
		DaysLogged:    len(days),
		Consumed:      consumed,
		WeeklyBalance: balance,
		Banked:        balance > 0,
		LatestWeight:  latest,
		WeightLossPct: WeightLossPercent(first, latest),
	}, nil
}

func renderWeeklyReport(name string, s *WeeklySummary) string {
	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "Hi %s,\n\n", name)
	}
	fmt.Fprintf(&sb, "Your week %s to %s:\n\n", s.From, s.To)
	fmt.Fprintf(&sb, "  Entries logged: %d (across %d days)\n", s.EntriesLogged, s.DaysLogged)
	fmt.Fprintf(&sb, "  Calories eaten: %d\n", s.Consumed)
	if s.Banked {
		fmt.Fprintf(&sb, "  Banked calories: %.0f under budget. Nice!\n", s.WeeklyBalance)
	} else {
		fmt.Fprintf(&sb, "  Over budget by %.0f this week.\n", -s.WeeklyBalance)
	}
	if s.LatestWeight > 0 {
		fmt.Fprintf(&sb, "  Latest weight: %.1f kg (%.1f%% lost so far)\n", s.LatestWeight, s.WeightLossPct)
	}
	sb.WriteString("\nKeep checking in!\n")
	return sb.String()
}

// EmailWeeklyReport builds this week's summary and mails it to the
// user's account address.
func EmailWeeklyReport(userID uint, now time.Time) error {
	summary, err := BuildWeeklySummary(userID, now)
	if err != nil {
		return err
	}
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}
	return utils.SendWeeklyReportEmail(user.Email, renderWeeklyReport(user.DisplayName, summary))
}
