package services

import (
	"errors"
	"testing"
	"time"

	"github.com/badinlee/sister-fitness/config"
)

func mustAppend(t *testing.T, userID uint, in EntryInput) string {
	t.Helper()
	entry, err := AppendEntry(userID, in)
	if err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	return entry.UID
}

func tsPtr(ts time.Time) *time.Time { return &ts }

func TestAppendThenQuery_IncludesEntryExactlyOnce(t *testing.T) {
	setupTestDB(t)

	now := time.Now()
	uid := mustAppend(t, 1, EntryInput{Calories: 450, Notes: "fried rice", MealType: "Lunch"})
	mustAppend(t, 2, EntryInput{Calories: 800, Notes: "other user"})
	mustAppend(t, 1, EntryInput{Timestamp: tsPtr(now.AddDate(0, 0, -1)), Calories: 900, Notes: "yesterday"})

	entries, err := ListDayEntries(1, now)
	if err != nil {
		t.Fatalf("ListDayEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries for today, want 1", len(entries))
	}
	if entries[0].UID != uid {
		t.Errorf("got UID %s, want %s", entries[0].UID, uid)
	}
	if got := TodayTotal(entries, now); got != 450 {
		t.Errorf("TodayTotal = %d, want 450 (other users/days must not contribute)", got)
	}
}

func TestAppendEntry_MealTypeHandling(t *testing.T) {
	setupTestDB(t)

	entry, err := AppendEntry(1, EntryInput{Calories: 100})
	if err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	if entry.MealType != "Snack" {
		t.Errorf("empty meal_type defaulted to %q, want Snack", entry.MealType)
	}

	if _, err := AppendEntry(1, EntryInput{Calories: 100, MealType: "Brunch"}); err == nil {
		t.Error("expected error for invalid meal_type")
	}
}

func TestReplaceDay_EditRoundTrip(t *testing.T) {
	setupTestDB(t)

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	breakfast := day.Add(8 * time.Hour)
	lunch := day.Add(13 * time.Hour)
	dinner := day.Add(19 * time.Hour)

	mustAppend(t, 1, EntryInput{Timestamp: tsPtr(breakfast), Weight: 71.3, Calories: 300, Notes: "oats", MealType: "Breakfast"})
	lunchUID := mustAppend(t, 1, EntryInput{Timestamp: tsPtr(lunch), Calories: 700, Notes: "pasta", MealType: "Lunch"})
	dinnerUID := mustAppend(t, 1, EntryInput{Timestamp: tsPtr(dinner), Calories: 600, Notes: "curry", MealType: "Dinner"})

	before, err := ListDayEntries(1, day)
	if err != nil {
		t.Fatalf("ListDayEntries: %v", err)
	}
	rev := DayRevision(before)

	// drop breakfast, change lunch calories, keep dinner untouched
	newCals := 550
	after, err := ReplaceDay(1, day, rev, []DayEditRow{
		{UID: lunchUID, Calories: &newCals},
		{UID: dinnerUID},
	})
	if err != nil {
		t.Fatalf("ReplaceDay: %v", err)
	}

	if len(after) != 2 {
		t.Fatalf("got %d entries after edit, want 2", len(after))
	}
	if after[0].UID != lunchUID || after[1].UID != dinnerUID {
		t.Fatalf("unexpected rows after edit: %s, %s", after[0].UID, after[1].UID)
	}
	if after[0].Calories != 550 {
		t.Errorf("edited calories = %d, want 550", after[0].Calories)
	}
	if after[0].Notes != "pasta" || after[0].MealType != "Lunch" {
		t.Errorf("unedited fields changed: notes=%q meal=%q", after[0].Notes, after[0].MealType)
	}
	// per-row timestamps must survive the edit, not collapse to one
	if !after[0].Timestamp.Equal(lunch) {
		t.Errorf("lunch timestamp = %v, want %v", after[0].Timestamp, lunch)
	}
	if !after[1].Timestamp.Equal(dinner) {
		t.Errorf("dinner timestamp = %v, want %v", after[1].Timestamp, dinner)
	}
	if after[1].Calories != 600 || after[1].Notes != "curry" {
		t.Errorf("untouched row changed: %+v", after[1])
	}
}

func TestReplaceDay_InsertNewRow(t *testing.T) {
	setupTestDB(t)

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	snackCals := 150
	snackNotes := "yogurt"
	entries, err := ReplaceDay(1, day, time.Time{}, []DayEditRow{
		{Calories: &snackCals, Notes: &snackNotes},
	})
	if err != nil {
		t.Fatalf("ReplaceDay: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].UID == "" {
		t.Error("inserted row has no UID")
	}
	if entries[0].Calories != 150 || entries[0].Notes != "yogurt" {
		t.Errorf("inserted row = %+v", entries[0])
	}
	if !sameDay(entries[0].Timestamp, day) {
		t.Errorf("inserted row landed on %v, want %v", entries[0].Timestamp, day)
	}
}

func TestReplaceDay_StaleRevisionConflicts(t *testing.T) {
	setupTestDB(t)

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	uid := mustAppend(t, 1, EntryInput{Timestamp: tsPtr(day.Add(12 * time.Hour)), Calories: 500, Notes: "lunch"})

	before, err := ListDayEntries(1, day)
	if err != nil {
		t.Fatalf("ListDayEntries: %v", err)
	}
	rev := DayRevision(before)

	time.Sleep(10 * time.Millisecond) // let updated_at advance

	cals := 400
	if _, err := ReplaceDay(1, day, rev, []DayEditRow{{UID: uid, Calories: &cals}}); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// replaying the same save against the old revision must conflict,
	// not silently double-apply
	if _, err := ReplaceDay(1, day, rev, []DayEditRow{{UID: uid, Calories: &cals}}); !errors.Is(err, ErrEditConflict) {
		t.Fatalf("second save with stale revision: got %v, want ErrEditConflict", err)
	}

	// with a fresh revision the retry goes through
	fresh, _ := ListDayEntries(1, day)
	if _, err := ReplaceDay(1, day, DayRevision(fresh), []DayEditRow{{UID: uid, Calories: &cals}}); err != nil {
		t.Fatalf("retry with fresh revision: %v", err)
	}
}

func TestReplaceDay_RejectsForeignRow(t *testing.T) {
	setupTestDB(t)

	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	otherUID := mustAppend(t, 2, EntryInput{Timestamp: tsPtr(day.Add(9 * time.Hour)), Calories: 300})

	if _, err := ReplaceDay(1, day, time.Time{}, []DayEditRow{{UID: otherUID}}); err == nil {
		t.Fatal("expected error when editing another user's row")
	}

	// and user 2's data is untouched
	entries, _ := ListDayEntries(2, day)
	if len(entries) != 1 {
		t.Errorf("other user's day has %d entries, want 1", len(entries))
	}
}

func TestAppendEntry_OverBudgetEmitsAlert(t *testing.T) {
	setupTestDB(t)
	InitAlertDeps(config.DB, nil, nil)

	if _, err := UpsertProfile(1, ProfileInput{HeightCm: 165, StartWeight: 72, GoalWeight: 65, CalorieTarget: 500, Age: 30, Sex: "female"}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	mustAppend(t, 1, EntryInput{Calories: 300})
	alerts, err := ListAlerts(config.DB, 1, 10)
	if err != nil {
		t.Fatalf("ListAlerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Fatalf("alert fired while under budget: %+v", alerts)
	}

	mustAppend(t, 1, EntryInput{Calories: 300}) // crosses 500
	alerts, _ = ListAlerts(config.DB, 1, 10)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts after crossing the target, want 1", len(alerts))
	}
	if alerts[0].Type != "warning" {
		t.Errorf("alert type = %q, want warning", alerts[0].Type)
	}

	mustAppend(t, 1, EntryInput{Calories: 100}) // already over; no second alert
	alerts, _ = ListAlerts(config.DB, 1, 10)
	if len(alerts) != 1 {
		t.Errorf("got %d alerts, want still 1 (only the crossing append fires)", len(alerts))
	}
}
