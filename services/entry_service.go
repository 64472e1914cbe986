package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/badinlee/sister-fitness/config"
	"github.com/badinlee/sister-fitness/models"
	"github.com/badinlee/sister-fitness/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEditConflict is returned when a day edit was based on a stale read.
// The client re-fetches the day and reapplies its changes; nothing is
// silently overwritten.
var ErrEditConflict = errors.New("day was modified since it was loaded")

type EntryInput struct {
	Timestamp *time.Time `json:"timestamp"` // defaults to now
	Weight    float64    `json:"weight"`
	Calories  int        `json:"calories"`
	Notes     string     `json:"notes"`
	MealType  string     `json:"meal_type"`
	PhotoURL  string     `json:"photo_url"`
}

// AppendEntry adds one row to the user's log. No deduplication, no
// uniqueness constraint beyond the synthetic UID.
func AppendEntry(userID uint, in EntryInput) (*models.LogEntry, error) {
	mealType := in.MealType
	if mealType == "" {
		mealType = models.MealSnack
	}
	if !models.ValidMealType(mealType) {
		return nil, fmt.Errorf("invalid meal_type %q", in.MealType)
	}

	ts := time.Now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}

	entry := &models.LogEntry{
		UID:       uuid.NewString(),
		UserID:    userID,
		Timestamp: ts,
		Weight:    in.Weight,
		Calories:  in.Calories,
		Notes:     in.Notes,
		MealType:  mealType,
		PhotoURL:  in.PhotoURL,
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return nil, err
	}

	notifyIfOverBudget(userID, entry, ts)

	return entry, nil
}

// notifyIfOverBudget fires a warning the first time an append pushes the
// day past the profile target. Best-effort: a missing profile or a dead
// alert channel never fails the append.
func notifyIfOverBudget(userID uint, entry *models.LogEntry, now time.Time) {
	if entry.Calories <= 0 {
		return
	}
	profile, err := GetProfile(userID)
	if err != nil || profile.CalorieTarget <= 0 {
		return
	}
	entries, err := ListDayEntries(userID, now)
	if err != nil {
		utils.Log.Warnf("over-budget check skipped for user %d: %v", userID, err)
		return
	}
	total := TodayTotal(entries, now)
	target := int(profile.CalorieTarget)
	if total > target && total-entry.Calories <= target {
		EmitAlert(userID, "warning", fmt.Sprintf(
			"You went over your calorie limit by %d. Try a lighter dinner tonight.", total-target))
	}
}

// ListDayEntries returns the user's rows for one calendar day, ordered
// by timestamp. Order is always explicit; append order is never trusted.
func ListDayEntries(userID uint, date time.Time) ([]models.LogEntry, error) {
	start := dayStart(date)
	end := start.Add(24 * time.Hour)

	var entries []models.LogEntry
	err := config.DB.
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp ASC").
		Find(&entries).Error
	return entries, err
}

func ListAllEntries(userID uint) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	err := config.DB.
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&entries).Error
	return entries, err
}

// DayRevision is the optimistic-concurrency token for a day: the newest
// updated_at among its rows. Clients pass it back to ReplaceDay.
func DayRevision(entries []models.LogEntry) time.Time {
	var rev time.Time
	for _, e := range entries {
		if e.UpdatedAt.After(rev) {
			rev = e.UpdatedAt
		}
	}
	return rev
}

// DayEditRow is one row of the edit grid. A row with a UID edits or
// keeps an existing entry; nil fields leave the stored values alone, so
// per-row timestamps and weight snapshots survive an edit untouched
// unless the editor changed them. A row without a UID is an insert.
type DayEditRow struct {
	UID       string     `json:"uid"`
	Timestamp *time.Time `json:"timestamp"`
	Weight    *float64   `json:"weight"`
	Calories  *int       `json:"calories"`
	Notes     *string    `json:"notes"`
	MealType  *string    `json:"meal_type"`
}

// ReplaceDay reconciles one user-day against the edited grid inside a
// single transaction. Stored rows absent from the grid are deleted.
// If any stored row changed after baseRevision the whole edit fails
// with ErrEditConflict; a zero baseRevision skips the check.
func ReplaceDay(userID uint, date time.Time, baseRevision time.Time, rows []DayEditRow) ([]models.LogEntry, error) {
	start := dayStart(date)
	end := start.Add(24 * time.Hour)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.LogEntry
		if err := tx.
			Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
			Order("timestamp ASC").
			Find(&existing).Error; err != nil {
			return err
		}

		if !baseRevision.IsZero() {
			for _, e := range existing {
				if e.UpdatedAt.After(baseRevision) {
					return ErrEditConflict
				}
			}
		}

		byUID := make(map[string]*models.LogEntry, len(existing))
		for i := range existing {
			byUID[existing[i].UID] = &existing[i]
		}

		kept := make(map[string]bool, len(rows))
		for _, r := range rows {
			if r.UID == "" {
				ts := start.Add(12 * time.Hour) // midday default for rows typed straight into the grid
				if r.Timestamp != nil {
					ts = *r.Timestamp
				}
				entry := models.LogEntry{
					UID:       uuid.NewString(),
					UserID:    userID,
					Timestamp: ts,
					MealType:  models.MealSnack,
				}
				applyEdit(&entry, r)
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
				continue
			}

			entry, ok := byUID[r.UID]
			if !ok {
				return fmt.Errorf("unknown row %s for this day", r.UID)
			}
			kept[r.UID] = true
			applyEdit(entry, r)
			if err := tx.Save(entry).Error; err != nil {
				return err
			}
		}

		for uid, entry := range byUID {
			if !kept[uid] {
				if err := tx.Delete(entry).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ListDayEntries(userID, date)
}

func applyEdit(entry *models.LogEntry, r DayEditRow) {
	if r.Timestamp != nil {
		entry.Timestamp = *r.Timestamp
	}
	if r.Weight != nil {
		entry.Weight = *r.Weight
	}
	if r.Calories != nil {
		entry.Calories = *r.Calories
	}
	if r.Notes != nil {
		entry.Notes = *r.Notes
	}
	if r.MealType != nil && models.ValidMealType(*r.MealType) {
		entry.MealType = *r.MealType
	}
}
