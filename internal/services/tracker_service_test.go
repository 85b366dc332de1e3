package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/cyra-health/cyra/internal/cycle"
	"github.com/cyra-health/cyra/internal/models"
)

type memoryStore struct {
	records  []models.CycleRecord
	settings map[uint]models.CycleSettings
	nextID   uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{settings: map[uint]models.CycleSettings{}, nextID: 1}
}

func (store *memoryStore) ListByUser(userID uint, limit int) ([]models.CycleRecord, error) {
	matched := []models.CycleRecord{}
	for _, record := range store.records {
		if record.UserID == userID {
			matched = append(matched, record)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartDate.After(matched[j].StartDate)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (store *memoryStore) FindByID(userID uint, id uint) (models.CycleRecord, bool, error) {
	for _, record := range store.records {
		if record.UserID == userID && record.ID == id {
			return record, true, nil
		}
	}
	return models.CycleRecord{}, false, nil
}

func (store *memoryStore) FindByDate(userID uint, dayStart time.Time, dayEnd time.Time) (models.CycleRecord, bool, error) {
	for _, record := range store.records {
		if record.UserID == userID && !record.StartDate.Before(dayStart) && record.StartDate.Before(dayEnd) {
			return record, true, nil
		}
	}
	return models.CycleRecord{}, false, nil
}

func (store *memoryStore) FindLatestBefore(userID uint, dayStart time.Time) (models.CycleRecord, bool, error) {
	var latest models.CycleRecord
	found := false
	for _, record := range store.records {
		if record.UserID != userID || !record.StartDate.Before(dayStart) {
			continue
		}
		if !found || record.StartDate.After(latest.StartDate) {
			latest = record
			found = true
		}
	}
	return latest, found, nil
}

func (store *memoryStore) Create(record *models.CycleRecord) error {
	record.ID = store.nextID
	store.nextID++
	store.records = append(store.records, *record)
	return nil
}

func (store *memoryStore) Save(record *models.CycleRecord) error {
	for i := range store.records {
		if store.records[i].ID == record.ID {
			store.records[i] = *record
			return nil
		}
	}
	return errors.New("record not stored")
}

func (store *memoryStore) DeleteAllByUser(userID uint) error {
	kept := store.records[:0]
	for _, record := range store.records {
		if record.UserID != userID {
			kept = append(kept, record)
		}
	}
	store.records = kept
	return nil
}

func (store *memoryStore) FindByUser(userID uint) (models.CycleSettings, bool, error) {
	settings, ok := store.settings[userID]
	return settings, ok, nil
}

func (store *memoryStore) CreateSettings(settings *models.CycleSettings) error {
	store.settings[settings.UserID] = *settings
	return nil
}

func (store *memoryStore) SaveSettings(settings *models.CycleSettings) error {
	store.settings[settings.UserID] = *settings
	return nil
}

func (store *memoryStore) DeleteByUser(userID uint) error {
	delete(store.settings, userID)
	return nil
}

// settingsAdapter satisfies CycleSettingsStore on top of memoryStore without
// colliding with the record-store method set.
type settingsAdapter struct{ store *memoryStore }

func (adapter settingsAdapter) FindByUser(userID uint) (models.CycleSettings, bool, error) {
	return adapter.store.FindByUser(userID)
}

func (adapter settingsAdapter) Create(settings *models.CycleSettings) error {
	return adapter.store.CreateSettings(settings)
}

func (adapter settingsAdapter) Save(settings *models.CycleSettings) error {
	return adapter.store.SaveSettings(settings)
}

func (adapter settingsAdapter) DeleteByUser(userID uint) error {
	return adapter.store.DeleteByUser(userID)
}

func newTestTracker(store *memoryStore, today string) *TrackerService {
	service := NewTrackerService(store, settingsAdapter{store: store}, cycle.DefaultConfig(), time.UTC)
	return service.WithClock(func() time.Time { return mustParseDay(today) })
}

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestLogPeriodStartBuildsHistory(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	first, err := tracker.LogPeriodStart(1, mustParseDay("2024-01-01"), nil)
	if err != nil {
		t.Fatalf("first period start failed: %v", err)
	}
	if first.CycleLength != nil {
		t.Fatalf("first period must have no cycle length, got %d", *first.CycleLength)
	}

	second, err := tracker.LogPeriodStart(1, mustParseDay("2024-01-29"), nil)
	if err != nil {
		t.Fatalf("second period start failed: %v", err)
	}
	if second.CycleLength == nil || *second.CycleLength != 28 {
		t.Fatalf("expected cycle length 28, got %v", second.CycleLength)
	}

	if _, err := tracker.LogPeriodStart(1, mustParseDay("2024-02-26"), nil); err != nil {
		t.Fatalf("third period start failed: %v", err)
	}

	insights, err := tracker.Insights(1)
	if err != nil {
		t.Fatalf("insights failed: %v", err)
	}
	if insights.AverageCycleLength != 28 {
		t.Fatalf("expected average cycle length 28, got %d", insights.AverageCycleLength)
	}
	if !insights.IsRegular {
		t.Fatalf("expected identical cycles to be regular")
	}

	prediction, err := tracker.Prediction(1)
	if err != nil {
		t.Fatalf("prediction failed: %v", err)
	}
	if prediction == nil {
		t.Fatalf("expected a prediction")
	}
	if got := prediction.PredictedStartDate.Format("2006-01-02"); got != "2024-03-25" {
		t.Fatalf("unexpected predicted start: %s", got)
	}
	if prediction.DaysUntil != 24 {
		t.Fatalf("expected 24 days until, got %d", prediction.DaysUntil)
	}

	settings, err := tracker.Settings(1)
	if err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if settings.AverageCycleLength != 28 {
		t.Fatalf("expected cached average 28, got %d", settings.AverageCycleLength)
	}
	if settings.LastCalculatedAt == nil {
		t.Fatalf("expected a recomputation timestamp")
	}
}

func TestLogPeriodStartRejectsDuplicateAndBackdated(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	if _, err := tracker.LogPeriodStart(1, mustParseDay("2024-02-01"), nil); err != nil {
		t.Fatalf("seed period start failed: %v", err)
	}

	if _, err := tracker.LogPeriodStart(1, mustParseDay("2024-02-01"), nil); !errors.Is(err, ErrStartNotAfterCurrent) {
		t.Fatalf("expected ErrStartNotAfterCurrent for same day, got %v", err)
	}
	if _, err := tracker.LogPeriodStart(1, mustParseDay("2024-01-15"), nil); !errors.Is(err, ErrStartNotAfterCurrent) {
		t.Fatalf("expected ErrStartNotAfterCurrent for earlier day, got %v", err)
	}
	if _, err := tracker.LogPeriodStart(1, time.Time{}, nil); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for zero date, got %v", err)
	}
}

func TestLogPeriodStartUpgradesSymptomRecord(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	severe := models.SeveritySevere
	symptomOnly, err := tracker.LogSymptoms(1, mustParseDay("2024-02-10"), SymptomInput{Cramps: &severe})
	if err != nil {
		t.Fatalf("symptom log failed: %v", err)
	}
	if symptomOnly.IsPeriodStart {
		t.Fatalf("symptom-only record must not be a period start")
	}

	upgraded, err := tracker.LogPeriodStart(1, mustParseDay("2024-02-10"), nil)
	if err != nil {
		t.Fatalf("upgrade failed: %v", err)
	}
	if upgraded.ID != symptomOnly.ID {
		t.Fatalf("expected the existing record to be upgraded in place")
	}
	if !upgraded.IsPeriodStart {
		t.Fatalf("expected the record to become a period start")
	}
	if upgraded.Cramps == nil || *upgraded.Cramps != models.SeveritySevere {
		t.Fatalf("expected logged symptoms to survive the upgrade")
	}
}

func TestLogSymptomsMergesIntoExisting(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	mild := models.SeverityMild
	stress := 4
	if _, err := tracker.LogSymptoms(1, mustParseDay("2024-02-10"), SymptomInput{Cramps: &mild}); err != nil {
		t.Fatalf("first symptom log failed: %v", err)
	}

	merged, err := tracker.LogSymptoms(1, mustParseDay("2024-02-10"), SymptomInput{StressLevel: &stress})
	if err != nil {
		t.Fatalf("second symptom log failed: %v", err)
	}
	if merged.Cramps == nil || *merged.Cramps != models.SeverityMild {
		t.Fatalf("expected earlier cramps value to survive the merge")
	}
	if merged.StressLevel == nil || *merged.StressLevel != 4 {
		t.Fatalf("expected stress level 4 after merge, got %v", merged.StressLevel)
	}
	if merged.CycleLength != nil {
		t.Fatalf("symptom-only record must never gain a cycle length")
	}

	records, err := tracker.ListRecords(1, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single merged record, got %d", len(records))
	}
}

func TestLogSymptomsRejectsBadValues(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	bogus := "catastrophic"
	if _, err := tracker.LogSymptoms(1, mustParseDay("2024-02-10"), SymptomInput{Cramps: &bogus}); !errors.Is(err, ErrInvalidSymptomValue) {
		t.Fatalf("expected ErrInvalidSymptomValue, got %v", err)
	}

	stress := 9
	if _, err := tracker.LogSymptoms(1, mustParseDay("2024-02-10"), SymptomInput{StressLevel: &stress}); !errors.Is(err, ErrInvalidSymptomValue) {
		t.Fatalf("expected ErrInvalidSymptomValue for stress 9, got %v", err)
	}
}

func TestEndPeriod(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	record, err := tracker.LogPeriodStart(1, mustParseDay("2024-02-01"), nil)
	if err != nil {
		t.Fatalf("period start failed: %v", err)
	}

	ended, err := tracker.EndPeriod(1, record.ID, mustParseDay("2024-02-05"))
	if err != nil {
		t.Fatalf("end period failed: %v", err)
	}
	if ended.PeriodLength == nil || *ended.PeriodLength != 5 {
		t.Fatalf("expected period length 5, got %v", ended.PeriodLength)
	}
	if ended.EndDate == nil || ended.EndDate.Format("2006-01-02") != "2024-02-05" {
		t.Fatalf("unexpected end date: %v", ended.EndDate)
	}

	if _, err := tracker.EndPeriod(1, record.ID, mustParseDay("2024-01-31")); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if _, err := tracker.EndPeriod(1, 999, mustParseDay("2024-02-05")); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestEndPeriodSameDay(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	record, err := tracker.LogPeriodStart(1, mustParseDay("2024-02-01"), nil)
	if err != nil {
		t.Fatalf("period start failed: %v", err)
	}

	ended, err := tracker.EndPeriod(1, record.ID, mustParseDay("2024-02-01"))
	if err != nil {
		t.Fatalf("same-day end failed: %v", err)
	}
	if ended.PeriodLength == nil || *ended.PeriodLength != 1 {
		t.Fatalf("expected period length 1 for a same-day end, got %v", ended.PeriodLength)
	}
}

func TestEndPeriodRejectsSymptomRecord(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	mild := models.SeverityMild
	record, err := tracker.LogSymptoms(1, mustParseDay("2024-02-10"), SymptomInput{Cramps: &mild})
	if err != nil {
		t.Fatalf("symptom log failed: %v", err)
	}

	if _, err := tracker.EndPeriod(1, record.ID, mustParseDay("2024-02-12")); !errors.Is(err, ErrNotAPeriodRecord) {
		t.Fatalf("expected ErrNotAPeriodRecord, got %v", err)
	}
}

func TestDeleteAllData(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	if _, err := tracker.LogPeriodStart(1, mustParseDay("2024-02-01"), nil); err != nil {
		t.Fatalf("period start failed: %v", err)
	}
	if _, err := tracker.Settings(1); err != nil {
		t.Fatalf("settings bootstrap failed: %v", err)
	}

	if err := tracker.DeleteAllData(1); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}

	records, err := tracker.ListRecords(1, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records after wipe, got %d", len(records))
	}
	if _, found, _ := store.FindByUser(1); found {
		t.Fatalf("expected settings row to be gone")
	}
}

func TestSettingsBootstrapDefaults(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-01")

	settings, err := tracker.Settings(7)
	if err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if !settings.NotificationEnabled {
		t.Fatalf("expected notifications on by default")
	}
	if len(settings.ReminderDays) != 3 || settings.ReminderDays[0] != 3 {
		t.Fatalf("unexpected default reminder days: %v", settings.ReminderDays)
	}
	if settings.AverageCycleLength != 28 || settings.AveragePeriodLength != 5 {
		t.Fatalf("unexpected default averages: %d/%d", settings.AverageCycleLength, settings.AveragePeriodLength)
	}
}

func TestNotificationScheduleEndToEnd(t *testing.T) {
	store := newMemoryStore()
	tracker := newTestTracker(store, "2024-03-20")

	for _, day := range []string{"2024-01-01", "2024-01-29", "2024-02-26"} {
		if _, err := tracker.LogPeriodStart(1, mustParseDay(day), nil); err != nil {
			t.Fatalf("period start %s failed: %v", day, err)
		}
	}

	entries, err := tracker.NotificationSchedule(1)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	// Prediction lands on 2024-03-25; all three default offsets are upcoming.
	if len(entries) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(entries))
	}
	if got := entries[0].Date.Format("2006-01-02"); got != "2024-03-22" {
		t.Fatalf("unexpected first reminder date: %s", got)
	}
}

func TestSymptomInputFromMapWhitelist(t *testing.T) {
	input := SymptomInputFromMap(map[string]any{
		"flow":         "heavy",
		"stress_level": float64(3),
		"sleep_hours":  7.5,
		"is_admin":     true,
		"user_id":      99,
	})

	if input.Flow == nil || *input.Flow != models.FlowHeavy {
		t.Fatalf("expected flow heavy, got %v", input.Flow)
	}
	if input.StressLevel == nil || *input.StressLevel != 3 {
		t.Fatalf("expected stress 3, got %v", input.StressLevel)
	}
	if input.SleepHours == nil || *input.SleepHours != 7.5 {
		t.Fatalf("expected sleep 7.5, got %v", input.SleepHours)
	}
	if err := input.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}
