package services

import (
	"errors"
	"time"

	"github.com/cyra-health/cyra/internal/cycle"
	"github.com/cyra-health/cyra/internal/models"
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrStartNotAfterCurrent = errors.New("period start must be after the current cycle start")
	ErrPeriodAlreadyLogged  = errors.New("period already logged for this date")
	ErrRecordNotFound       = errors.New("cycle record not found")
	ErrNotAPeriodRecord     = errors.New("record is not a period start")
	ErrEndBeforeStart       = errors.New("period end before its start")
	ErrRecordLoadFailed     = errors.New("load cycle records failed")
	ErrRecordWriteFailed    = errors.New("write cycle record failed")
	ErrSettingsLoadFailed   = errors.New("load cycle settings failed")
	ErrSettingsWriteFailed  = errors.New("write cycle settings failed")
)

type CycleRecordStore interface {
	ListByUser(userID uint, limit int) ([]models.CycleRecord, error)
	FindByID(userID uint, id uint) (models.CycleRecord, bool, error)
	FindByDate(userID uint, dayStart time.Time, dayEnd time.Time) (models.CycleRecord, bool, error)
	FindLatestBefore(userID uint, dayStart time.Time) (models.CycleRecord, bool, error)
	Create(record *models.CycleRecord) error
	Save(record *models.CycleRecord) error
	DeleteAllByUser(userID uint) error
}

type CycleSettingsStore interface {
	FindByUser(userID uint) (models.CycleSettings, bool, error)
	Create(settings *models.CycleSettings) error
	Save(settings *models.CycleSettings) error
	DeleteByUser(userID uint) error
}

// TrackerService owns every mutation of a user's cycle history and keeps the
// cached settings fields in sync with the analytics engine. All derivations
// run over the most recent HistoryLimit records.
type TrackerService struct {
	records  CycleRecordStore
	settings CycleSettingsStore
	engine   cycle.Config
	location *time.Location
	now      func() time.Time
}

func NewTrackerService(records CycleRecordStore, settings CycleSettingsStore, engine cycle.Config, location *time.Location) *TrackerService {
	if location == nil {
		location = time.UTC
	}
	return &TrackerService{
		records:  records,
		settings: settings,
		engine:   engine,
		location: location,
		now:      time.Now,
	}
}

// WithClock replaces the clock, used by tests to pin "today".
func (service *TrackerService) WithClock(now func() time.Time) *TrackerService {
	service.now = now
	return service
}

// LogPeriodStart records a new period start. The cycle length is the gap in
// days from the previous period start; the first-ever period has none. An
// existing symptom-only record for the same date is upgraded in place.
func (service *TrackerService) LogPeriodStart(userID uint, day time.Time, symptoms *SymptomInput) (models.CycleRecord, error) {
	if day.IsZero() {
		return models.CycleRecord{}, ErrInvalidDate
	}
	if symptoms != nil {
		if err := symptoms.Validate(); err != nil {
			return models.CycleRecord{}, err
		}
	}

	dayStart, dayEnd := DayRange(day, service.location)

	latest, hasLatest, err := service.latestPeriodStart(userID)
	if err != nil {
		return models.CycleRecord{}, ErrRecordLoadFailed
	}

	var cycleLength *int
	if hasLatest {
		gap := daysBetween(latest.StartDate, dayStart)
		if gap <= 0 {
			return models.CycleRecord{}, ErrStartNotAfterCurrent
		}
		cycleLength = &gap
	}

	existing, found, err := service.records.FindByDate(userID, dayStart, dayEnd)
	if err != nil {
		return models.CycleRecord{}, ErrRecordLoadFailed
	}

	var record models.CycleRecord
	if found {
		if existing.IsPeriodStart {
			return models.CycleRecord{}, ErrPeriodAlreadyLogged
		}
		existing.IsPeriodStart = true
		existing.CycleLength = cycleLength
		if symptoms != nil {
			symptoms.applyTo(&existing)
		}
		if err := service.records.Save(&existing); err != nil {
			return models.CycleRecord{}, ErrRecordWriteFailed
		}
		record = existing
	} else {
		record = models.CycleRecord{
			UserID:        userID,
			StartDate:     dayStart,
			IsPeriodStart: true,
			CycleLength:   cycleLength,
			Mood:          models.MoodNeutral,
		}
		if symptoms != nil {
			symptoms.applyTo(&record)
		}
		if err := service.records.Create(&record); err != nil {
			return models.CycleRecord{}, ErrRecordWriteFailed
		}
	}

	if err := service.RecomputeSettings(userID); err != nil {
		return models.CycleRecord{}, err
	}
	return record, nil
}

// EndPeriod closes the period identified by recordID. The target record is
// addressed explicitly; "the most recent one" is the caller's decision.
func (service *TrackerService) EndPeriod(userID uint, recordID uint, day time.Time) (models.CycleRecord, error) {
	if day.IsZero() {
		return models.CycleRecord{}, ErrInvalidDate
	}

	record, found, err := service.records.FindByID(userID, recordID)
	if err != nil {
		return models.CycleRecord{}, ErrRecordLoadFailed
	}
	if !found {
		return models.CycleRecord{}, ErrRecordNotFound
	}
	if !record.IsPeriodStart {
		return models.CycleRecord{}, ErrNotAPeriodRecord
	}

	dayStart, _ := DayRange(day, service.location)
	periodLength := daysBetween(record.StartDate, dayStart) + 1
	if periodLength < 1 {
		return models.CycleRecord{}, ErrEndBeforeStart
	}

	endDate := dayStart
	record.EndDate = &endDate
	record.PeriodLength = &periodLength
	if err := service.records.Save(&record); err != nil {
		return models.CycleRecord{}, ErrRecordWriteFailed
	}

	if err := service.RecomputeSettings(userID); err != nil {
		return models.CycleRecord{}, err
	}
	return record, nil
}

// LogSymptoms merges symptom fields into the record for the given date,
// creating a symptom-only record (no cycle length) when none exists.
func (service *TrackerService) LogSymptoms(userID uint, day time.Time, input SymptomInput) (models.CycleRecord, error) {
	if day.IsZero() {
		return models.CycleRecord{}, ErrInvalidDate
	}
	if err := input.Validate(); err != nil {
		return models.CycleRecord{}, err
	}

	dayStart, dayEnd := DayRange(day, service.location)
	existing, found, err := service.records.FindByDate(userID, dayStart, dayEnd)
	if err != nil {
		return models.CycleRecord{}, ErrRecordLoadFailed
	}

	if found {
		input.applyTo(&existing)
		if err := service.records.Save(&existing); err != nil {
			return models.CycleRecord{}, ErrRecordWriteFailed
		}
		if err := service.RecomputeSettings(userID); err != nil {
			return models.CycleRecord{}, err
		}
		return existing, nil
	}

	record := models.CycleRecord{
		UserID:    userID,
		StartDate: dayStart,
		Mood:      models.MoodNeutral,
	}
	input.applyTo(&record)
	if err := service.records.Create(&record); err != nil {
		return models.CycleRecord{}, ErrRecordWriteFailed
	}
	if err := service.RecomputeSettings(userID); err != nil {
		return models.CycleRecord{}, err
	}
	return record, nil
}

// DeleteAllData wipes every record and the settings row. Irreversible; the
// caller confirms before invoking.
func (service *TrackerService) DeleteAllData(userID uint) error {
	if err := service.records.DeleteAllByUser(userID); err != nil {
		return ErrRecordWriteFailed
	}
	if err := service.settings.DeleteByUser(userID); err != nil {
		return ErrSettingsWriteFailed
	}
	return nil
}

func (service *TrackerService) ListRecords(userID uint, limit int) ([]models.CycleRecord, error) {
	records, err := service.records.ListByUser(userID, limit)
	if err != nil {
		return nil, ErrRecordLoadFailed
	}
	return records, nil
}

// Settings returns the user's settings, creating the defaults row on first
// access.
func (service *TrackerService) Settings(userID uint) (models.CycleSettings, error) {
	settings, found, err := service.settings.FindByUser(userID)
	if err != nil {
		return models.CycleSettings{}, ErrSettingsLoadFailed
	}
	if found {
		return settings, nil
	}

	settings = models.DefaultCycleSettings(userID)
	if err := service.settings.Create(&settings); err != nil {
		return models.CycleSettings{}, ErrSettingsWriteFailed
	}
	return settings, nil
}

// Insights recomputes the derived insights from the recent history. Nothing
// is trusted from the settings cache.
func (service *TrackerService) Insights(userID uint) (cycle.Insights, error) {
	records, settings, err := service.loadState(userID)
	if err != nil {
		return cycle.Insights{}, err
	}
	return cycle.ComputeInsights(records, settings.AllowAdvancedAnalysis, service.engine), nil
}

func (service *TrackerService) Prediction(userID uint) (*cycle.Prediction, error) {
	records, settings, err := service.loadState(userID)
	if err != nil {
		return nil, err
	}
	insights := cycle.ComputeInsights(records, settings.AllowAdvancedAnalysis, service.engine)
	today := DateAtLocation(service.now(), service.location)
	return cycle.ComputePrediction(records, insights, today, service.engine), nil
}

func (service *TrackerService) NotificationSchedule(userID uint) ([]cycle.ScheduleEntry, error) {
	records, settings, err := service.loadState(userID)
	if err != nil {
		return nil, err
	}
	insights := cycle.ComputeInsights(records, settings.AllowAdvancedAnalysis, service.engine)
	today := DateAtLocation(service.now(), service.location)
	prediction := cycle.ComputePrediction(records, insights, today, service.engine)
	return cycle.BuildSchedule(prediction, settings, insights, today, service.engine), nil
}

// RecomputeSettings re-runs the engine over the recent history and persists
// the rolling outputs on the settings row.
func (service *TrackerService) RecomputeSettings(userID uint) error {
	records, settings, err := service.loadState(userID)
	if err != nil {
		return err
	}

	insights := cycle.ComputeInsights(records, settings.AllowAdvancedAnalysis, service.engine)
	calculatedAt := service.now()

	settings.AverageCycleLength = insights.AverageCycleLength
	settings.AveragePeriodLength = insights.AveragePeriodLength
	settings.CycleVariability = insights.CycleVariability
	settings.PCOSRiskFlag = insights.PCOSRiskFlag
	settings.PCOSRiskScore = insights.PCOSRiskScore
	settings.LastCalculatedAt = &calculatedAt

	if err := service.settings.Save(&settings); err != nil {
		return ErrSettingsWriteFailed
	}
	return nil
}

func (service *TrackerService) loadState(userID uint) ([]models.CycleRecord, models.CycleSettings, error) {
	records, err := service.records.ListByUser(userID, service.engine.HistoryLimit)
	if err != nil {
		return nil, models.CycleSettings{}, ErrRecordLoadFailed
	}
	settings, err := service.Settings(userID)
	if err != nil {
		return nil, models.CycleSettings{}, err
	}
	return records, settings, nil
}

func (service *TrackerService) latestPeriodStart(userID uint) (models.CycleRecord, bool, error) {
	records, err := service.records.ListByUser(userID, 0)
	if err != nil {
		return models.CycleRecord{}, false, err
	}
	for _, record := range records {
		if record.IsPeriodStart {
			return record, true, nil
		}
	}
	return models.CycleRecord{}, false, nil
}
