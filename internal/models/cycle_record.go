package models

import "time"

const (
	FlowLight     = "light"
	FlowModerate  = "moderate"
	FlowHeavy     = "heavy"
	FlowVeryHeavy = "very_heavy"
)

const (
	SeverityNone     = "none"
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

const MoodNeutral = "neutral"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// CycleRecord is one logged period start, or a symptom-only entry for a day
// with no period start. One record per user per start date.
type CycleRecord struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;uniqueIndex:uidx_user_start_date" json:"user_id"`
	StartDate     time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_user_start_date" json:"start_date"`
	IsPeriodStart bool       `gorm:"not null;default:false" json:"is_period_start"`
	EndDate       *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	CycleLength   *int       `json:"cycle_length,omitempty"`
	PeriodLength  *int       `json:"period_length,omitempty"`
	Flow          *string    `json:"flow,omitempty"`
	Cramps        *string    `json:"cramps,omitempty"`
	Fatigue       *string    `json:"fatigue,omitempty"`
	Bloating      *string    `json:"bloating,omitempty"`
	Headache      *string    `json:"headache,omitempty"`
	Acne          *string    `json:"acne,omitempty"`
	Mood          string     `gorm:"not null;default:neutral" json:"mood"`
	StressLevel   *int       `json:"stress_level,omitempty"`
	SleepHours    *float64   `json:"sleep_hours,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ValidFlow(value string) bool {
	switch value {
	case FlowLight, FlowModerate, FlowHeavy, FlowVeryHeavy:
		return true
	default:
		return false
	}
}

func ValidSeverity(value string) bool {
	switch value {
	case SeverityNone, SeverityMild, SeverityModerate, SeveritySevere:
		return true
	default:
		return false
	}
}
