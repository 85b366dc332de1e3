package models

import "time"

// CycleSettings is the per-user singleton holding notification preferences and
// the cached rolling outputs of the last analytics recomputation. The cached
// fields are a read optimization only: cycle records stay the source of truth
// and every value here must be re-derivable from them.
type CycleSettings struct {
	ID                    uint       `gorm:"primaryKey" json:"-"`
	UserID                uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	NotificationEnabled   bool       `gorm:"not null;default:true" json:"notification_enabled"`
	ReminderDays          []int      `gorm:"serializer:json" json:"reminder_days"`
	NotificationTime      string     `gorm:"not null;default:09:00" json:"notification_time"`
	HideNotificationText  bool       `gorm:"not null;default:false" json:"hide_notification_text"`
	AllowAdvancedAnalysis bool       `gorm:"not null;default:true" json:"allow_advanced_analysis"`
	AverageCycleLength    int        `json:"average_cycle_length"`
	AveragePeriodLength   int        `json:"average_period_length"`
	CycleVariability      float64    `json:"cycle_variability"`
	PCOSRiskFlag          bool       `json:"pcos_risk_flag"`
	PCOSRiskScore         int        `json:"pcos_risk_score"`
	LastCalculatedAt      *time.Time `json:"last_calculated_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func DefaultReminderDays() []int {
	return []int{3, 2, 1}
}

func DefaultCycleSettings(userID uint) CycleSettings {
	return CycleSettings{
		UserID:                userID,
		NotificationEnabled:   true,
		ReminderDays:          DefaultReminderDays(),
		NotificationTime:      "09:00",
		AllowAdvancedAnalysis: true,
		AverageCycleLength:    DefaultCycleLength,
		AveragePeriodLength:   DefaultPeriodLength,
	}
}
