package api

import "github.com/cyra-health/cyra/internal/assistant"

type logPeriodInput struct {
	Date     string         `json:"date" validate:"required,datetime=2006-01-02"`
	Symptoms map[string]any `json:"symptoms,omitempty"`
}

type endPeriodInput struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type updateSettingsInput struct {
	NotificationEnabled   *bool   `json:"notification_enabled"`
	ReminderDays          *[]int  `json:"reminder_days"`
	NotificationTime      *string `json:"notification_time"`
	HideNotificationText  *bool   `json:"hide_notification_text"`
	AllowAdvancedAnalysis *bool   `json:"allow_advanced_analysis"`
}

type assistantChatInput struct {
	Messages []assistant.Message `json:"messages" validate:"required,min=1,dive"`
}
