package services

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidReminderDays     = errors.New("invalid reminder days")
	ErrInvalidNotificationTime = errors.New("invalid notification time")
)

var notificationTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

const (
	maxReminderOffsets   = 5
	maxReminderDayOffset = 30
)

// SettingsInput carries preference updates. Nil fields stay unchanged; the
// cached analytics fields are never writable through here.
type SettingsInput struct {
	NotificationEnabled   *bool
	ReminderDays          *[]int
	NotificationTime      *string
	HideNotificationText  *bool
	AllowAdvancedAnalysis *bool
}

func (input SettingsInput) Validate() error {
	if input.ReminderDays != nil {
		days := *input.ReminderDays
		if len(days) == 0 || len(days) > maxReminderOffsets {
			return ErrInvalidReminderDays
		}
		for _, day := range days {
			if day < 1 || day > maxReminderDayOffset {
				return ErrInvalidReminderDays
			}
		}
	}
	if input.NotificationTime != nil && !notificationTimePattern.MatchString(*input.NotificationTime) {
		return ErrInvalidNotificationTime
	}
	return nil
}

// UpdateSettings applies preference changes and re-runs the analytics pass,
// since the advanced-analysis gate affects the cached risk fields.
func (service *TrackerService) UpdateSettings(userID uint, input SettingsInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	settings, err := service.Settings(userID)
	if err != nil {
		return err
	}

	if input.NotificationEnabled != nil {
		settings.NotificationEnabled = *input.NotificationEnabled
	}
	if input.ReminderDays != nil {
		settings.ReminderDays = *input.ReminderDays
	}
	if input.NotificationTime != nil {
		settings.NotificationTime = *input.NotificationTime
	}
	if input.HideNotificationText != nil {
		settings.HideNotificationText = *input.HideNotificationText
	}
	if input.AllowAdvancedAnalysis != nil {
		settings.AllowAdvancedAnalysis = *input.AllowAdvancedAnalysis
	}

	if err := service.settings.Save(&settings); err != nil {
		return ErrSettingsWriteFailed
	}

	return service.RecomputeSettings(userID)
}
