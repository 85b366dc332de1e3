package cycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyra-health/cyra/internal/models"
)

// ScheduleEntry is one pending reminder. Entries keep the iteration order of
// the offsets they were built from; they are never re-sorted by date.
type ScheduleEntry struct {
	Date       time.Time `json:"date"`
	Message    string    `json:"message"`
	DaysBefore int       `json:"days_before"`
}

// irregularReminderDays replaces the stored preference when the cycle history
// is irregular: warnings go out earlier because the prediction is softer.
var irregularReminderDays = []int{5, 3, 1}

const hiddenReminderText = "You have a reminder for this date."

// BuildSchedule derives the pending reminders for a prediction. Reminders
// whose date already passed are dropped, never scheduled retroactively.
func BuildSchedule(prediction *Prediction, settings models.CycleSettings, insights Insights, today time.Time, cfg Config) []ScheduleEntry {
	entries := []ScheduleEntry{}
	if prediction == nil || !settings.NotificationEnabled {
		return entries
	}

	offsets := settings.ReminderDays
	if !insights.IsRegular {
		offsets = irregularReminderDays
	} else if len(offsets) == 0 {
		offsets = models.DefaultReminderDays()
	}

	startOfToday := dateOnly(today)
	for _, daysBefore := range offsets {
		notifyDate := prediction.PredictedStartDate.AddDate(0, 0, -daysBefore)
		if notifyDate.Before(startOfToday) {
			continue
		}

		message := reminderMessage(daysBefore)
		if !insights.IsRegular {
			message = strings.Replace(message, " may ", " might ", 1)
		}
		if settings.HideNotificationText {
			message = hiddenReminderText
		}

		entries = append(entries, ScheduleEntry{
			Date:       notifyDate,
			Message:    message,
			DaysBefore: daysBefore,
		})
	}

	return entries
}

func reminderMessage(daysBefore int) string {
	switch daysBefore {
	case 1:
		return "Your period may start tomorrow. Keep supplies handy."
	case 2:
		return "Heads up: your period may start in 2 days."
	case 3:
		return "Your period may start in 3 days. A good time to prepare."
	default:
		return fmt.Sprintf("Your period may start in %d days.", daysBefore)
	}
}
