package cycle

import (
	"time"

	"github.com/cyra-health/cyra/internal/models"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Prediction is the next expected period window. A nil Prediction means the
// history cannot support one yet.
type Prediction struct {
	PredictedStartDate time.Time `json:"predicted_start_date"`
	PredictedEndDate   time.Time `json:"predicted_end_date"`
	DaysUntil          int       `json:"days_until"`
	Confidence         string    `json:"confidence"`
	BasedOnCycles      int       `json:"based_on_cycles"`
}

// ComputePrediction projects the next period from the most recent start date
// and the insight averages. records are ordered most-recent-first; today is
// injected so callers and tests control the clock.
func ComputePrediction(records []models.CycleRecord, insights Insights, today time.Time, cfg Config) *Prediction {
	if len(records) == 0 {
		return nil
	}

	mostRecent := dateOnly(records[0].StartDate)
	if mostRecent.IsZero() {
		return nil
	}

	predictedStart := mostRecent.AddDate(0, 0, insights.AverageCycleLength)
	predictedEnd := predictedStart.AddDate(0, 0, insights.AveragePeriodLength-1)

	completed := 0
	for _, record := range records {
		if record.CycleLength != nil {
			completed++
		}
	}

	return &Prediction{
		PredictedStartDate: predictedStart,
		PredictedEndDate:   predictedEnd,
		DaysUntil:          daysBetween(today, predictedStart),
		Confidence:         confidenceTier(completed, insights.IsRegular, cfg),
		BasedOnCycles:      completed,
	}
}

func confidenceTier(completedCycles int, isRegular bool, cfg Config) string {
	switch {
	case completedCycles >= cfg.HighConfidenceCycles && isRegular:
		return ConfidenceHigh
	case completedCycles >= cfg.MediumConfidenceCycles:
		if isRegular {
			return ConfidenceHigh
		}
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
