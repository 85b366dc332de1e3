package cycle

import (
	"fmt"
	"sort"

	"github.com/cyra-health/cyra/internal/models"
)

const (
	ReasonLongCycles      = "3+ months of cycles > 35 days"
	ReasonHighVariability = "high cycle variability"
	ReasonOutOfBand       = "cycle length outside 21-40 days"
	ReasonMissedPeriod    = "missed period"
)

// Insights is everything the engine derives from a cycle history besides the
// prediction itself. All fields are recomputed from scratch on every call.
type Insights struct {
	AverageCycleLength      int      `json:"average_cycle_length"`
	AveragePeriodLength     int      `json:"average_period_length"`
	CycleVariability        float64  `json:"cycle_variability"`
	IsRegular               bool     `json:"is_regular"`
	PCOSRiskScore           int      `json:"pcos_risk_score"`
	PCOSRiskFlag            bool     `json:"pcos_risk_flag"`
	ConsultationReasons     []string `json:"consultation_reasons"`
	NeedsDoctorConsultation bool     `json:"needs_doctor_consultation"`
	StressCorrelation       string   `json:"stress_correlation,omitempty"`
	SleepCorrelation        string   `json:"sleep_correlation,omitempty"`
	CommonSymptoms          []string `json:"common_symptoms"`
}

// DefaultInsights is what the engine returns when the history is too thin to
// say anything: fewer than two records with a known cycle length.
func DefaultInsights(cfg Config) Insights {
	return Insights{
		AverageCycleLength:  cfg.DefaultCycleLength,
		AveragePeriodLength: cfg.DefaultPeriodLength,
		CycleVariability:    0,
		IsRegular:           true,
		ConsultationReasons: []string{},
		CommonSymptoms:      []string{},
	}
}

// ComputeInsights derives regularity, risk, and behavioral correlations from a
// cycle history ordered most-recent-first. allowAdvanced gates the risk
// heuristic; everything else is computed regardless.
func ComputeInsights(records []models.CycleRecord, allowAdvanced bool, cfg Config) Insights {
	insights := DefaultInsights(cfg)

	lengths := positiveCycleLengths(records)
	if len(lengths) < 2 {
		return insights
	}

	insights.AverageCycleLength = roundToInt(weightedMean(lengths, cfg.DecayFactor))
	insights.AveragePeriodLength = averagePeriodLength(records, cfg)
	insights.CycleVariability = roundTo1(populationStdDev(lengths))
	insights.IsRegular = insights.CycleVariability < cfg.RegularityThreshold

	longCycleCount := countLengthsOver(lengths, cfg.LongCycleDays)
	highVariability := insights.CycleVariability > cfg.HighVariabilityDays

	if allowAdvanced {
		score := 0
		if longCycleCount >= cfg.LongCycleMinCount {
			score += 30
		}
		if highVariability {
			score += 20
		}
		if countSeverityPresent(records, func(r models.CycleRecord) *string { return r.Acne }) >= cfg.LongCycleMinCount {
			score += 15
		}
		if countSeverityPresent(records, func(r models.CycleRecord) *string { return r.Fatigue }) >= cfg.LongCycleMinCount {
			score += 10
		}
		if score > 100 {
			score = 100
		}
		insights.PCOSRiskScore = score
		insights.PCOSRiskFlag = score >= 40
	}

	insights.ConsultationReasons = consultationReasons(records, lengths, longCycleCount, highVariability, cfg)
	insights.NeedsDoctorConsultation = insights.PCOSRiskScore >= 40 || len(insights.ConsultationReasons) >= 2

	insights.StressCorrelation = stressCorrelation(records, insights.AverageCycleLength, cfg)
	insights.SleepCorrelation = sleepCorrelation(records, insights.AverageCycleLength, cfg)
	insights.CommonSymptoms = commonSymptoms(records, cfg)

	return insights
}

// positiveCycleLengths keeps the most-recent-first order of the input so the
// weighted mean decays from the newest qualifying record.
func positiveCycleLengths(records []models.CycleRecord) []int {
	lengths := make([]int, 0, len(records))
	for _, record := range records {
		if record.CycleLength != nil && *record.CycleLength > 0 {
			lengths = append(lengths, *record.CycleLength)
		}
	}
	return lengths
}

func averagePeriodLength(records []models.CycleRecord, cfg Config) int {
	values := make([]int, 0, len(records))
	for _, record := range records {
		if record.PeriodLength != nil && *record.PeriodLength > 0 {
			values = append(values, *record.PeriodLength)
		}
	}
	if len(values) == 0 {
		return cfg.DefaultPeriodLength
	}
	return roundToInt(meanInts(values))
}

func countLengthsOver(lengths []int, threshold int) int {
	count := 0
	for _, length := range lengths {
		if length > threshold {
			count++
		}
	}
	return count
}

func countSeverityPresent(records []models.CycleRecord, field func(models.CycleRecord) *string) int {
	count := 0
	for _, record := range records {
		value := field(record)
		if value != nil && *value != "" && *value != models.SeverityNone {
			count++
		}
	}
	return count
}

// consultationReasons is evaluated in a fixed order so the output list is
// stable for a given history. The missed-period check looks only at the two
// most recent records, not every historical gap.
func consultationReasons(records []models.CycleRecord, lengths []int, longCycleCount int, highVariability bool, cfg Config) []string {
	reasons := []string{}

	if longCycleCount >= cfg.LongCycleMinCount {
		reasons = append(reasons, ReasonLongCycles)
	}
	if highVariability {
		reasons = append(reasons, ReasonHighVariability)
	}

	outOfBand := 0
	for _, length := range lengths {
		if length < cfg.NormalBandLowDays || length > cfg.NormalBandHighDays {
			outOfBand++
		}
	}
	if outOfBand >= cfg.OutOfBandMinCount {
		reasons = append(reasons, ReasonOutOfBand)
	}

	if len(records) >= 2 {
		gap := daysBetween(records[1].StartDate, records[0].StartDate)
		if gap > cfg.MissedPeriodGapDays {
			reasons = append(reasons, ReasonMissedPeriod)
		}
	}

	return reasons
}

func stressCorrelation(records []models.CycleRecord, averageCycleLength int, cfg Config) string {
	qualifying := make([]models.CycleRecord, 0, len(records))
	for _, record := range records {
		if record.StressLevel != nil && record.CycleLength != nil && *record.CycleLength > 0 {
			qualifying = append(qualifying, record)
		}
	}
	if len(qualifying) < cfg.MinQualifyingRecords {
		return ""
	}

	totalDelay := 0
	matching := 0
	for _, record := range qualifying {
		if *record.StressLevel < cfg.HighStressLevel {
			continue
		}
		if *record.CycleLength > averageCycleLength+cfg.DelayMarginDays {
			totalDelay += *record.CycleLength - averageCycleLength
			matching++
		}
	}
	if matching < cfg.MinMatchingRecords {
		return ""
	}

	averageDelay := roundToInt(float64(totalDelay) / float64(matching))
	return fmt.Sprintf("High-stress months tend to delay your period by about %d days.", averageDelay)
}

func sleepCorrelation(records []models.CycleRecord, averageCycleLength int, cfg Config) string {
	qualifying := make([]models.CycleRecord, 0, len(records))
	for _, record := range records {
		if record.SleepHours != nil && record.CycleLength != nil && *record.CycleLength > 0 {
			qualifying = append(qualifying, record)
		}
	}
	if len(qualifying) < cfg.MinQualifyingRecords {
		return ""
	}

	matching := 0
	for _, record := range qualifying {
		if *record.SleepHours >= cfg.LowSleepHours {
			continue
		}
		if *record.CycleLength > averageCycleLength+cfg.DelayMarginDays {
			matching++
		}
	}
	if matching < cfg.MinMatchingRecords {
		return ""
	}

	return "Months with short sleep tend to come with longer cycles for you."
}

type symptomTally struct {
	Label string
	Count int
}

func commonSymptoms(records []models.CycleRecord, cfg Config) []string {
	tallies := []symptomTally{
		{Label: "cramps"},
		{Label: "bloating"},
		{Label: "mood swings"},
		{Label: "headache"},
		{Label: "fatigue"},
	}

	for _, record := range records {
		if present(record.Cramps) {
			tallies[0].Count++
		}
		if present(record.Bloating) {
			tallies[1].Count++
		}
		if record.Mood != "" && record.Mood != models.MoodNeutral {
			tallies[2].Count++
		}
		if present(record.Headache) {
			tallies[3].Count++
		}
		if present(record.Fatigue) {
			tallies[4].Count++
		}
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Count > tallies[j].Count
	})

	labels := []string{}
	for _, tally := range tallies {
		if tally.Count >= cfg.MinSymptomCount {
			labels = append(labels, tally.Label)
		}
	}
	return labels
}

func present(value *string) bool {
	return value != nil && *value != "" && *value != models.SeverityNone
}
