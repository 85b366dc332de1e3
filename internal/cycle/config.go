package cycle

// Config collects the heuristic thresholds used by the analytics engine.
// None of them have a clinical basis; they are tuning knobs, so they live
// here instead of being buried in the computation.
type Config struct {
	// DecayFactor weights recent cycle lengths more heavily: weight = DecayFactor^i
	// with i = 0 for the most recent qualifying record.
	DecayFactor float64

	// RegularityThreshold is the variability (population std dev, days) below
	// which a history counts as regular.
	RegularityThreshold float64

	LongCycleDays     int
	LongCycleMinCount int

	HighVariabilityDays float64

	NormalBandLowDays  int
	NormalBandHighDays int
	OutOfBandMinCount  int

	MissedPeriodGapDays int

	// Correlation heuristics: at least MinQualifyingRecords records must carry
	// both the behavioral signal and a cycle length, and at least
	// MinMatchingRecords of the triggered subset must run long.
	MinQualifyingRecords int
	MinMatchingRecords   int
	HighStressLevel      int
	LowSleepHours        float64
	DelayMarginDays      int

	MinSymptomCount int

	DefaultCycleLength  int
	DefaultPeriodLength int

	// HistoryLimit bounds how many records callers should feed in.
	HistoryLimit int

	HighConfidenceCycles   int
	MediumConfidenceCycles int
}

func DefaultConfig() Config {
	return Config{
		DecayFactor:            0.8,
		RegularityThreshold:    4,
		LongCycleDays:          35,
		LongCycleMinCount:      3,
		HighVariabilityDays:    7,
		NormalBandLowDays:      21,
		NormalBandHighDays:     40,
		OutOfBandMinCount:      2,
		MissedPeriodGapDays:    60,
		MinQualifyingRecords:   3,
		MinMatchingRecords:     2,
		HighStressLevel:        4,
		LowSleepHours:          6,
		DelayMarginDays:        3,
		MinSymptomCount:        2,
		DefaultCycleLength:     28,
		DefaultPeriodLength:    5,
		HistoryLimit:           12,
		HighConfidenceCycles:   6,
		MediumConfidenceCycles: 3,
	}
}
