package services

import (
	"errors"

	"github.com/cyra-health/cyra/internal/models"
)

var ErrInvalidSymptomValue = errors.New("invalid symptom value")

// SymptomInput carries the symptom fields a user may write. Nil means "not
// provided"; a provided field replaces the stored one on merge.
type SymptomInput struct {
	Flow        *string
	Cramps      *string
	Fatigue     *string
	Bloating    *string
	Headache    *string
	Acne        *string
	Mood        *string
	StressLevel *int
	SleepHours  *float64
	Notes       *string
}

// SymptomInputFromMap picks the whitelisted symptom fields out of an
// arbitrary payload. Unknown keys and wrongly-typed values are dropped
// silently; only value-range violations are reported later by Validate.
func SymptomInputFromMap(fields map[string]any) SymptomInput {
	input := SymptomInput{}
	for key, raw := range fields {
		switch key {
		case "flow":
			input.Flow = stringValue(raw)
		case "cramps":
			input.Cramps = stringValue(raw)
		case "fatigue":
			input.Fatigue = stringValue(raw)
		case "bloating":
			input.Bloating = stringValue(raw)
		case "headache":
			input.Headache = stringValue(raw)
		case "acne":
			input.Acne = stringValue(raw)
		case "mood":
			input.Mood = stringValue(raw)
		case "stress_level":
			input.StressLevel = intValue(raw)
		case "sleep_hours":
			input.SleepHours = floatValue(raw)
		case "notes":
			input.Notes = stringValue(raw)
		}
	}
	return input
}

// Validate checks value ranges: ordinal enums, stress 1-5, sleep 0-12.
func (input SymptomInput) Validate() error {
	if input.Flow != nil && !models.ValidFlow(*input.Flow) {
		return ErrInvalidSymptomValue
	}
	for _, severity := range []*string{input.Cramps, input.Fatigue, input.Bloating, input.Headache, input.Acne} {
		if severity != nil && !models.ValidSeverity(*severity) {
			return ErrInvalidSymptomValue
		}
	}
	if input.StressLevel != nil && (*input.StressLevel < 1 || *input.StressLevel > 5) {
		return ErrInvalidSymptomValue
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 12) {
		return ErrInvalidSymptomValue
	}
	return nil
}

// applyTo merges the provided fields into a record, leaving absent fields
// untouched.
func (input SymptomInput) applyTo(record *models.CycleRecord) {
	if input.Flow != nil {
		record.Flow = input.Flow
	}
	if input.Cramps != nil {
		record.Cramps = input.Cramps
	}
	if input.Fatigue != nil {
		record.Fatigue = input.Fatigue
	}
	if input.Bloating != nil {
		record.Bloating = input.Bloating
	}
	if input.Headache != nil {
		record.Headache = input.Headache
	}
	if input.Acne != nil {
		record.Acne = input.Acne
	}
	if input.Mood != nil {
		record.Mood = *input.Mood
	}
	if input.StressLevel != nil {
		record.StressLevel = input.StressLevel
	}
	if input.SleepHours != nil {
		record.SleepHours = input.SleepHours
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}
}

func stringValue(raw any) *string {
	if value, ok := raw.(string); ok {
		return &value
	}
	return nil
}

func intValue(raw any) *int {
	switch value := raw.(type) {
	case int:
		return &value
	case float64:
		converted := int(value)
		return &converted
	default:
		return nil
	}
}

func floatValue(raw any) *float64 {
	switch value := raw.(type) {
	case float64:
		return &value
	case int:
		converted := float64(value)
		return &converted
	default:
		return nil
	}
}
