package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cyra-health/cyra/internal/models"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{
	"Start date",
	"Period",
	"End date",
	"Cycle length",
	"Period length",
	"Flow",
	"Cramps",
	"Fatigue",
	"Bloating",
	"Headache",
	"Acne",
	"Mood",
	"Stress level",
	"Sleep hours",
	"Notes",
}

type ExportSummary struct {
	TotalRecords    int    `json:"total_records"`
	PeriodStarts    int    `json:"period_starts"`
	CompletedCycles int    `json:"completed_cycles"`
	HasData         bool   `json:"has_data"`
	DateFrom        string `json:"date_from,omitempty"`
	DateTo          string `json:"date_to,omitempty"`
}

// BuildExportSummary describes the exportable history. records are ordered
// most-recent-first, as the repository returns them.
func BuildExportSummary(records []models.CycleRecord) ExportSummary {
	summary := ExportSummary{TotalRecords: len(records)}
	if len(records) == 0 {
		return summary
	}

	summary.HasData = true
	summary.DateFrom = records[len(records)-1].StartDate.Format(exportDateLayout)
	summary.DateTo = records[0].StartDate.Format(exportDateLayout)
	for _, record := range records {
		if record.IsPeriodStart {
			summary.PeriodStarts++
		}
		if record.CycleLength != nil {
			summary.CompletedCycles++
		}
	}
	return summary
}

// BuildExportCSV renders the full history as CSV, oldest row first.
func BuildExportCSV(records []models.CycleRecord) ([]byte, error) {
	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}

	for i := len(records) - 1; i >= 0; i-- {
		if err := writer.Write(exportCSVRow(records[i])); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}
	return output.Bytes(), nil
}

func exportCSVRow(record models.CycleRecord) []string {
	endDate := ""
	if record.EndDate != nil {
		endDate = record.EndDate.Format(exportDateLayout)
	}
	sleepHours := ""
	if record.SleepHours != nil {
		sleepHours = strconv.FormatFloat(*record.SleepHours, 'f', -1, 64)
	}

	return []string{
		record.StartDate.Format(exportDateLayout),
		csvYesNo(record.IsPeriodStart),
		endDate,
		csvOptionalInt(record.CycleLength),
		csvOptionalInt(record.PeriodLength),
		csvOptionalString(record.Flow),
		csvOptionalString(record.Cramps),
		csvOptionalString(record.Fatigue),
		csvOptionalString(record.Bloating),
		csvOptionalString(record.Headache),
		csvOptionalString(record.Acne),
		record.Mood,
		csvOptionalInt(record.StressLevel),
		sleepHours,
		record.Notes,
	}
}

func csvYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func csvOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvOptionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
