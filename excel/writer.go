package excel

import (
	"bytes"
	"fmt"
	"time"

	"surveytranslator/types"

	"github.com/xuri/excelize/v2"
)

// ResultSheet is the sheet name of exported workbooks.
const ResultSheet = "Translation Results"

// header order matches the downloadable report format.
var exportHeaders = []interface{}{
	"Original Question",
	"Detected Language",
	"Confidence (%)",
	"Confidence Reason",
	"English Translation",
	"Processed At",
}

// ExportFilename names a download after its generation time.
func ExportFilename(t time.Time) string {
	return "survey_translation_results_" + t.Format("20060102_150405") + ".xlsx"
}

// WriteResults renders one data row per result, fields verbatim, into an
// in-memory workbook.
func WriteResults(results []types.QuestionResult, processedAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ResultSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ResultSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	timestamp := processedAt.Format("2006-01-02 15:04:05")
	for i, result := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []interface{}{
			result.OriginalQuestion,
			result.DetectedLanguage,
			result.Confidence,
			result.ConfidenceReason,
			result.EnglishTranslation,
			timestamp,
		}
		if err := f.SetSheetRow(ResultSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf, nil
}
