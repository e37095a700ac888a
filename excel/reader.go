package excel

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"surveytranslator/types"

	"github.com/xuri/excelize/v2"
)

// AllowedExtension reports whether name looks like a supported workbook.
func AllowedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ReadQuestions extracts survey questions from the first column of the
// first sheet. Blank cells are skipped, but each question keeps its
// original 1-based workbook row so results bind to the right row even
// when the same text appears more than once.
func ReadQuestions(r io.Reader) ([]types.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	questions := make([]types.Question, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		text := strings.TrimSpace(row[0])
		if text == "" {
			continue
		}
		questions = append(questions, types.Question{Row: i + 1, Text: text})
	}
	return questions, nil
}
