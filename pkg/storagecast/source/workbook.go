package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// ReadWorkbook reads result sets from an xlsx file with one sheet per set
// named total, used and prediction. Row 1 of each sheet holds the record
// field names; every following non-empty row is one record.
func ReadWorkbook(path string) (*Results, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return workbookResults(f)
}

func workbookResults(f *excelize.File) (*Results, error) {
	sheets := make(map[string]string)
	for _, name := range f.GetSheetList() {
		sheets[strings.ToLower(strings.TrimSpace(name))] = name
	}

	var res Results
	for _, set := range []struct {
		name string
		dst  *[]models.Record
	}{
		{SetTotal, &res.Total},
		{SetUsed, &res.Used},
		{SetPrediction, &res.Prediction},
	} {
		sheetName, ok := sheets[set.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSheet, set.name)
		}
		records, err := ExtractRecords(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheetName, err)
		}
		*set.dst = records
	}
	return &res, nil
}

// ExtractRecords reads the records of one sheet.
// Empty cells leave the field unset; non-numeric cells are rejected.
func ExtractRecords(f *excelize.File, sheetName string) ([]models.Record, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	var result []models.Record
	for rowIdx, row := range rows[1:] {
		rowNum := rowIdx + 2 // 1-based, after the header
		rec := models.Record{Fields: make(map[string]float64)}
		hasData := false

		for colIdx, cellValue := range row {
			cellValue = strings.TrimSpace(cellValue)
			if cellValue == "" || colIdx >= len(header) || header[colIdx] == "" {
				continue
			}
			hasData = true

			v, ok := parseValue(cellValue)
			if !ok {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				return nil, fmt.Errorf("cell %s: %q is not a number", cellName, cellValue)
			}

			switch header[colIdx] {
			case models.FieldBeginTimeSeconds:
				rec.BeginTimeSeconds = int64(v)
			case models.FieldEndTimeSeconds:
				rec.EndTimeSeconds = int64(v)
			default:
				rec.Fields[header[colIdx]] = v
			}
		}

		if hasData {
			result = append(result, rec)
		}
	}

	return result, nil
}

// parseValue parses a cell as a number, integers first.
func parseValue(s string) (float64, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}
