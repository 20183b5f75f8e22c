package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"childcare-insights-go/internal/logger"
	"childcare-insights-go/internal/rating"
	"childcare-insights-go/internal/types"
)

// dateLayouts covers the formats seen in survey platform exports.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Load reads a survey export from a local path or an http(s) URL and
// produces the normalized record set. CSV and XLSX exports are both
// accepted; the branch is picked by file extension. Row order follows
// the export.
func Load(source string) ([]types.SurveyRecord, error) {
	log := logger.New().WithField("component", "dataset.loader").WithField("source", source)
	log.Info("loading survey export")

	rows, err := readRows(source)
	if err != nil {
		log.WithError(err).Error("read failed")
		return nil, err
	}

	records, err := buildRecords(rows)
	if err != nil {
		log.WithError(err).Error("normalization failed")
		return nil, err
	}

	log.WithField("records", len(records)).Info("survey export loaded")
	return records, nil
}

func readRows(source string) ([][]string, error) {
	if isRemote(source) {
		body, err := fetchExport(source)
		if err != nil {
			return nil, err
		}
		if isXLSX(source) {
			return xlsxRows(bytes.NewReader(body))
		}
		return csvRows(bytes.NewReader(body))
	}

	if isXLSX(source) {
		f, err := excelize.OpenFile(source)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		return sheetRows(f)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return csvRows(f)
}

func isXLSX(source string) bool {
	return strings.HasSuffix(strings.ToLower(source), ".xlsx")
}

func csvRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func xlsxRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return sheetRows(f)
}

func sheetRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// buildRecords validates the header against the expected schema and
// normalizes every data row. A missing required column or an
// unparseable date aborts the whole load.
func buildRecords(rows [][]string) ([]types.SurveyRecord, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Column: types.ColResponseDate}
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		name := strings.TrimSpace(h)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}

	required := []string{
		types.ColResponseDate, types.ColSentDate, types.ColStartDate,
		types.ColCity, types.ColNPS, types.ColNPSLabel,
		types.ColNPSFeedback, types.ColImprovementFeedback, types.ColResponseMonth,
	}
	required = append(required, types.RatingColumns...)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, &SchemaError{Column: col}
		}
	}

	records := make([]types.SurveyRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, header is row 1

		rec := types.SurveyRecord{
			City:                cell(row, idx[types.ColCity]),
			NPSLabel:            cell(row, idx[types.ColNPSLabel]),
			NPSFeedback:         cell(row, idx[types.ColNPSFeedback]),
			ImprovementFeedback: cell(row, idx[types.ColImprovementFeedback]),
			ResponseMonth:       cell(row, idx[types.ColResponseMonth]),
			Scores:              make(map[string]rating.Score, len(types.RatingColumns)),
		}

		var err error
		if rec.ResponseDate, err = parseDate(cell(row, idx[types.ColResponseDate])); err != nil {
			return nil, &MalformedDateError{Column: types.ColResponseDate, Row: rowNum, Value: cell(row, idx[types.ColResponseDate])}
		}
		if rec.SentDate, err = parseDate(cell(row, idx[types.ColSentDate])); err != nil {
			return nil, &MalformedDateError{Column: types.ColSentDate, Row: rowNum, Value: cell(row, idx[types.ColSentDate])}
		}
		if rec.StartDate, err = parseDate(cell(row, idx[types.ColStartDate])); err != nil {
			return nil, &MalformedDateError{Column: types.ColStartDate, Row: rowNum, Value: cell(row, idx[types.ColStartDate])}
		}

		if v, err := strconv.ParseFloat(cell(row, idx[types.ColNPS]), 64); err == nil {
			rec.NPS = v
			rec.NPSValid = true
		}

		for _, col := range types.RatingColumns {
			rec.Scores[col] = rating.Normalize(cell(row, idx[col]))
		}

		records = append(records, rec)
	}
	return records, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
