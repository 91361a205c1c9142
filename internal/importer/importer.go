// Package importer reads batch placement manifests from CSV and Excel
// files. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/slidefig/slidefig/internal/model"
)

// Request is one row of a manifest: place one figure on one slide.
type Request struct {
	Figure             string        // path to the image file
	SlideID            string        // slide identifier
	Spec               model.BoxSpec // empty = auto-detect from placeholders
	KeepAspect         bool
	DeletePlaceholders bool
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Requests []Request
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Figure             int
	Slide              int
	Box                int
	KeepAspect         int
	DeletePlaceholders int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"figure":              {"figure", "image", "file", "path", "picture", "png"},
	"slide":               {"slide", "slide no", "slide_no", "page", "slide number"},
	"box":                 {"box", "bbox", "bounding box", "position", "preset", "where"},
	"keep_aspect":         {"keep_aspect", "keep aspect", "aspect", "keepaspect"},
	"delete_placeholders": {"delete_placeholders", "delete placeholders", "placeholders"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Figure:             -1,
		Slide:              -1,
		Box:                -1,
		KeepAspect:         -1,
		DeletePlaceholders: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "figure":
						if mapping.Figure == -1 {
							mapping.Figure = i
						}
					case "slide":
						if mapping.Slide == -1 {
							mapping.Slide = i
						}
					case "box":
						if mapping.Box == -1 {
							mapping.Box = i
						}
					case "keep_aspect":
						if mapping.KeepAspect == -1 {
							mapping.KeepAspect = i
						}
					case "delete_placeholders":
						if mapping.DeletePlaceholders == -1 {
							mapping.DeletePlaceholders = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Figure, Slide, Box, KeepAspect, DeletePlaceholders
		return ColumnMapping{
			Figure:             0,
			Slide:              1,
			Box:                2,
			KeepAspect:         3,
			DeletePlaceholders: 4,
		}, false
	}

	return mapping, true
}

// ParseBoxCell converts a manifest box cell into a BoxSpec. An empty
// cell means auto-detect; four numbers separated by spaces, semicolons
// or pipes (optionally bracketed) are coordinates; anything else is
// taken as a preset name.
func ParseBoxCell(s string) (model.BoxSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return model.AutoBox(), nil
	}

	trimmed := strings.Trim(s, "[]()")
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == ';' || r == '|' || r == ','
	})
	if len(fields) > 1 {
		if len(fields) != 4 {
			return model.BoxSpec{}, fmt.Errorf("%w: %d coordinates in %q, want 4", model.ErrInvalidBoundingBox, len(fields), s)
		}
		coords := make([]float64, 4)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return model.BoxSpec{}, fmt.Errorf("%w: bad coordinate %q in %q", model.ErrInvalidBoundingBox, f, s)
			}
			coords[i] = v
		}
		return model.BoxSpec{Coords: coords}, nil
	}
	return model.PresetBox(s), nil
}

// parseBool converts a manifest flag cell. Recognizes yes/no, true/false,
// y/n and 1/0.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Request from a row using the given column mapping.
// Returns the request, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (Request, string, string) {
	req := Request{
		// Defaults when the manifest omits the flag columns.
		KeepAspect:         true,
		DeletePlaceholders: true,
	}

	req.Figure = getCell(row, mapping.Figure)
	if req.Figure == "" {
		return Request{}, fmt.Sprintf("%s: Missing figure path", rowLabel), ""
	}

	req.SlideID = getCell(row, mapping.Slide)
	if req.SlideID == "" {
		return Request{}, fmt.Sprintf("%s: Missing slide identifier", rowLabel), ""
	}

	spec, err := ParseBoxCell(getCell(row, mapping.Box))
	if err != nil {
		return Request{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	req.Spec = spec

	var warning string
	if cell := getCell(row, mapping.KeepAspect); cell != "" {
		if v, ok := parseBool(cell); ok {
			req.KeepAspect = v
		} else {
			warning = fmt.Sprintf("%s: Unknown keep_aspect value '%s', defaulting to yes", rowLabel, cell)
		}
	}
	if cell := getCell(row, mapping.DeletePlaceholders); cell != "" {
		if v, ok := parseBool(cell); ok {
			req.DeletePlaceholders = v
		} else {
			warning = fmt.Sprintf("%s: Unknown delete_placeholders value '%s', defaulting to yes", rowLabel, cell)
		}
	}

	return req, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports placement requests from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports placement requests from a CSV reader with
// a specific delimiter. Useful for testing or when the delimiter is
// already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports placement requests from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into requests.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Figure == -1 {
			missing = append(missing, "Figure")
		}
		if mapping.Slide == -1 {
			missing = append(missing, "Slide")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		req, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Requests = append(result.Requests, req)
	}

	return result
}
