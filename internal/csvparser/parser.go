// =============================================================================
// Ventas BI - CSV Parser Module
// =============================================================================
//
// This module turns raw delimited text into an ordered sequence of raw
// records. The format is deliberately simple:
//   - One record per line, fields separated by a comma
//   - The first line is the header row
//   - No quoting or escaping (a comma always separates fields)
//
// FEATURES:
//   - Never fails on a data line: short lines leave trailing fields absent,
//     long lines have their extra values dropped
//   - CRLF input is accepted (a trailing carriage return is stripped)
//   - Fails fast with a sentinel error on empty input or a blank header row
//
// =============================================================================

package csvparser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// Delimiter separates fields on every line.
const Delimiter = ","

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned when the input holds nothing but whitespace.
	ErrEmptyInput = errors.New("input is empty")

	// ErrMissingHeader is returned when the first line names no fields.
	ErrMissingHeader = errors.New("header row is missing")
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents one parsed input.
type CSVData struct {
	// Headers contains the column headers from the first line.
	Headers []string

	// Records contains one RawRecord per data line, in input order.
	Records []types.RawRecord

	// SourceFile is the path the text was read from, if any.
	SourceFile string

	// RowCount is the number of data records (excluding the header).
	RowCount int

	// ColumnCount is the number of header columns.
	ColumnCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse splits text into a header row and raw records.
//
// PARAMETERS:
//   - text: The full input, header row first.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed records.
//   - ErrEmptyInput or ErrMissingHeader (wrapped) when the input has no
//     usable header. Malformed data lines are never an error.
//
// PARSING PROCESS:
//  1. Trim the whole input and split it on newlines
//  2. Split the first line into header names
//  3. Map the i-th value of every other line to the i-th header
func Parse(text string) (*CSVData, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	lines := strings.Split(text, "\n")

	headers, err := extractHeaders(lines[0])
	if err != nil {
		return nil, err
	}

	records := make([]types.RawRecord, 0, len(lines)-1)
	for i, line := range lines[1:] {
		records = append(records, buildRecord(headers, line, i+2))
	}

	return &CSVData{
		Headers:     headers,
		Records:     records,
		RowCount:    len(records),
		ColumnCount: len(headers),
	}, nil
}

// ParseFile reads a file and parses its content.
func ParseFile(filePath string) (*CSVData, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	csvData, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	csvData.SourceFile = filePath
	return csvData, nil
}

// extractHeaders splits and cleans the header line.
//
// Blank header cells get a positional placeholder name so that every column
// can still be shown in a preview. A header line with no named column at all
// is treated as missing.
func extractHeaders(line string) ([]string, error) {
	cells := splitLine(line)

	headers := make([]string, len(cells))
	named := 0
	for i, cell := range cells {
		header := strings.TrimSpace(cell)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		} else {
			named++
		}
		headers[i] = header
	}

	if named == 0 {
		return nil, ErrMissingHeader
	}

	return headers, nil
}

// buildRecord maps a data line onto the headers.
func buildRecord(headers []string, line string, lineNumber int) types.RawRecord {
	values := splitLine(line)
	if len(values) > len(headers) {
		values = values[:len(headers)]
	}

	return types.RawRecord{
		Headers: headers,
		Values:  values,
		Line:    lineNumber,
	}
}

// splitLine drops a trailing carriage return and splits on the delimiter.
func splitLine(line string) []string {
	return strings.Split(strings.TrimSuffix(line, "\r"), Delimiter)
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GetColumnByHeader returns every value of a column; absent values are "".
func GetColumnByHeader(data *CSVData, header string) []string {
	values := make([]string, len(data.Records))
	for i, record := range data.Records {
		values[i], _ = record.Get(header)
	}
	return values
}

// Head returns at most n records from the start of the data.
func Head(data *CSVData, n int) []types.RawRecord {
	if n < 0 || n >= len(data.Records) {
		return data.Records
	}
	return data.Records[:n]
}
