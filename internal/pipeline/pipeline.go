// =============================================================================
// Ventas BI - Pipeline Module
// =============================================================================
//
// This module wires the three core stages together and runs them over one
// input at a time.
//
// PIPELINE:
//   1. Parse the raw text into raw records          (csvparser)
//   2. Validate, normalize and deduplicate records  (cleaner)
//   3. Compute totals and grouped sums              (aggregator)
//
// Run is a pure function over its input text. The Processor adds the file
// handling around it: reading, exporting, archiving and logging.
//
// =============================================================================

package pipeline

import (
	"github.com/ginjaninja78/ventas-bi/internal/aggregator"
	"github.com/ginjaninja78/ventas-bi/internal/cleaner"
	"github.com/ginjaninja78/ventas-bi/internal/csvparser"
	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of running the pipeline over one input.
type Result struct {
	// Data is the parser output: header row and raw records.
	Data *csvparser.CSVData

	// Report is the cleaner output: the cleaned set and its rejections.
	Report cleaner.Report

	// Summary is the aggregator output over the cleaned set.
	Summary aggregator.Summary
}

// RawRecords returns the raw records in input order.
func (r *Result) RawRecords() []types.RawRecord {
	return r.Data.Records
}

// CleanRecords returns the cleaned set in input order.
func (r *Result) CleanRecords() []types.CleanRecord {
	return r.Report.Records
}

// RowsBefore is the number of raw records.
func (r *Result) RowsBefore() int {
	return len(r.Data.Records)
}

// RowsAfter is the number of clean records.
func (r *Result) RowsAfter() int {
	return len(r.Report.Records)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run parses, cleans and summarizes text.
//
// RETURNS:
//   - The pipeline result.
//   - csvparser.ErrEmptyInput or csvparser.ErrMissingHeader when the input
//     has no usable header. Bad rows are never an error; they only shorten
//     the cleaned set.
func Run(text string) (*Result, error) {
	data, err := csvparser.Parse(text)
	if err != nil {
		return nil, err
	}
	return RunParsed(data), nil
}

// RunParsed runs the cleaning and aggregation stages over parsed data.
func RunParsed(data *csvparser.CSVData) *Result {
	report := cleaner.CleanWithReport(data.Records)

	return &Result{
		Data:    data,
		Report:  report,
		Summary: aggregator.Summarize(report.Records),
	}
}
