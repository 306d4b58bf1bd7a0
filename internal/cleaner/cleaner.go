// =============================================================================
// Ventas BI - Cleaner
// =============================================================================
//
// The cleaner turns raw records into the cleaned set:
//   1. Every raw record is validated on its own (see validator.go)
//   2. Survivors are fingerprinted over all normalized fields
//   3. A fingerprint seen earlier in the same run drops the record
//
// Rejections never abort the run. Clean only returns the survivors;
// CleanWithReport also returns one Rejection per dropped record.
//
// The seen-set lives inside a single call, so concurrent callers share
// nothing.
//
// =============================================================================

package cleaner

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Result is the tagged outcome of cleaning one raw record: either Record is
// set and Rejection is nil, or Rejection explains why there is no record.
type Result struct {
	Record    types.CleanRecord
	Rejection *Rejection
}

// OK reports whether the record survived.
func (r Result) OK() bool {
	return r.Rejection == nil
}

// Report is the full outcome of a cleaning run.
type Report struct {
	// Records is the cleaned set in original order.
	Records []types.CleanRecord

	// Rejections lists every dropped record in original order.
	Rejections []Rejection

	// RawCount is the number of raw records that went in.
	RawCount int
}

// CountByRule tallies rejections per rule.
func (r Report) CountByRule() map[RejectRule]int {
	counts := make(map[RejectRule]int)
	for _, rejection := range r.Rejections {
		counts[rejection.Rule]++
	}
	return counts
}

// =============================================================================
// CLEANING
// =============================================================================

// Clean validates, normalizes and deduplicates records.
// The output never holds more records than the input.
func Clean(records []types.RawRecord) []types.CleanRecord {
	return CleanWithReport(records).Records
}

// CleanWithReport is Clean plus the reason every dropped record was dropped.
func CleanWithReport(records []types.RawRecord) Report {
	report := Report{
		Records:  make([]types.CleanRecord, 0, len(records)),
		RawCount: len(records),
	}

	seen := make(map[string]struct{}, len(records))
	for _, raw := range records {
		result := dedupe(CleanOne(raw), raw, seen)
		if !result.OK() {
			report.Rejections = append(report.Rejections, *result.Rejection)
			continue
		}
		report.Records = append(report.Records, result.Record)
	}

	return report
}

// CleanOne validates a single record in isolation, without deduplication.
func CleanOne(raw types.RawRecord) Result {
	record, rejection := validateRecord(raw)
	return Result{Record: record, Rejection: rejection}
}

// dedupe rejects a valid result whose fingerprint is already in seen, and
// records the fingerprint otherwise.
func dedupe(result Result, raw types.RawRecord, seen map[string]struct{}) Result {
	if !result.OK() {
		return result
	}

	key := Fingerprint(result.Record)
	if _, dup := seen[key]; dup {
		return Result{Rejection: &Rejection{
			Line:    raw.Line,
			Rule:    RuleDuplicate,
			Message: "duplicate of an earlier record",
		}}
	}

	seen[key] = struct{}{}
	return result
}

// Fingerprint is a structural key over every normalized field, the derived
// amount included. Two records share a fingerprint exactly when Equal holds.
func Fingerprint(record types.CleanRecord) string {
	values := record.Values()
	for i, value := range values {
		values[i] = strconv.Quote(value)
	}
	return strings.Join(values, ",")
}
