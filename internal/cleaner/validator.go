// =============================================================================
// Ventas BI - Field Validation Rules
// =============================================================================
//
// This module validates and normalizes the fields of a single raw record.
// Each rule either yields a typed value or a Rejection describing which field
// failed and why.
//
// RULE ORDER (first failure wins):
//   1. fecha            : parseable date
//   2. producto         : non-empty after trimming
//   3. franja           : Desayuno | Comida after normalization
//   4. familia          : Bebida | Entrante | Principal | Postre
//   5. unidades         : number > 0 (fractions allowed)
//   6. precio_unitario  : number > 0
//
// =============================================================================

package cleaner

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// =============================================================================
// REJECTION TYPES
// =============================================================================

// RejectRule names the rule a record failed.
type RejectRule string

const (
	RuleMissing     RejectRule = "missing"
	RuleInvalidDate RejectRule = "invalid_date"
	RuleEmpty       RejectRule = "empty"
	RuleNotAllowed  RejectRule = "not_allowed"
	RuleNotANumber  RejectRule = "not_a_number"
	RuleNotPositive RejectRule = "not_positive"
	RuleDuplicate   RejectRule = "duplicate"
)

// Rejection describes why one raw record was left out of the cleaned set.
type Rejection struct {
	// Line is the source line number of the record.
	Line int

	// Field is the name of the field that failed, empty for duplicates.
	Field string

	// Value is the raw value that failed.
	Value string

	// Rule is the rule that was violated.
	Rule RejectRule

	// Message is a human-readable explanation.
	Message string
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	if r.Field == "" {
		return fmt.Sprintf("line %d: %s", r.Line, r.Message)
	}
	return fmt.Sprintf("line %d, field '%s': %s (value: '%s')", r.Line, r.Field, r.Message, r.Value)
}

// =============================================================================
// FIELD RULES
// =============================================================================

// fieldValue fetches a field or reports it as missing.
func fieldValue(raw types.RawRecord, field string) (string, *Rejection) {
	value, ok := raw.Get(field)
	if !ok {
		return "", &Rejection{
			Line:    raw.Line,
			Field:   field,
			Rule:    RuleMissing,
			Message: "field is missing",
		}
	}
	return value, nil
}

// validateRecord runs every field rule and builds the clean record.
func validateRecord(raw types.RawRecord) (types.CleanRecord, *Rejection) {
	rawDate, rej := fieldValue(raw, types.FieldDate)
	if rej != nil {
		return types.CleanRecord{}, rej
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return types.CleanRecord{}, reject(raw, types.FieldDate, rawDate, RuleInvalidDate, "not a valid date")
	}

	rawProduct, rej := fieldValue(raw, types.FieldProduct)
	if rej != nil {
		return types.CleanRecord{}, rej
	}
	product := strings.TrimSpace(rawProduct)
	if product == "" {
		return types.CleanRecord{}, reject(raw, types.FieldProduct, rawProduct, RuleEmpty, "product is empty")
	}

	rawSlot, rej := fieldValue(raw, types.FieldTimeSlot)
	if rej != nil {
		return types.CleanRecord{}, rej
	}
	slot, ok := types.ParseTimeSlot(NormalizeLabel(rawSlot))
	if !ok {
		return types.CleanRecord{}, reject(raw, types.FieldTimeSlot, rawSlot, RuleNotAllowed, "unknown time slot")
	}

	rawCategory, rej := fieldValue(raw, types.FieldCategory)
	if rej != nil {
		return types.CleanRecord{}, rej
	}
	category, ok := types.ParseCategory(NormalizeLabel(rawCategory))
	if !ok {
		return types.CleanRecord{}, reject(raw, types.FieldCategory, rawCategory, RuleNotAllowed, "unknown category")
	}

	units, rej := positiveNumber(raw, types.FieldUnits)
	if rej != nil {
		return types.CleanRecord{}, rej
	}

	unitPrice, rej := positiveNumber(raw, types.FieldUnitPrice)
	if rej != nil {
		return types.CleanRecord{}, rej
	}

	return types.NewCleanRecord(date, slot, product, category, units, unitPrice), nil
}

// positiveNumber reads a field as a decimal strictly greater than zero.
func positiveNumber(raw types.RawRecord, field string) (decimal.Decimal, *Rejection) {
	value, rej := fieldValue(raw, field)
	if rej != nil {
		return decimal.Zero, rej
	}

	number, err := parseNumber(value)
	if err != nil {
		return decimal.Zero, reject(raw, field, value, RuleNotANumber, "not a valid number")
	}
	if !number.IsPositive() {
		return decimal.Zero, reject(raw, field, value, RuleNotPositive, "must be greater than zero")
	}

	return number, nil
}

func reject(raw types.RawRecord, field, value string, rule RejectRule, message string) *Rejection {
	return &Rejection{
		Line:    raw.Line,
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
