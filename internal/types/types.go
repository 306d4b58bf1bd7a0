// =============================================================================
// Ventas BI - Shared Types
// =============================================================================
//
// This package contains the record types shared by every stage of the
// pipeline. Types defined here are used by:
//   - csvparser  (produces RawRecord)
//   - cleaner    (turns RawRecord into CleanRecord)
//   - aggregator (reads CleanRecord)
//   - exporter   (renders both)
//
// SHAPE:
//   RawRecord is a dynamic, header-keyed container. CleanRecord is a
//   fixed-shape value with typed fields. The shape narrows at the
//   parse/clean boundary.
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FIELD NAMES
// =============================================================================

// Field names used in the input header and in every export, in canonical order.
const (
	FieldDate      = "fecha"
	FieldTimeSlot  = "franja"
	FieldProduct   = "producto"
	FieldCategory  = "familia"
	FieldUnits     = "unidades"
	FieldUnitPrice = "precio_unitario"
	FieldAmount    = "importe"
)

// DateLayout is the canonical textual form of a CleanRecord date.
const DateLayout = "2006-01-02"

// CleanFields returns the CleanRecord field names in canonical order.
func CleanFields() []string {
	return []string{
		FieldDate,
		FieldTimeSlot,
		FieldProduct,
		FieldCategory,
		FieldUnits,
		FieldUnitPrice,
		FieldAmount,
	}
}

// =============================================================================
// ENUMERATIONS
// =============================================================================

// TimeSlot is the meal period a sale belongs to.
type TimeSlot string

const (
	// Breakfast is the morning service.
	Breakfast TimeSlot = "Desayuno"

	// Lunch is the midday service.
	Lunch TimeSlot = "Comida"
)

// TimeSlots returns every valid time slot.
func TimeSlots() []TimeSlot {
	return []TimeSlot{Breakfast, Lunch}
}

// ParseTimeSlot matches an already-normalized value against the enumeration.
// The match is exact; casing must be normalized by the caller.
func ParseTimeSlot(s string) (TimeSlot, bool) {
	for _, slot := range TimeSlots() {
		if string(slot) == s {
			return slot, true
		}
	}
	return "", false
}

// Category is the menu family of the sold product.
type Category string

const (
	Beverage Category = "Bebida"
	Starter  Category = "Entrante"
	Main     Category = "Principal"
	Dessert  Category = "Postre"
)

// Categories returns every valid category.
func Categories() []Category {
	return []Category{Beverage, Starter, Main, Dessert}
}

// ParseCategory matches an already-normalized value against the enumeration.
func ParseCategory(s string) (Category, bool) {
	for _, category := range Categories() {
		if string(category) == s {
			return category, true
		}
	}
	return "", false
}

// =============================================================================
// RAW RECORD
// =============================================================================

// RawRecord is one non-header input line mapped onto the header names.
//
// Values shorter than Headers leave the trailing fields absent. Absent is not
// the same as the empty string: Get reports ok=false for an absent field.
type RawRecord struct {
	// Headers is the header row shared by all records of the same input.
	Headers []string

	// Values holds at most len(Headers) values; extra input values are dropped
	// by the parser.
	Values []string

	// Line is the 1-based line number in the source text.
	Line int
}

// Get returns the value stored under the header name.
// When a header name repeats, the last column wins.
func (r RawRecord) Get(name string) (string, bool) {
	value, found := "", false
	for i, header := range r.Headers {
		if header != name {
			continue
		}
		if i < len(r.Values) {
			value, found = r.Values[i], true
		} else {
			value, found = "", false
		}
	}
	return value, found
}

// Row returns the values aligned with Headers, absent fields as "".
func (r RawRecord) Row() []string {
	row := make([]string, len(r.Headers))
	copy(row, r.Values)
	return row
}

// =============================================================================
// CLEAN RECORD
// =============================================================================

// CleanRecord is a validated, normalized sale line.
//
// Fields are unexported so that a record cannot change after NewCleanRecord
// builds it. Amount is always derived from Units and UnitPrice.
type CleanRecord struct {
	date      time.Time
	timeSlot  TimeSlot
	product   string
	category  Category
	units     decimal.Decimal
	unitPrice decimal.Decimal
}

// NewCleanRecord builds a CleanRecord. The date keeps only its calendar day,
// read in the location it was parsed in, and is stored as UTC midnight.
func NewCleanRecord(date time.Time, slot TimeSlot, product string, category Category, units, unitPrice decimal.Decimal) CleanRecord {
	y, m, d := date.Date()
	return CleanRecord{
		date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		timeSlot:  slot,
		product:   product,
		category:  category,
		units:     units,
		unitPrice: unitPrice,
	}
}

// Date returns the sale date as UTC midnight.
func (r CleanRecord) Date() time.Time { return r.date }

// TimeSlot returns the normalized meal period.
func (r CleanRecord) TimeSlot() TimeSlot { return r.timeSlot }

// Product returns the trimmed product name, case preserved.
func (r CleanRecord) Product() string { return r.product }

// Category returns the normalized menu family.
func (r CleanRecord) Category() Category { return r.category }

// Units returns the number of units sold.
func (r CleanRecord) Units() decimal.Decimal { return r.units }

// UnitPrice returns the price of a single unit.
func (r CleanRecord) UnitPrice() decimal.Decimal { return r.unitPrice }

// DateString returns the date in canonical YYYY-MM-DD form.
func (r CleanRecord) DateString() string {
	return r.date.Format(DateLayout)
}

// Amount is units * unit price, exact.
func (r CleanRecord) Amount() decimal.Decimal {
	return r.units.Mul(r.unitPrice)
}

// Values returns the record as strings in CleanFields order.
func (r CleanRecord) Values() []string {
	return []string{
		r.DateString(),
		string(r.timeSlot),
		r.product,
		string(r.category),
		r.units.String(),
		r.unitPrice.String(),
		r.Amount().String(),
	}
}

// Equal reports full-field structural equality. Decimals compare by value,
// so 2 and 2.0 are equal.
func (r CleanRecord) Equal(other CleanRecord) bool {
	return r.date.Equal(other.date) &&
		r.timeSlot == other.timeSlot &&
		r.product == other.product &&
		r.category == other.category &&
		r.units.Equal(other.units) &&
		r.unitPrice.Equal(other.unitPrice)
}
