// =============================================================================
// Ventas BI - Normalization Helpers
// =============================================================================
//
// Value normalizers applied by the cleaner before a field is matched or
// converted:
//   - NormalizeLabel : trim + first letter upper, remainder lower
//   - parseDate      : fixed layout list, calendar day as written
//   - parseNumber    : trimmed decimal literal
//
// Casing goes through golang.org/x/text/cases so that characters whose case
// mapping is not one-to-one (for example "ß") are handled the Unicode way.
//
// =============================================================================

package cleaner

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// dateLayouts lists every accepted input date form, tried in order.
// Slash dates are month first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Bounds on accepted numbers. Exponent notation is allowed, so without them
// a short literal like "1e30000000" would expand to millions of digits when
// printed.
const (
	maxIntegerDigits  = 28
	maxFractionDigits = 28
)

var (
	errEmptyNumber      = errors.New("empty number")
	errNumberOutOfRange = errors.New("number out of range")
)

// NormalizeLabel trims s, upper-cases its first character and lower-cases the
// rest. "DESAYUNO", "desayuno" and " Desayuno " all become "Desayuno".
// Applying it to its own output returns the same value.
func NormalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)

	// Casers keep internal state, so each call gets its own.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	return upper.String(string(first)) + lower.String(s[size:])
}

// parseDate parses a raw date against dateLayouts. The returned time keeps
// the location from the input; only its calendar day is used downstream.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}

// parseNumber converts a trimmed decimal literal. Exponent notation is
// accepted; thousands separators and decimal commas are not. Values with more
// than maxIntegerDigits integer digits or maxFractionDigits fraction digits
// are out of range.
func parseNumber(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, errEmptyNumber
	}

	number, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}

	exp := int64(number.Exponent())
	if exp < -maxFractionDigits || int64(number.NumDigits())+exp > maxIntegerDigits {
		return decimal.Zero, errNumberOutOfRange
	}

	return number, nil
}
