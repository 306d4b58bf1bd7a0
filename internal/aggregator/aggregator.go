// =============================================================================
// Ventas BI - Aggregator
// =============================================================================
//
// Computes the figures shown on the summary view from the cleaned set:
//   - Scalar totals  : total amount, total units
//   - Grouped sums   : amount per product, per time slot, per category
//
// Everything is accumulated in one pass over the records with exact decimal
// arithmetic. Rounding is left to whoever displays the numbers.
//
// =============================================================================

package aggregator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// DefaultTopProducts is how many products the summary view ranks.
const DefaultTopProducts = 5

// =============================================================================
// GROUPING
// =============================================================================

// Group is one key of a Grouping with its summed amount.
type Group struct {
	Key    string
	Amount decimal.Decimal
}

// Grouping maps a key to a summed amount and remembers the order in which
// keys were first seen. Keys that never occur are absent, not zero.
type Grouping struct {
	order []string
	sums  map[string]decimal.Decimal
}

func newGrouping() Grouping {
	return Grouping{sums: make(map[string]decimal.Decimal)}
}

func (g *Grouping) add(key string, amount decimal.Decimal) {
	current, ok := g.sums[key]
	if !ok {
		g.order = append(g.order, key)
	}
	g.sums[key] = current.Add(amount)
}

// Get returns the sum stored for key.
func (g Grouping) Get(key string) (decimal.Decimal, bool) {
	amount, ok := g.sums[key]
	return amount, ok
}

// Len returns the number of keys.
func (g Grouping) Len() int {
	return len(g.order)
}

// Keys returns the keys in first-seen order.
func (g Grouping) Keys() []string {
	return slices.Clone(g.order)
}

// Groups returns every entry in first-seen order.
func (g Grouping) Groups() []Group {
	groups := make([]Group, len(g.order))
	for i, key := range g.order {
		groups[i] = Group{Key: key, Amount: g.sums[key]}
	}
	return groups
}

// Map returns a copy of the key to amount mapping.
func (g Grouping) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(g.sums))
	for key, amount := range g.sums {
		out[key] = amount
	}
	return out
}

// Total is the sum of every group.
func (g Grouping) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range g.sums {
		total = total.Add(amount)
	}
	return total
}

// Top returns at most n entries by descending amount. Equal amounts keep
// their first-seen order. A negative n returns every entry.
func (g Grouping) Top(n int) []Group {
	groups := g.Groups()
	slices.SortStableFunc(groups, func(a, b Group) int {
		return b.Amount.Cmp(a.Amount)
	})
	if n >= 0 && n < len(groups) {
		groups = groups[:n]
	}
	return groups
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary holds the totals and groupings over a cleaned set.
type Summary struct {
	RecordCount int
	TotalAmount decimal.Decimal
	TotalUnits  decimal.Decimal
	ByProduct   Grouping
	ByTimeSlot  Grouping
	ByCategory  Grouping
}

// TopProducts returns the n best-selling products by amount.
func (s Summary) TopProducts(n int) []Group {
	return s.ByProduct.Top(n)
}

// Summarize accumulates every figure in a single pass over records.
func Summarize(records []types.CleanRecord) Summary {
	summary := Summary{
		RecordCount: len(records),
		TotalAmount: decimal.Zero,
		TotalUnits:  decimal.Zero,
		ByProduct:   newGrouping(),
		ByTimeSlot:  newGrouping(),
		ByCategory:  newGrouping(),
	}

	for _, record := range records {
		amount := record.Amount()

		summary.TotalAmount = summary.TotalAmount.Add(amount)
		summary.TotalUnits = summary.TotalUnits.Add(record.Units())

		summary.ByProduct.add(record.Product(), amount)
		summary.ByTimeSlot.add(string(record.TimeSlot()), amount)
		summary.ByCategory.add(string(record.Category()), amount)
	}

	return summary
}
