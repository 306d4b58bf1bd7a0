package exporter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ginjaninja78/ventas-bi/internal/aggregator"
	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// Table is a generic key/value table: column names plus rows of cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// RawTable builds a preview of at most n raw records. Absent values are
// shown as empty cells.
func RawTable(headers []string, records []types.RawRecord, n int) Table {
	table := Table{Headers: headers}
	for i, record := range records {
		if n >= 0 && i >= n {
			break
		}
		table.Rows = append(table.Rows, record.Row())
	}
	return table
}

// CleanTable builds a preview of at most n clean records.
func CleanTable(records []types.CleanRecord, n int) Table {
	table := Table{Headers: types.CleanFields()}
	for i, record := range records {
		if n >= 0 && i >= n {
			break
		}
		table.Rows = append(table.Rows, record.Values())
	}
	return table
}

// GroupTable renders grouped amounts rounded to two decimals.
func GroupTable(keyHeader string, groups []aggregator.Group) Table {
	table := Table{Headers: []string{keyHeader, types.FieldAmount}}
	for _, group := range groups {
		table.Rows = append(table.Rows, []string{group.Key, group.Amount.StringFixed(2)})
	}
	return table
}

// Render writes the table as aligned text columns.
func (t Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}
