// =============================================================================
// Ventas BI - XLSX Export
// =============================================================================
//
// Builds a workbook with two sheets:
//
//   | Sheet    | Content                                                   |
//   |----------|-----------------------------------------------------------|
//   | Limpio   | The cleaned set, one row per record, canonical columns    |
//   | Resumen  | KPIs, amount per time slot, per category, top products    |
//
// Monetary and unit columns are written as numbers so that spreadsheet
// formulas work on them; the date is written as its canonical text.
//
// =============================================================================

package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/ventas-bi/internal/aggregator"
	"github.com/ginjaninja78/ventas-bi/internal/types"
)

// Sheet names of the exported workbook.
const (
	SheetClean   = "Limpio"
	SheetSummary = "Resumen"
)

// WriteXLSX writes the workbook for records and their summary to w.
func WriteXLSX(w io.Writer, records []types.CleanRecord, summary aggregator.Summary, topProducts int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetClean); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeCleanSheet(f, records, bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, summary, topProducts, bold); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeCleanSheet writes the header and one row per record.
func writeCleanSheet(f *excelize.File, records []types.CleanRecord, headerStyle int) error {
	header := make([]interface{}, 0, len(types.CleanFields()))
	for _, field := range types.CleanFields() {
		header = append(header, field)
	}
	if err := f.SetSheetRow(SheetClean, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetClean, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, record := range records {
		row := []interface{}{
			record.DateString(),
			string(record.TimeSlot()),
			record.Product(),
			string(record.Category()),
			record.Units().InexactFloat64(),
			record.UnitPrice().InexactFloat64(),
			record.Amount().InexactFloat64(),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetClean, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return nil
}

// writeSummarySheet writes the KPI block followed by each grouping.
func writeSummarySheet(f *excelize.File, summary aggregator.Summary, topProducts int, headerStyle int) error {
	rows := [][]interface{}{
		{"Indicador", "Valor"},
		{"Filas limpias", summary.RecordCount},
		{"Ventas totales", summary.TotalAmount.Round(2).InexactFloat64()},
		{"Unidades totales", summary.TotalUnits.InexactFloat64()},
		{},
	}
	headerRows := []int{1}

	sections := []struct {
		title  string
		groups []aggregator.Group
	}{
		{title: types.FieldTimeSlot, groups: summary.ByTimeSlot.Groups()},
		{title: types.FieldCategory, groups: summary.ByCategory.Groups()},
		{title: types.FieldProduct, groups: summary.TopProducts(topProducts)},
	}

	for _, section := range sections {
		rows = append(rows, []interface{}{section.title, types.FieldAmount})
		headerRows = append(headerRows, len(rows))
		for _, group := range section.groups {
			rows = append(rows, []interface{}{group.Key, group.Amount.InexactFloat64()})
		}
		rows = append(rows, []interface{}{})
	}

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	for _, row := range headerRows {
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellStyle(SheetSummary, start, end, headerStyle); err != nil {
			return fmt.Errorf("failed to style summary header: %w", err)
		}
	}

	return nil
}
