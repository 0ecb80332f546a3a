package workbook

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/services"
)

// Exported sheet names.
const (
	SheetAssignedTrips = "AssignedTrips"
	SheetSuppliers     = "Suppliers"
	SheetAreas         = "Areas"
	SheetTrips         = "Trips"
)

// leadingColumns come first in the assigned orders sheet; any other source
// column follows in name order.
var leadingColumns = []string{
	domain.ColTripID,
	domain.ColID,
	domain.ColSupPlaceID,
	domain.ColSupplierName,
	domain.ColCluster,
	domain.ColCustomerArea,
	domain.ColRetailerID,
	domain.ColRetailerName,
	domain.ColOrderDimension,
	domain.ColOrderWeight,
	domain.ColOrderGMV,
}

// Export writes assigned orders and their supplier, area and trip summaries
// as an .xlsx workbook.
func Export(w io.Writer, orders []domain.AssignedOrder) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetAssignedTrips); err != nil {
		return fmt.Errorf("export workbook: rename sheet: %w", err)
	}

	rows := make([]domain.Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, o.AnnotatedRow())
	}
	if err := writeTable(f, SheetAssignedTrips, columnsOf(rows), rows); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}

	summaries := []struct {
		sheet string
		by    services.GroupBy
		label string
	}{
		{SheetSuppliers, services.GroupBySupplier, "Supplier"},
		{SheetAreas, services.GroupByArea, "Customer Area"},
		{SheetTrips, services.GroupByTrip, "Trip"},
	}
	for _, s := range summaries {
		summary, err := services.Summarize(orders, s.by)
		if err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		if _, err := f.NewSheet(s.sheet); err != nil {
			return fmt.Errorf("export workbook: new sheet %q: %w", s.sheet, err)
		}
		if err := writeSummary(f, s.sheet, s.label, summary, s.by == services.GroupByTrip); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export workbook: write: %w", err)
	}
	return nil
}

func columnsOf(rows []domain.Row) []string {
	seen := make(map[string]struct{})
	var rest []string
	for _, r := range rows {
		for k := range r {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if !slices.Contains(leadingColumns, k) {
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)

	cols := make([]string, 0, len(leadingColumns)+len(rest))
	for _, c := range leadingColumns {
		if _, ok := seen[c]; ok {
			cols = append(cols, c)
		}
	}
	return append(cols, rest...)
}

func writeTable(f *excelize.File, sheet string, cols []string, rows []domain.Row) error {
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, r := range rows {
		values := make([]any, len(cols))
		for j, c := range cols {
			values[j] = r[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, sheet, label string, summary []services.SummaryRow, withAreas bool) error {
	header := []any{label, "Orders", "Unique Orders", "Unique Retailers", "Unique Trips", "Total CBM", "Total Weight / KG", "Total GMV"}
	if withAreas {
		header = append(header, "Areas")
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, s := range summary {
		values := []any{s.Key, s.Orders, s.UniqueOrders, s.UniqueRetailers, s.UniqueTrips, s.TotalCBM, s.TotalWeightKG, s.TotalGMV}
		if withAreas {
			values = append(values, strings.Join(s.Areas, ", "))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
