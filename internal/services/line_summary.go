package services

import (
	"fmt"

	"trip-assignment-service/internal/domain"
)

// LineSummaryRow totals resolved line items of one group.
type LineSummaryRow struct {
	Key           string  `json:"key"`
	Lines         int     `json:"lines"`
	UniqueOrders  int     `json:"unique_orders"`
	TotalCBM      float64 `json:"total_cbm"`
	TotalWeightKG float64 `json:"total_weight_kg"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// SummarizeLineItems groups resolved lines by order, supplier or area.
// Trip grouping is not available before assignment.
func SummarizeLineItems(lines []domain.ResolvedLineItem, by GroupBy) ([]LineSummaryRow, error) {
	var keyOf func(domain.ResolvedLineItem) string
	switch by {
	case GroupByOrder:
		keyOf = func(l domain.ResolvedLineItem) string { return orLabel(l.OrderKey, unknownLabel) }
	case GroupBySupplier:
		keyOf = func(l domain.ResolvedLineItem) string { return orLabel(l.SupplierName, unknownLabel) }
	case GroupByArea:
		keyOf = func(l domain.ResolvedLineItem) string { return orLabel(l.CustomerArea, unknownLabel) }
	default:
		return nil, fmt.Errorf("summarize line items: %q: %w", by, ErrUnknownGroupBy)
	}

	type acc struct {
		row        LineSummaryRow
		orders     map[string]struct{}
		confidence int
	}
	index := make(map[string]*acc)
	var keys []string

	for _, l := range lines {
		k := keyOf(l)
		a, ok := index[k]
		if !ok {
			a = &acc{row: LineSummaryRow{Key: k}, orders: make(map[string]struct{})}
			index[k] = a
			keys = append(keys, k)
		}
		a.row.Lines++
		a.row.TotalCBM += l.CBM
		a.row.TotalWeightKG += l.WeightKG
		a.confidence += int(l.Confidence)
		if l.OrderKey != "" {
			a.orders[l.OrderKey] = struct{}{}
		}
	}

	rows := make([]LineSummaryRow, 0, len(keys))
	for _, k := range keys {
		a := index[k]
		a.row.UniqueOrders = len(a.orders)
		a.row.AvgConfidence = float64(a.confidence) / float64(a.row.Lines)
		rows = append(rows, a.row)
	}
	return rows, nil
}
