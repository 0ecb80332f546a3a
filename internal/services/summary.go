package services

import (
	"fmt"
	"sort"
	"strings"

	"trip-assignment-service/internal/domain"
)

type GroupBy string

const (
	GroupByOrder    GroupBy = "order"
	GroupBySupplier GroupBy = "supplier"
	GroupByArea     GroupBy = "area"
	GroupByTrip     GroupBy = "trip"
)

const (
	unknownLabel = "Unknown"
	noTripLabel  = "No Trip"
)

func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "order", "orders":
		return GroupByOrder, nil
	case "supplier", "suppliers":
		return GroupBySupplier, nil
	case "area", "customer_area":
		return GroupByArea, nil
	case "trip", "trips":
		return GroupByTrip, nil
	}
	return "", fmt.Errorf("parse group by %q: %w", s, ErrUnknownGroupBy)
}

// SummaryRow aggregates the orders of one group.
type SummaryRow struct {
	Key             string   `json:"key"`
	Orders          int      `json:"orders"`
	UniqueOrders    int      `json:"unique_orders"`
	UniqueRetailers int      `json:"unique_retailers"`
	UniqueTrips     int      `json:"unique_trips"`
	TotalCBM        float64  `json:"total_cbm"`
	TotalWeightKG   float64  `json:"total_weight_kg"`
	TotalGMV        float64  `json:"total_gmv"`
	Areas           []string `json:"areas,omitempty"`
}

type summaryAcc struct {
	row       SummaryRow
	orders    map[string]struct{}
	retailers map[string]struct{}
	trips     map[string]struct{}
	areas     map[string]struct{}
}

func newSummaryAcc(key string) *summaryAcc {
	return &summaryAcc{
		row:       SummaryRow{Key: key},
		orders:    make(map[string]struct{}),
		retailers: make(map[string]struct{}),
		trips:     make(map[string]struct{}),
		areas:     make(map[string]struct{}),
	}
}

func (a *summaryAcc) add(o domain.AssignedOrder) {
	a.row.Orders++
	a.row.TotalCBM += o.Dimension
	a.row.TotalWeightKG += o.WeightKG
	a.row.TotalGMV += o.GMV
	if o.ID != "" {
		a.orders[o.ID] = struct{}{}
	}
	if o.RetailerKey != "" {
		a.retailers[o.RetailerKey] = struct{}{}
	}
	if o.TripID != "" {
		a.trips[o.TripID] = struct{}{}
	}
	if o.CustomerArea != "" {
		a.areas[o.CustomerArea] = struct{}{}
	}
}

func (a *summaryAcc) finish(withAreas bool) SummaryRow {
	row := a.row
	row.UniqueOrders = len(a.orders)
	row.UniqueRetailers = len(a.retailers)
	row.UniqueTrips = len(a.trips)
	if withAreas {
		row.Areas = make([]string, 0, len(a.areas))
		for area := range a.areas {
			row.Areas = append(row.Areas, area)
		}
		sort.Strings(row.Areas)
	}
	return row
}

// Summarize groups assigned orders and totals each group. Groups appear in
// the order their first member appears. Orders with an empty group key are
// collected under "Unknown", or "No Trip" when grouping by trip.
func Summarize(orders []domain.AssignedOrder, by GroupBy) ([]SummaryRow, error) {
	keyOf, err := summaryKey(by)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*summaryAcc)
	var keys []string
	for _, o := range orders {
		k := keyOf(o)
		acc, ok := index[k]
		if !ok {
			acc = newSummaryAcc(k)
			index[k] = acc
			keys = append(keys, k)
		}
		acc.add(o)
	}

	rows := make([]SummaryRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, index[k].finish(by == GroupByTrip))
	}
	return rows, nil
}

// SummarizeTotals totals all orders in a single row.
func SummarizeTotals(orders []domain.AssignedOrder) SummaryRow {
	acc := newSummaryAcc("Total")
	for _, o := range orders {
		acc.add(o)
	}
	return acc.finish(false)
}

func summaryKey(by GroupBy) (func(domain.AssignedOrder) string, error) {
	switch by {
	case GroupByOrder:
		return func(o domain.AssignedOrder) string { return orLabel(o.ID, unknownLabel) }, nil
	case GroupBySupplier:
		return func(o domain.AssignedOrder) string {
			if o.SupplierName != "" {
				return o.SupplierName
			}
			return orLabel(o.SupplierKey, unknownLabel)
		}, nil
	case GroupByArea:
		return func(o domain.AssignedOrder) string { return orLabel(o.CustomerArea, unknownLabel) }, nil
	case GroupByTrip:
		return func(o domain.AssignedOrder) string { return orLabel(o.TripID, noTripLabel) }, nil
	}
	return nil, fmt.Errorf("summarize: %q: %w", by, ErrUnknownGroupBy)
}

func orLabel(s, label string) string {
	if s == "" {
		return label
	}
	return s
}
