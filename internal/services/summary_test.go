package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-assignment-service/internal/domain"
)

func assignedOrders() []domain.AssignedOrder {
	return domain.ParseAssignedOrders([]domain.Row{
		{"id": "1", "supplier_name": "Acme", "sup_place_id": "S1", "customer_area": "Giza", "retailer_id": "R1",
			"order_dimension": 1.0, "Total Order Weight / KG": 10.0, "order_gmv": 100.0, "Trip_ID": "S1_Trip_1"},
		{"id": "2", "supplier_name": "Acme", "sup_place_id": "S1", "customer_area": "Dokki", "retailer_id": "R1",
			"order_dimension": 2.0, "Total Order Weight / KG": 20.0, "order_gmv": 50.0, "Trip_ID": "S1_Trip_1"},
		{"id": "3", "supplier_name": "Beta", "sup_place_id": "S2", "customer_area": "Giza", "retailer_id": "R2",
			"order_dimension": 0.5, "Total Order Weight / KG": 5.0, "order_gmv": 25.0, "Trip_ID": "S2_Trip_2"},
		{"id": "3", "supplier_name": "Beta", "sup_place_id": "S2",
			"order_dimension": 0.0, "Total Order Weight / KG": 0.0, "order_gmv": 0.0, "Trip_ID": ""},
	})
}

func TestSummarizeBySupplier(t *testing.T) {
	rows, err := Summarize(assignedOrders(), GroupBySupplier)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	acme := rows[0]
	assert.Equal(t, "Acme", acme.Key)
	assert.Equal(t, 2, acme.Orders)
	assert.Equal(t, 2, acme.UniqueOrders)
	assert.Equal(t, 1, acme.UniqueRetailers)
	assert.Equal(t, 1, acme.UniqueTrips)
	assert.InDelta(t, 3.0, acme.TotalCBM, 1e-12)
	assert.InDelta(t, 30.0, acme.TotalWeightKG, 1e-12)
	assert.InDelta(t, 150.0, acme.TotalGMV, 1e-12)
	assert.Nil(t, acme.Areas)

	beta := rows[1]
	assert.Equal(t, "Beta", beta.Key)
	assert.Equal(t, 2, beta.Orders)
	assert.Equal(t, 1, beta.UniqueOrders)
	assert.Equal(t, 1, beta.UniqueTrips)
}

func TestSummarizeByAreaAndTrip(t *testing.T) {
	rows, err := Summarize(assignedOrders(), GroupByArea)
	require.NoError(t, err)
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"Giza", "Dokki", "Unknown"}, keys)
	assert.Equal(t, 2, rows[0].UniqueRetailers)
	assert.Equal(t, 2, rows[0].UniqueTrips)

	rows, err = Summarize(assignedOrders(), GroupByTrip)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "S1_Trip_1", rows[0].Key)
	assert.Equal(t, []string{"Dokki", "Giza"}, rows[0].Areas)
	assert.Equal(t, "No Trip", rows[2].Key)
	assert.Equal(t, 0, rows[2].UniqueTrips)
	assert.Equal(t, []string{}, rows[2].Areas)
}

func TestSummarizeByOrder(t *testing.T) {
	rows, err := Summarize(assignedOrders(), GroupByOrder)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "3", rows[2].Key)
	assert.Equal(t, 2, rows[2].Orders)
	assert.Equal(t, 1, rows[2].UniqueOrders)
}

func TestSummarizeTotals(t *testing.T) {
	total := SummarizeTotals(assignedOrders())
	assert.Equal(t, "Total", total.Key)
	assert.Equal(t, 4, total.Orders)
	assert.Equal(t, 3, total.UniqueOrders)
	assert.Equal(t, 2, total.UniqueRetailers)
	assert.Equal(t, 2, total.UniqueTrips)
	assert.InDelta(t, 3.5, total.TotalCBM, 1e-12)
}

func TestSummarizeUnknownGroupBy(t *testing.T) {
	_, err := Summarize(assignedOrders(), GroupBy("retailer"))
	require.ErrorIs(t, err, ErrUnknownGroupBy)
	assert.True(t, IsValidation(err))
}

func TestParseGroupBy(t *testing.T) {
	tests := map[string]GroupBy{
		"order":         GroupByOrder,
		" Supplier ":    GroupBySupplier,
		"customer_area": GroupByArea,
		"TRIP":          GroupByTrip,
	}
	for in, want := range tests {
		got, err := ParseGroupBy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseGroupBy("vehicle")
	assert.ErrorIs(t, err, ErrUnknownGroupBy)
}

func TestSummarizeLineItems(t *testing.T) {
	lines := []domain.ResolvedLineItem{
		{LineItem: domain.ParseLineItem(domain.Row{"order_id": "1", "supplier_name": "Acme"}), Confidence: 100, CBM: 0.5, WeightKG: 1},
		{LineItem: domain.ParseLineItem(domain.Row{"order_id": "1", "supplier_name": "Acme"}), Confidence: 70, CBM: 0.25, WeightKG: 2},
		{LineItem: domain.ParseLineItem(domain.Row{"order_id": "2", "supplier_name": "Acme"}), Confidence: 0},
		{LineItem: domain.ParseLineItem(domain.Row{"order_id": "3"}), Confidence: 90, CBM: 1, WeightKG: 1},
	}

	rows, err := SummarizeLineItems(lines, GroupBySupplier)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, LineSummaryRow{
		Key: "Acme", Lines: 3, UniqueOrders: 2, TotalCBM: 0.75, TotalWeightKG: 3, AvgConfidence: 170.0 / 3,
	}, rows[0])
	assert.Equal(t, "Unknown", rows[1].Key)
	assert.InDelta(t, 90.0, rows[1].AvgConfidence, 1e-12)

	rows, err = SummarizeLineItems(lines, GroupByOrder)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = SummarizeLineItems(lines, GroupByTrip)
	assert.ErrorIs(t, err, ErrUnknownGroupBy)
}
