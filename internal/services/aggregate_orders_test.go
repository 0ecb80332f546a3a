package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-assignment-service/internal/domain"
)

func TestAggregateOrders(t *testing.T) {
	tasks := domain.ParseTasks([]domain.Row{
		{"id": 101, "sup_place_id": "S1"},
		{"ID": "102", "sup_place_id": "S1"},
		{"task_id": " 103 ", "sup_place_id": "S2"},
	})
	lines := []domain.ResolvedLineItem{
		resolved(domain.Row{"order_id": "101", "product_amount": 2, "product_price": 10}, 0.5, 1.25),
		resolved(domain.Row{"order_id": 101.0, "product_gmv": 7}, 0.25, 0.75),
		resolved(domain.Row{"task_id": "103", "product_gmv": "12.5"}, 1, 2),
		resolved(domain.Row{"order_id": "999", "product_gmv": 50}, 3, 3),
	}

	orders := AggregateOrders(tasks, lines)
	require.Len(t, orders, 3)

	assert.Equal(t, "101", orders[0].ID)
	assert.InDelta(t, 0.75, orders[0].Dimension, 1e-12)
	assert.InDelta(t, 2.0, orders[0].WeightKG, 1e-12)
	assert.InDelta(t, 27.0, orders[0].GMV, 1e-12)

	assert.Equal(t, "102", orders[1].ID)
	assert.Zero(t, orders[1].Dimension)
	assert.Zero(t, orders[1].WeightKG)
	assert.Zero(t, orders[1].GMV)

	assert.Equal(t, "103", orders[2].ID)
	assert.InDelta(t, 1.0, orders[2].Dimension, 1e-12)
	assert.InDelta(t, 12.5, orders[2].GMV, 1e-12)
}

func TestAggregateOrdersIsIdempotent(t *testing.T) {
	tasks := domain.ParseTasks([]domain.Row{{"id": "A"}, {"id": "B"}})
	lines := []domain.ResolvedLineItem{
		resolved(domain.Row{"order_id": "A", "product_gmv": 3}, 0.1, 0.2),
		resolved(domain.Row{"order_id": "A", "product_gmv": 4}, 0.3, 0.4),
		resolved(domain.Row{"order_id": "B"}, 0.5, 0.6),
	}

	first := AggregateOrders(tasks, lines)
	second := AggregateOrders(tasks, lines)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Dimension, second[i].Dimension)
		assert.Equal(t, first[i].WeightKG, second[i].WeightKG)
		assert.Equal(t, first[i].GMV, second[i].GMV)
	}
	assert.NotContains(t, tasks[0].Row, domain.ColOrderDimension)
}

func TestAggregateOrdersEndToEnd(t *testing.T) {
	table := NewFallbackTable([]domain.Row{
		{"BRAND_NAME": "Acme", "CATEGORY": "Snacks", "measure": 1, "unit count": 12, "CBM": "0,012", "Weight": "150"},
	})
	line := ResolveLineItem(domain.ParseLineItem(domain.Row{
		"brand_name": "Acme", "category": "Snacks", "measurement_value": 1, "unit_count": 12,
		"product_amount": 5, "order_id": "T1",
	}), table)

	require.Equal(t, domain.ConfidenceExact, line.Confidence)
	assert.InDelta(t, 0.06, line.CBM, 1e-12)
	assert.InDelta(t, 0.75, line.WeightKG, 1e-12)

	orders := AggregateOrders(domain.ParseTasks([]domain.Row{{"id": "T1"}}), []domain.ResolvedLineItem{line})
	require.Len(t, orders, 1)
	row := orders[0].AnnotatedRow()
	assert.InDelta(t, 0.06, row[domain.ColOrderDimension], 1e-12)
	assert.InDelta(t, 0.75, row[domain.ColOrderWeight], 1e-12)
}

func resolved(row domain.Row, cbm, weightKG float64) domain.ResolvedLineItem {
	return domain.ResolvedLineItem{
		LineItem: domain.ParseLineItem(row),
		CBM:      cbm,
		WeightKG: weightKG,
	}
}
