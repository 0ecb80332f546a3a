package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-assignment-service/internal/domain"
)

func fallbackRows() []domain.Row {
	return []domain.Row{
		{
			"BRAND_NAME": "Acme", "CATEGORY": "Snacks", "measure": 1, "unit count": 12,
			"CBM": "0,012", "Weight": "150",
			"CATEGORY_mid": "Snacks", "measure_mid": 1, "unit_count_mid": 12,
			"CBM_mid": "0,5", "Weight_mid": "900",
			"CATEGORY_AVG": "Snacks", "CBM_AVG": "1,5", "Weight_AVG": "2000",
		},
		{
			"CATEGORY_mid": "Drinks", "measure_mid": 2, "unit_count_mid": 6,
			"CBM_mid": "0,02", "Weight_mid": "300",
			"CATEGORY_AVG": "Drinks", "CBM_AVG": "0,03", "Weight_AVG": "400",
		},
		{
			"CATEGORY_AVG": "Dairy", "CBM_AVG": "0,04", "Weight_AVG": "500",
		},
		{
			"CATEGORY_AVG": "Dairy", "CBM_AVG": "9", "Weight_AVG": "9",
		},
	}
}

func TestResolveCbmWeightTiers(t *testing.T) {
	table := NewFallbackTable(fallbackRows())

	tests := []struct {
		name       string
		row        domain.Row
		confidence domain.Confidence
		cbm        float64
		weight     float64
	}{
		{
			name:       "exact brand match",
			row:        domain.Row{"brand_name": "Acme", "category": "Snacks", "measurement_value": 1, "unit_count": 12},
			confidence: domain.ConfidenceExact, cbm: 0.012, weight: 150,
		},
		{
			name:       "other brand falls to category tier",
			row:        domain.Row{"brand_name": "Other", "category": "Snacks", "measurement_value": 1, "unit_count": 12},
			confidence: domain.ConfidenceCategory, cbm: 0.5, weight: 900,
		},
		{
			name:       "category tier without brand columns",
			row:        domain.Row{"category": "Drinks", "measurement_value": "2", "unit_count": "6"},
			confidence: domain.ConfidenceCategory, cbm: 0.02, weight: 300,
		},
		{
			name:       "unknown measure falls to category average",
			row:        domain.Row{"category": "Drinks", "measurement_value": 5, "unit_count": 6},
			confidence: domain.ConfidenceCategoryAverage, cbm: 0.03, weight: 400,
		},
		{
			name:       "first average rule wins",
			row:        domain.Row{"category": "Dairy"},
			confidence: domain.ConfidenceCategoryAverage, cbm: 0.04, weight: 500,
		},
		{
			name:       "values are trimmed",
			row:        domain.Row{"brand_name": " Acme ", "category": "Snacks  ", "measurement_value": 1, "unit_count": 12},
			confidence: domain.ConfidenceExact, cbm: 0.012, weight: 150,
		},
		{
			name:       "no match",
			row:        domain.Row{"category": "Furniture"},
			confidence: domain.ConfidenceNone,
		},
		{
			name:       "empty category never matches blank tier cells",
			row:        domain.Row{"brand_name": "Acme"},
			confidence: domain.ConfidenceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveCbmWeight(domain.ParseLineItem(tt.row), table)
			assert.Equal(t, tt.confidence, res.Confidence)
			assert.InDelta(t, tt.cbm, res.CBM, 1e-12)
			assert.InDelta(t, tt.weight, res.Weight, 1e-12)
		})
	}
}

func TestResolveCbmWeightNilTable(t *testing.T) {
	res := ResolveCbmWeight(domain.ParseLineItem(domain.Row{"category": "Snacks"}), nil)
	assert.Equal(t, Resolution{Confidence: domain.ConfidenceNone}, res)
}

func TestResolveCbmWeightPrefersExactTier(t *testing.T) {
	// The Acme row carries rules for every tier; the exact one must win.
	table := NewFallbackTable(fallbackRows())
	item := domain.ParseLineItem(domain.Row{"brand_name": "Acme", "category": "Snacks", "measurement_value": 1, "unit_count": 12})

	for n := 0; n < 3; n++ {
		require.Equal(t, domain.ConfidenceExact, ResolveCbmWeight(item, table).Confidence)
	}
}

func TestResolveLineItemScalesByQuantity(t *testing.T) {
	table := NewFallbackTable([]domain.Row{
		{"CATEGORY_AVG": "Boxes", "CBM_AVG": 2.0, "Weight_AVG": 500},
	})

	line := ResolveLineItem(domain.ParseLineItem(domain.Row{"category": "Boxes", "product_amount": 3}), table)
	assert.Equal(t, domain.ConfidenceCategoryAverage, line.Confidence)
	assert.InDelta(t, 6.0, line.CBM, 1e-12)
	assert.InDelta(t, 1.5, line.WeightKG, 1e-12)

	for _, amount := range []any{nil, 0, -2, "abc"} {
		line := ResolveLineItem(domain.ParseLineItem(domain.Row{"category": "Boxes", "product_amount": amount}), table)
		assert.InDelta(t, 2.0, line.CBM, 1e-12, "amount %v", amount)
		assert.InDelta(t, 0.5, line.WeightKG, 1e-12, "amount %v", amount)
	}
}

func TestResolveLineItemsReport(t *testing.T) {
	table := NewFallbackTable(fallbackRows())
	items := domain.ParseLineItems([]domain.Row{
		{"order_id": "T1", "brand_name": "Acme", "category": "Snacks", "measurement_value": 1, "unit_count": 12, "product_amount": 5},
		{"order_id": "T1", "category": "Dairy", "product_amount": 2},
		{"order_id": "T2", "category": "Furniture"},
		{"category": "Drinks"},
	})

	report := ResolveLineItems(items, table)

	require.Len(t, report.Lines, 4)
	assert.Equal(t, 3, report.Matched)
	require.Len(t, report.Unmatched, 1)
	assert.Equal(t, "T2", report.Unmatched[0].OrderKey)
	assert.Equal(t, map[domain.Confidence]int{
		domain.ConfidenceExact:           1,
		domain.ConfidenceCategoryAverage: 2,
		domain.ConfidenceNone:            1,
	}, report.Confidence)

	// 0.06 + 0.08 + 0 + 0.03
	assert.InDelta(t, 0.17, report.TotalCBM, 1e-9)
	// 0.75 + 1.0 + 0 + 0.4
	assert.InDelta(t, 2.15, report.TotalWeightKG, 1e-9)
	assert.Equal(t, 2, report.UniqueOrders)
	assert.InDelta(t, 0.085, report.AvgCBMPerOrder, 1e-9)
	assert.InDelta(t, 1.075, report.AvgWeightPerOrder, 1e-9)
}

func TestResolveLineItemsEmpty(t *testing.T) {
	report := ResolveLineItems(nil, NewFallbackTable(nil))
	assert.Empty(t, report.Lines)
	assert.Empty(t, report.Unmatched)
	assert.Zero(t, report.UniqueOrders)
	assert.Zero(t, report.AvgCBMPerOrder)
}
