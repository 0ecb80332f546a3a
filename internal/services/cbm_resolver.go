package services

import (
	"log"

	"trip-assignment-service/internal/domain"
)

// FallbackTable is the parsed fallback reference sheet. Row order is kept:
// the first matching rule of a tier wins.
type FallbackTable struct {
	rules []domain.FallbackRule
}

func NewFallbackTable(rows []domain.Row) *FallbackTable {
	rules := make([]domain.FallbackRule, 0, len(rows))
	for _, r := range rows {
		rules = append(rules, domain.ParseFallbackRule(r))
	}
	return &FallbackTable{rules: rules}
}

func (t *FallbackTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Resolution is the per-unit estimate for one line item. Weight is in grams.
type Resolution struct {
	Confidence domain.Confidence
	CBM        float64
	Weight     float64
}

// ResolveCbmWeight finds the per-unit volume and weight of a line item by
// walking the fallback tiers from most to least specific:
//
//	100: brand, category, measure and unit count
//	 90: category, measure and unit count (the *_mid block)
//	 70: category alone (the *_AVG block)
//	  0: no match
//
// Evaluation never fails; a rule that cannot be evaluated yields the
// no-match result.
func ResolveCbmWeight(item domain.LineItem, table *FallbackTable) (res Resolution) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("cbm resolve: order=%q category=%q recovered=%v", item.OrderKey, item.Category, r)
			res = Resolution{Confidence: domain.ConfidenceNone}
		}
	}()

	if table == nil {
		return Resolution{Confidence: domain.ConfidenceNone}
	}

	for _, rule := range table.rules {
		t := rule.Exact
		if t.Present() &&
			t.Brand == item.BrandName &&
			t.Category == item.Category &&
			t.HasMeasure && t.Measure == item.MeasurementValue &&
			t.HasUnitCount && t.UnitCount == item.UnitCount {
			return Resolution{Confidence: domain.ConfidenceExact, CBM: t.CBM, Weight: t.Weight}
		}
	}

	for _, rule := range table.rules {
		t := rule.Mid
		if t.Present() &&
			t.Category == item.Category &&
			t.HasMeasure && t.Measure == item.MeasurementValue &&
			t.HasUnitCount && t.UnitCount == item.UnitCount {
			return Resolution{Confidence: domain.ConfidenceCategory, CBM: t.CBM, Weight: t.Weight}
		}
	}

	for _, rule := range table.rules {
		t := rule.Avg
		if t.Present() && t.Category == item.Category {
			return Resolution{Confidence: domain.ConfidenceCategoryAverage, CBM: t.CBM, Weight: t.Weight}
		}
	}

	return Resolution{Confidence: domain.ConfidenceNone}
}

// ResolveLineItem applies ResolveCbmWeight and scales by quantity.
// Fallback weights are grams per unit; the result is kilograms.
func ResolveLineItem(item domain.LineItem, table *FallbackTable) domain.ResolvedLineItem {
	res := ResolveCbmWeight(item, table)
	return domain.ResolvedLineItem{
		LineItem:   item,
		Confidence: res.Confidence,
		CBM:        res.CBM * item.Quantity,
		WeightKG:   res.Weight * item.Quantity / 1000,
	}
}

// ResolutionReport is the outcome of resolving a whole runsheet.
type ResolutionReport struct {
	Lines         []domain.ResolvedLineItem
	TotalCBM      float64
	TotalWeightKG float64
	// Confidence counts lines per confidence score.
	Confidence map[domain.Confidence]int
	Matched    int
	Unmatched  []domain.ResolvedLineItem
	// UniqueOrders counts distinct non-empty order keys.
	UniqueOrders      int
	AvgCBMPerOrder    float64
	AvgWeightPerOrder float64
}

func ResolveLineItems(items []domain.LineItem, table *FallbackTable) ResolutionReport {
	report := ResolutionReport{
		Lines:      make([]domain.ResolvedLineItem, 0, len(items)),
		Confidence: make(map[domain.Confidence]int),
		Unmatched:  []domain.ResolvedLineItem{},
	}

	orders := make(map[string]struct{})
	for _, item := range items {
		line := ResolveLineItem(item, table)
		report.Lines = append(report.Lines, line)
		report.TotalCBM += line.CBM
		report.TotalWeightKG += line.WeightKG
		report.Confidence[line.Confidence]++

		if line.Matched() {
			report.Matched++
		} else {
			report.Unmatched = append(report.Unmatched, line)
		}

		if line.OrderKey != "" {
			orders[line.OrderKey] = struct{}{}
		}
	}

	report.UniqueOrders = len(orders)
	if report.UniqueOrders > 0 {
		report.AvgCBMPerOrder = report.TotalCBM / float64(report.UniqueOrders)
		report.AvgWeightPerOrder = report.TotalWeightKG / float64(report.UniqueOrders)
	}

	return report
}
