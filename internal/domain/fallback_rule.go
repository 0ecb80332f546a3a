package domain

import "trip-assignment-service/internal/platform/num"

// Fallback table column names. Each tier lives in its own column block of
// the reference sheet, so one row can carry up to three independent rules.
const (
	FallbackBrand     = "BRAND_NAME"
	FallbackCategory  = "CATEGORY"
	FallbackMeasure   = "measure"
	FallbackUnitCount = "unit count"
	FallbackCBM       = "CBM"
	FallbackWeight    = "Weight"

	FallbackCategoryMid  = "CATEGORY_mid"
	FallbackMeasureMid   = "measure_mid"
	FallbackUnitCountMid = "unit_count_mid"
	FallbackCBMMid       = "CBM_mid"
	FallbackWeightMid    = "Weight_mid"

	FallbackCategoryAvg = "CATEGORY_AVG"
	FallbackCBMAvg      = "CBM_AVG"
	FallbackWeightAvg   = "Weight_AVG"
)

// RuleTier is one tier's key and values within a fallback row.
type RuleTier struct {
	Brand     string
	Category  string
	Measure   float64
	UnitCount float64
	// HasMeasure/HasUnitCount are false when the rule cell did not parse;
	// such a tier can never match on that field.
	HasMeasure   bool
	HasUnitCount bool

	// CBM per unit and weight per unit in grams. Unparseable cells are 0.
	CBM    float64
	Weight float64
}

// Present reports whether the tier has a category key at all. Blank cells
// below a shorter tier block are not rules.
func (t RuleTier) Present() bool { return t.Category != "" }

// FallbackRule is one row of the fallback reference table.
type FallbackRule struct {
	Exact RuleTier
	Mid   RuleTier
	Avg   RuleTier
	Row   Row
}

func ParseFallbackRule(row Row) FallbackRule {
	exactMeasure, hasExactMeasure := num.Parse(row.Get(FallbackMeasure))
	exactUnits, hasExactUnits := num.Parse(row.Get(FallbackUnitCount))
	midMeasure, hasMidMeasure := num.Parse(row.Get(FallbackMeasureMid))
	midUnits, hasMidUnits := num.Parse(row.Get(FallbackUnitCountMid))

	return FallbackRule{
		Exact: RuleTier{
			Brand:        row.Text(FallbackBrand),
			Category:     row.Text(FallbackCategory),
			Measure:      exactMeasure,
			UnitCount:    exactUnits,
			HasMeasure:   hasExactMeasure,
			HasUnitCount: hasExactUnits,
			CBM:          decimalComma(row.Get(FallbackCBM)),
			Weight:       decimalComma(row.Get(FallbackWeight)),
		},
		Mid: RuleTier{
			Category:     row.Text(FallbackCategoryMid),
			Measure:      midMeasure,
			UnitCount:    midUnits,
			HasMeasure:   hasMidMeasure,
			HasUnitCount: hasMidUnits,
			CBM:          decimalComma(row.Get(FallbackCBMMid)),
			Weight:       decimalComma(row.Get(FallbackWeightMid)),
		},
		Avg: RuleTier{
			Category: row.Text(FallbackCategoryAvg),
			CBM:      decimalComma(row.Get(FallbackCBMAvg)),
			Weight:   decimalComma(row.Get(FallbackWeightAvg)),
		},
		Row: row,
	}
}

func decimalComma(v any) float64 {
	f, _ := num.DecimalComma(v)
	return f
}
