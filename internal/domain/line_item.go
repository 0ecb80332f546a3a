package domain

import "trip-assignment-service/internal/platform/num"

// LineItem is one product line of a runsheet, normalised from a Row.
type LineItem struct {
	OrderKey         string
	BrandName        string
	Category         string
	MeasurementValue float64
	UnitCount        float64
	// Quantity is product_amount when positive, otherwise 1.
	Quantity     float64
	SupplierName string
	CustomerArea string

	amount float64
	price  float64
	gmv    float64

	Row Row
}

func ParseLineItem(row Row) LineItem {
	return LineItem{
		OrderKey:         row.FirstText(ColOrderID, ColTaskID),
		BrandName:        row.Text(ColBrandName),
		Category:         row.Text(ColCategory),
		MeasurementValue: row.Number(ColMeasurementValue, 0),
		UnitCount:        row.Number(ColUnitCount, 0),
		Quantity:         num.Positive(row.Get(ColProductAmount), 1),
		SupplierName:     row.Text(ColSupplierName),
		CustomerArea:     row.Text(ColCustomerArea),
		amount:           row.Number(ColProductAmount, 0),
		price:            row.Number(ColProductPrice, 0),
		gmv:              row.Number(ColProductGMV, 0),
		Row:              row,
	}
}

func ParseLineItems(rows []Row) []LineItem {
	items := make([]LineItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ParseLineItem(r))
	}
	return items
}

// GMV is product_amount x product_price when both are set, else product_gmv.
func (l LineItem) GMV() float64 {
	if l.amount != 0 && l.price != 0 {
		return l.amount * l.price
	}
	return l.gmv
}

// Confidence scores which fallback tier produced a CBM/weight estimate.
type Confidence int

const (
	ConfidenceNone            Confidence = 0
	ConfidenceCategoryAverage Confidence = 70
	ConfidenceCategory        Confidence = 90
	ConfidenceExact           Confidence = 100
)

// ResolvedLineItem is a LineItem annotated with its estimated volume and weight.
type ResolvedLineItem struct {
	LineItem
	Confidence Confidence
	// CBM and WeightKG are already scaled by Quantity.
	CBM      float64
	WeightKG float64
}

// AnnotatedRow returns a copy of the source row with cbm_confidence,
// calculated_cbm and calculated_weight set.
func (r ResolvedLineItem) AnnotatedRow() Row {
	out := r.Row.Clone()
	out[ColCBMConfidence] = int(r.Confidence)
	out[ColCalculatedCBM] = r.CBM
	out[ColCalculatedWeight] = r.WeightKG
	return out
}

// Matched reports whether any fallback tier matched.
func (r ResolvedLineItem) Matched() bool { return r.Confidence > ConfidenceNone }
