package domain

import (
	"maps"
	"strings"

	"trip-assignment-service/internal/platform/num"
)

// Row is one record of a tabular sheet, keyed by column header.
// Values are whatever the source produced: strings from workbooks,
// float64/json.Number from JSON, text from the sheet tables.
type Row map[string]any

// Column names recognised in runsheet, task and output rows.
const (
	ColOrderID          = "order_id"
	ColTaskID           = "task_id"
	ColBrandName        = "brand_name"
	ColCategory         = "category"
	ColMeasurementValue = "measurement_value"
	ColUnitCount        = "unit_count"
	ColProductAmount    = "product_amount"
	ColProductPrice     = "product_price"
	ColProductGMV       = "product_gmv"
	ColSupplierName     = "supplier_name"
	ColCustomerArea     = "customer_area"

	ColCBMConfidence    = "cbm_confidence"
	ColCalculatedCBM    = "calculated_cbm"
	ColCalculatedWeight = "calculated_weight"

	ColID                = "id"
	ColSupPlaceID        = "sup_place_id"
	ColCluster           = "cluster"
	ColCustomerLatitude  = "customer_latitude"
	ColCustomerLongitude = "customer_longitude"
	ColSupplierLatitude  = "supplier_latitude"
	ColSupplierLongitude = "supplier_longitude"
	ColRetailerID        = "retailer_id"
	ColRetailerName      = "retailer_name"

	ColOrderDimension = "order_dimension"
	ColOrderWeight    = "Total Order Weight / KG"
	ColOrderGMV       = "order_gmv"
	ColTripID         = "Trip_ID"
)

// Get returns the value stored under key, trying the key as written, then its
// lower-case and upper-case forms. Missing and nil values both yield nil.
func (r Row) Get(key string) any {
	for _, k := range [...]string{key, strings.ToLower(key), strings.ToUpper(key)} {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Text returns the trimmed string form of the value under key.
func (r Row) Text(key string) string {
	return num.FormatKey(r.Get(key))
}

// FirstText returns the first non-empty Text among keys.
func (r Row) FirstText(keys ...string) string {
	for _, k := range keys {
		if s := r.Text(k); s != "" {
			return s
		}
	}
	return ""
}

// Number returns the value under key parsed with num.SafeNumber.
func (r Row) Number(key string, def float64) float64 {
	return num.SafeNumber(r.Get(key), def)
}

// Clone returns a shallow copy so derived columns never leak into the
// caller's row.
func (r Row) Clone() Row {
	if r == nil {
		return Row{}
	}
	return maps.Clone(r)
}
