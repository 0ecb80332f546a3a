package dto

import (
	"strconv"

	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/services"
)

type CBMRequest struct {
	LineItems []domain.Row `json:"line_items"`
	Fallback  []domain.Row `json:"fallback"`
	// GroupBy optionally adds a per-order, per-supplier or per-area summary.
	GroupBy string `json:"group_by"`
}

// ResolutionSummary is the report without the line items themselves.
type ResolutionSummary struct {
	TotalCBM          float64        `json:"total_cbm"`
	TotalWeightKG     float64        `json:"total_weight_kg"`
	Confidence        map[string]int `json:"confidence"`
	Matched           int            `json:"matched"`
	Unmatched         int            `json:"unmatched"`
	UniqueOrders      int            `json:"unique_orders"`
	AvgCBMPerOrder    float64        `json:"avg_cbm_per_order"`
	AvgWeightPerOrder float64        `json:"avg_weight_per_order"`
}

type CBMResponse struct {
	LineItems []domain.Row              `json:"line_items"`
	Unmatched []domain.Row              `json:"unmatched"`
	Summary   ResolutionSummary         `json:"summary"`
	Groups    []services.LineSummaryRow `json:"groups,omitempty"`
}

func NewResolutionSummary(r services.ResolutionReport) ResolutionSummary {
	conf := make(map[string]int, len(r.Confidence))
	for c, n := range r.Confidence {
		conf[strconv.Itoa(int(c))] = n
	}
	return ResolutionSummary{
		TotalCBM:          r.TotalCBM,
		TotalWeightKG:     r.TotalWeightKG,
		Confidence:        conf,
		Matched:           r.Matched,
		Unmatched:         len(r.Unmatched),
		UniqueOrders:      r.UniqueOrders,
		AvgCBMPerOrder:    r.AvgCBMPerOrder,
		AvgWeightPerOrder: r.AvgWeightPerOrder,
	}
}

func NewCBMResponse(r services.ResolutionReport) CBMResponse {
	res := CBMResponse{
		LineItems: make([]domain.Row, 0, len(r.Lines)),
		Unmatched: make([]domain.Row, 0, len(r.Unmatched)),
		Summary:   NewResolutionSummary(r),
	}
	for _, l := range r.Lines {
		res.LineItems = append(res.LineItems, l.AnnotatedRow())
	}
	for _, l := range r.Unmatched {
		res.Unmatched = append(res.Unmatched, l.AnnotatedRow())
	}
	return res
}
