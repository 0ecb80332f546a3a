package dto

import (
	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/services"
)

type SummaryRequest struct {
	// Orders are assigned order rows as returned by /assignments.
	Orders  []domain.Row `json:"orders"`
	GroupBy string       `json:"group_by"`
}

type SummaryResponse struct {
	GroupBy string                `json:"group_by"`
	Rows    []services.SummaryRow `json:"rows"`
	Total   services.SummaryRow   `json:"total"`
}
