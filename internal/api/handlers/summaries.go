package handlers

import (
	"net/http"

	"trip-assignment-service/internal/api/dto"
	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/services"
)

// Summaries groups posted assigned orders by order, supplier, area or trip.
func Summaries(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SummaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	groupBy, err := services.ParseGroupBy(req.GroupBy)
	if err != nil {
		writeServiceError(w, r, "summarize", err)
		return
	}

	orders := domain.ParseAssignedOrders(req.Orders)
	rows, err := services.Summarize(orders, groupBy)
	if err != nil {
		writeServiceError(w, r, "summarize", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SummaryResponse{
		GroupBy: string(groupBy),
		Rows:    rows,
		Total:   services.SummarizeTotals(orders),
	})
}
