package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"trip-assignment-service/internal/api/dto"
	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AssignmentHandler exposes the planning pipeline.
type AssignmentHandler struct {
	Service *services.AssignmentService
	// Export renders assigned orders as a workbook.
	Export func(w io.Writer, orders []domain.AssignedOrder) error
}

// Assign resolves volumes, aggregates orders and plans trips in one call.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	result, ok := h.run(w, r)
	if !ok {
		return
	}

	res := dto.AssignmentResponse{
		RunID:   result.RunID,
		Vehicle: result.Vehicle,
		Capacity: dto.CapacityResponse{
			DimensionMax: result.Capacity.DimensionMax,
			WeightMax:    result.Capacity.WeightMax,
		},
		Resolution: dto.NewResolutionSummary(result.Resolution),
		Orders:     make([]domain.Row, 0, len(result.Orders)),
		Trips:      make([]dto.TripResponse, 0, len(result.Trips)),
		Warnings:   result.Warnings,
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	for _, o := range result.Orders {
		res.Orders = append(res.Orders, o.AnnotatedRow())
	}
	for _, t := range result.Trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ExportAssignment runs the same planning as Assign and returns the result as
// an .xlsx attachment.
func (h *AssignmentHandler) ExportAssignment(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	result, ok := h.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.Export(&buf, result.Orders); err != nil {
		writeServiceError(w, r, "export assignment", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="assigned-trips-%s.xlsx"`, result.RunID))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write export failed: run_id=%s err=%v", result.RunID, err)
	}
}

func (h *AssignmentHandler) run(w http.ResponseWriter, r *http.Request) (*services.AssignmentResult, bool) {
	var req dto.AssignmentRequest
	if !decodeJSON(w, r, &req) {
		return nil, false
	}

	truckCount := req.TruckCount
	if truckCount == 0 {
		truckCount = 1
	}
	if truckCount < 1 || truckCount > 20 {
		writeError(w, r, http.StatusBadRequest, "truck_count must be between 1 and 20")
		return nil, false
	}

	result, err := h.Service.Run(r.Context(), services.AssignmentRequest{
		VehicleType: strings.TrimSpace(req.VehicleType),
		TruckCount:  truckCount,
		Suppliers:   req.Suppliers,
		Tasks:       req.Tasks,
		LineItems:   req.LineItems,
		Fallback:    req.Fallback,
	})
	if err != nil {
		writeServiceError(w, r, "run assignment", err)
		return nil, false
	}
	return result, true
}

// ResolveCBM estimates volume and weight for posted line items.
func (h *AssignmentHandler) ResolveCBM(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CBMRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LineItems == nil {
		writeError(w, r, http.StatusBadRequest, "line_items is required")
		return
	}

	var groupBy services.GroupBy
	if strings.TrimSpace(req.GroupBy) != "" {
		g, err := services.ParseGroupBy(req.GroupBy)
		if err != nil {
			writeServiceError(w, r, "resolve cbm", err)
			return
		}
		groupBy = g
	}

	report, err := h.Service.ResolveCBM(r.Context(), req.LineItems, req.Fallback)
	if err != nil {
		writeServiceError(w, r, "resolve cbm", err)
		return
	}

	res := dto.NewCBMResponse(report)
	if groupBy != "" {
		groups, err := services.SummarizeLineItems(report.Lines, groupBy)
		if err != nil {
			writeServiceError(w, r, "resolve cbm", err)
			return
		}
		res.Groups = groups
	}

	writeJSON(w, r, http.StatusOK, res)
}
