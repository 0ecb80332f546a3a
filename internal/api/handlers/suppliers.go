package handlers

import (
	"net/http"

	"trip-assignment-service/internal/api/dto"
	"trip-assignment-service/internal/services"
)

// Suppliers lists the supplier keys of the tasks sheet for the supplier picker.
func (h *AssignmentHandler) Suppliers(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	suppliers, err := h.Service.ListSuppliers(r.Context())
	if err != nil {
		writeServiceError(w, r, "list suppliers", err)
		return
	}

	res := dto.ListSuppliersResponse{Suppliers: suppliers}
	if res.Suppliers == nil {
		res.Suppliers = []services.SupplierInfo{}
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *AssignmentHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListVehiclesResponse{
		Default:  h.Service.DefaultVehicle,
		Vehicles: h.Service.Vehicles,
	})
}
