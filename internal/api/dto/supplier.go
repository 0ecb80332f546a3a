package dto

import (
	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/services"
)

type ListSuppliersResponse struct {
	Suppliers []services.SupplierInfo `json:"suppliers"`
}

type ListVehiclesResponse struct {
	Default  string               `json:"default"`
	Vehicles []domain.VehicleType `json:"vehicles"`
}
