package dto

import "trip-assignment-service/internal/domain"

// AssignmentRequest carries the planning parameters. Sheets left out are
// read from the configured sheet source.
type AssignmentRequest struct {
	VehicleType string       `json:"vehicle_type"`
	TruckCount  int          `json:"truck_count"`
	Suppliers   []string     `json:"suppliers"`
	Tasks       []domain.Row `json:"tasks"`
	LineItems   []domain.Row `json:"line_items"`
	Fallback    []domain.Row `json:"fallback"`
}

type CapacityResponse struct {
	DimensionMax float64 `json:"dimension_max"`
	WeightMax    float64 `json:"weight_max"`
}

type TripStopResponse struct {
	OrderID    string  `json:"order_id"`
	Latitude   float64 `json:"customer_latitude"`
	Longitude  float64 `json:"customer_longitude"`
	Dimension  float64 `json:"dimension"`
	Weight     float64 `json:"weight"`
	DistanceKm float64 `json:"distance_km"`
}

type TripResponse struct {
	TripID          string             `json:"trip_id"`
	Supplier        string             `json:"supplier"`
	Cluster         string             `json:"cluster"`
	OrderIDs        []string           `json:"order_ids"`
	TotalDimension  float64            `json:"total_dimension"`
	TotalWeight     float64            `json:"total_weight"`
	TotalDistanceKm float64            `json:"total_distance_km"`
	CentroidLat     float64            `json:"centroid_lat"`
	CentroidLon     float64            `json:"centroid_lon"`
	Stops           []TripStopResponse `json:"stops"`
}

type AssignmentResponse struct {
	RunID      string             `json:"run_id"`
	Vehicle    domain.VehicleType `json:"vehicle"`
	Capacity   CapacityResponse   `json:"capacity"`
	Resolution ResolutionSummary  `json:"resolution"`
	Orders     []domain.Row       `json:"orders"`
	Trips      []TripResponse     `json:"trips"`
	Warnings   []string           `json:"warnings"`
}

func NewTripResponse(t *domain.Trip) TripResponse {
	stops := make([]TripStopResponse, 0, len(t.Stops))
	for _, s := range t.Stops {
		stops = append(stops, TripStopResponse{
			OrderID:    s.OrderID,
			Latitude:   s.Customer.Lat,
			Longitude:  s.Customer.Lon,
			Dimension:  s.Dimension,
			Weight:     s.Weight,
			DistanceKm: s.DistanceKm,
		})
	}
	return TripResponse{
		TripID:          t.TripID,
		Supplier:        t.Supplier,
		Cluster:         t.Cluster,
		OrderIDs:        t.OrderIDs(),
		TotalDimension:  t.TotalDimension,
		TotalWeight:     t.TotalWeight,
		TotalDistanceKm: t.TotalDistance,
		CentroidLat:     t.Centroid.Lat,
		CentroidLon:     t.Centroid.Lon,
		Stops:           stops,
	}
}
