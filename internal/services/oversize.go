package services

import (
	"fmt"

	"trip-assignment-service/internal/domain"
)

// OversizeOrder is an order that does not fit an empty vehicle.
type OversizeOrder struct {
	OrderID   string
	Dimension float64
	WeightKG  float64
}

func (o OversizeOrder) String() string {
	return fmt.Sprintf("order %q exceeds vehicle capacity (cbm=%.3f weight_kg=%.3f)", o.OrderID, o.Dimension, o.WeightKG)
}

// FlagOversizeOrders lists orders whose own volume or weight is above
// capacity. Planning still puts each of them on a trip of its own.
func FlagOversizeOrders(orders []domain.Order, capacity domain.Capacity) []OversizeOrder {
	var out []OversizeOrder
	for _, o := range orders {
		if capacity.Fits(o.Dimension, o.WeightKG) {
			continue
		}
		out = append(out, OversizeOrder{OrderID: o.ID, Dimension: o.Dimension, WeightKG: o.WeightKG})
	}
	return out
}
