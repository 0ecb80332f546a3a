package domain

import (
	"fmt"
	"strings"
)

// Capacity is the volume (CBM) and weight (kg) one dispatch can carry.
type Capacity struct {
	DimensionMax float64
	WeightMax    float64
}

func (c Capacity) Validate() error {
	if c.DimensionMax <= 0 {
		return fmt.Errorf("capacity: dimension max must be positive, got %v", c.DimensionMax)
	}
	if c.WeightMax <= 0 {
		return fmt.Errorf("capacity: weight max must be positive, got %v", c.WeightMax)
	}
	return nil
}

// Fits reports whether a load of the given volume and weight is within c.
func (c Capacity) Fits(dimension, weight float64) bool {
	return dimension <= c.DimensionMax && weight <= c.WeightMax
}

// VehicleType is one entry of the fleet catalog.
type VehicleType struct {
	Name         string  `toml:"name" json:"name"`
	Label        string  `toml:"label" json:"label"`
	DimensionMax float64 `toml:"dimension_max" json:"dimension_max"`
	WeightMax    float64 `toml:"weight_max" json:"weight_max"`
}

// Capacity scales the vehicle limits by the number of trucks of this type
// dispatched together.
func (v VehicleType) Capacity(truckCount int) (Capacity, error) {
	if truckCount < 1 {
		return Capacity{}, fmt.Errorf("vehicle %q: truck count must be at least 1, got %d", v.Name, truckCount)
	}
	c := Capacity{
		DimensionMax: v.DimensionMax * float64(truckCount),
		WeightMax:    v.WeightMax * float64(truckCount),
	}
	if err := c.Validate(); err != nil {
		return Capacity{}, fmt.Errorf("vehicle %q: %w", v.Name, err)
	}
	return c, nil
}

const DefaultVehicleName = "dababa"

func DefaultVehicleTypes() []VehicleType {
	return []VehicleType{
		{Name: "jumbo", Label: "Jumbo", DimensionMax: 13.6, WeightMax: 6000},
		{Name: "dababa", Label: "Dababa", DimensionMax: 4.9, WeightMax: 1800},
		{Name: "suzuki", Label: "Suzuki", DimensionMax: 2.5, WeightMax: 800},
	}
}

// FindVehicleType looks a vehicle up by name, ignoring case and surrounding
// whitespace.
func FindVehicleType(types []VehicleType, name string) (VehicleType, bool) {
	name = strings.TrimSpace(name)
	for _, v := range types {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return VehicleType{}, false
}
