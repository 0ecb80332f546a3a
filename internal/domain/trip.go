package domain

import (
	"fmt"
	"math"
)

// TripState tracks a trip through one planning run.
type TripState int

const (
	TripForming TripState = iota
	TripMergeCandidate
	TripFinal
)

func (s TripState) String() string {
	switch s {
	case TripForming:
		return "forming"
	case TripMergeCandidate:
		return "merge_candidate"
	case TripFinal:
		return "final"
	}
	return fmt.Sprintf("TripState(%d)", int(s))
}

// TripStop is one order as seen by the trip planner.
type TripStop struct {
	// Position is the order's index in the planning input.
	Position int
	OrderID  string
	Customer Coordinates
	// Dimension and Weight already have defaults substituted for zero values.
	Dimension float64
	Weight    float64
	// DistanceKm from the supplier to this customer.
	DistanceKm float64
}

// Trip accumulates orders for one vehicle dispatch during a planning run.
type Trip struct {
	TripID   string
	Seq      int
	Supplier string
	Cluster  string
	Stops    []TripStop

	TotalDimension float64
	TotalWeight    float64
	// TotalDistance is the farthest supplier->customer distance of any stop.
	TotalDistance float64
	Centroid      Coordinates
	State         TripState
}

// NewTrip opens a trip seeded with its first stop.
func NewTrip(seq int, supplier, cluster string, first TripStop) *Trip {
	t := &Trip{
		TripID:   fmt.Sprintf("%s_Trip_%d", supplier, seq),
		Seq:      seq,
		Supplier: supplier,
		Cluster:  cluster,
		State:    TripForming,
	}
	t.Add(first)
	return t
}

// Add puts one more stop on the trip. Capacity is the caller's concern.
func (t *Trip) Add(s TripStop) {
	t.Stops = append(t.Stops, s)
	t.TotalDimension += s.Dimension
	t.TotalWeight += s.Weight
	t.TotalDistance = math.Max(t.TotalDistance, s.DistanceKm)
	t.recomputeCentroid()
}

// Absorb merges other into t. t keeps its id; other must be discarded.
func (t *Trip) Absorb(other *Trip) {
	t.Stops = append(t.Stops, other.Stops...)
	t.TotalDimension += other.TotalDimension
	t.TotalWeight += other.TotalWeight
	t.TotalDistance = math.Max(t.TotalDistance, other.TotalDistance)
	t.recomputeCentroid()
}

// CanAbsorb reports whether merging other stays within the merge limits.
func (t *Trip) CanAbsorb(other *Trip, mergeLimit Capacity) bool {
	return mergeLimit.Fits(t.TotalDimension+other.TotalDimension, t.TotalWeight+other.TotalWeight)
}

// SameScope reports whether both trips serve the same supplier and cluster.
func (t *Trip) SameScope(other *Trip) bool {
	return t.Supplier == other.Supplier && t.Cluster == other.Cluster
}

// OrderIDs lists the member order ids in stop order.
func (t *Trip) OrderIDs() []string {
	ids := make([]string, 0, len(t.Stops))
	for _, s := range t.Stops {
		ids = append(ids, s.OrderID)
	}
	return ids
}

func (t *Trip) recomputeCentroid() {
	points := make([]Coordinates, 0, len(t.Stops))
	for _, s := range t.Stops {
		points = append(points, s.Customer)
	}
	t.Centroid = Centroid(points)
}
