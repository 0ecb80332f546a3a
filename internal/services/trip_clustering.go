package services

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/geo"
)

// TripAssignment is the outcome of one planning run.
type TripAssignment struct {
	// Orders mirrors the input order list; TripID is empty for orders that
	// were not planned.
	Orders []domain.AssignedOrder
	// Trips are the final trips in formation order.
	Trips    []*domain.Trip
	Warnings []string
}

// OrderTrips maps each planned order id to its trip id.
func (a *TripAssignment) OrderTrips() map[string]string {
	out := make(map[string]string, len(a.Orders))
	for _, o := range a.Orders {
		if o.TripID == "" {
			continue
		}
		out[o.ID] = o.TripID
	}
	return out
}

// tripGroup is the planning scope: one supplier within one cluster.
type tripGroup struct {
	supplier string
	cluster  string
	stops    []domain.TripStop
}

type tripPlanner struct {
	capacity   domain.Capacity
	mergeLimit domain.Capacity
	policy     domain.PlanningPolicy

	seq      int
	warnings []string
}

// AssignTrips groups orders into vehicle trips.
//
// Orders are planned per supplier key and cluster. Within each group, orders
// farther than the far-away threshold from their supplier form trips before
// the close ones. Formed trips are then merged with their nearest compatible
// neighbour, first among all under-capacity trips and then once more for the
// small leftovers. Trips never mix suppliers.
//
// suppliers restricts planning to the listed supplier keys or names; a name
// selects every order of its supplier key. An empty list plans every order. Orders above capacity on their own still get a
// single-order trip.
func AssignTrips(
	orders []domain.Order,
	capacity domain.Capacity,
	suppliers []string,
	policy domain.PlanningPolicy,
) (*TripAssignment, error) {
	if err := capacity.Validate(); err != nil {
		return nil, fmt.Errorf("assign trips: %w: %w", ErrInvalidCapacity, err)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("assign trips: %w: %w", ErrInvalidPolicy, err)
	}

	p := &tripPlanner{
		capacity: capacity,
		mergeLimit: domain.Capacity{
			DimensionMax: capacity.DimensionMax + policy.MergeSlack,
			WeightMax:    capacity.WeightMax,
		},
		policy: policy,
	}

	groups := p.partition(orders, newSupplierFilter(orders, suppliers))

	var formed []*domain.Trip
	for _, g := range groups {
		far, near := p.splitByDistance(g.stops)
		formed = append(formed, p.formTrips(g.supplier, g.cluster, far)...)
		formed = append(formed, p.formTrips(g.supplier, g.cluster, near)...)
	}
	log.Printf("[TRIPS] phase=formation groups=%d trips=%d", len(groups), len(formed))

	trips := p.primaryMerge(formed)
	log.Printf("[TRIPS] phase=primary_merge trips=%d", len(trips))

	trips = p.secondaryMerge(trips)
	log.Printf("[TRIPS] phase=secondary_merge trips=%d", len(trips))

	trips = mergeAcrossSuppliers(trips)

	slices.SortFunc(trips, func(a, b *domain.Trip) int { return a.Seq - b.Seq })

	byPosition := make(map[int]string, len(orders))
	for _, t := range trips {
		t.State = domain.TripFinal
		for _, s := range t.Stops {
			byPosition[s.Position] = t.TripID
		}
	}

	out := &TripAssignment{
		Orders:   make([]domain.AssignedOrder, 0, len(orders)),
		Trips:    trips,
		Warnings: p.warnings,
	}
	for i, o := range orders {
		out.Orders = append(out.Orders, domain.AssignedOrder{Order: o, TripID: byPosition[i]})
	}
	return out, nil
}

// supplierFilter holds the supplier keys selected for planning. A nil
// filter selects every supplier.
type supplierFilter map[string]struct{}

// newSupplierFilter resolves the allow-list to supplier keys. A listed
// display name selects its whole supplier key, so every alias of that
// supplier is planned together.
func newSupplierFilter(orders []domain.Order, suppliers []string) supplierFilter {
	wanted := make(map[string]struct{}, len(suppliers))
	for _, s := range suppliers {
		if s = strings.TrimSpace(s); s != "" {
			wanted[s] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	f := make(supplierFilter)
	for _, o := range orders {
		if o.SupplierKey == "" {
			continue
		}
		_, byKey := wanted[o.SupplierKey]
		_, byName := wanted[o.SupplierName]
		if byKey || byName {
			f[o.SupplierKey] = struct{}{}
		}
	}
	return f
}

func (f supplierFilter) allows(supplierKey string) bool {
	if f == nil {
		return true
	}
	_, ok := f[supplierKey]
	return ok
}

// partition turns orders into planning groups in first-seen order. Each
// supplier key's location is taken from the first order that carries it.
func (p *tripPlanner) partition(orders []domain.Order, filter supplierFilter) []*tripGroup {
	supplierAt := make(map[string]domain.Coordinates)
	for _, o := range orders {
		if _, ok := supplierAt[o.SupplierKey]; !ok {
			supplierAt[o.SupplierKey] = o.Supplier
		}
	}

	type groupKey struct{ supplier, cluster string }
	index := make(map[groupKey]*tripGroup)
	var groups []*tripGroup

	for i, o := range orders {
		if !filter.allows(o.SupplierKey) {
			continue
		}
		if o.SupplierKey == "" {
			p.warnf("order %q has no supplier key and was not planned", o.ID)
			continue
		}

		k := groupKey{o.SupplierKey, o.Cluster}
		g, ok := index[k]
		if !ok {
			g = &tripGroup{supplier: o.SupplierKey, cluster: o.Cluster}
			index[k] = g
			groups = append(groups, g)
		}
		g.stops = append(g.stops, p.stopFor(i, o, supplierAt[o.SupplierKey]))
	}
	return groups
}

func (p *tripPlanner) stopFor(position int, o domain.Order, supplier domain.Coordinates) domain.TripStop {
	dim := o.Dimension
	if dim <= 0 {
		dim = p.policy.DefaultDimension
	}
	weight := o.WeightKG
	if weight <= 0 {
		weight = p.policy.DefaultWeight
	}
	return domain.TripStop{
		Position:   position,
		OrderID:    o.ID,
		Customer:   o.Customer,
		Dimension:  dim,
		Weight:     weight,
		DistanceKm: geo.Distance(supplier, o.Customer),
	}
}

func (p *tripPlanner) splitByDistance(stops []domain.TripStop) (far, near []domain.TripStop) {
	for _, s := range stops {
		if s.DistanceKm > p.policy.FarAwayThresholdKm {
			far = append(far, s)
		} else {
			near = append(near, s)
		}
	}
	return far, near
}

// formTrips packs one band first-fit: the head of the queue seeds a trip and
// every later order that still fits joins it. Orders left over seed the
// next trip, keeping their relative order.
func (p *tripPlanner) formTrips(supplier, cluster string, queue []domain.TripStop) []*domain.Trip {
	var trips []*domain.Trip
	for len(queue) > 0 {
		p.seq++
		trip := domain.NewTrip(p.seq, supplier, cluster, queue[0])

		remaining := make([]domain.TripStop, 0, len(queue)-1)
		for _, s := range queue[1:] {
			if s.DistanceKm < p.policy.MaxTripDistanceKm &&
				p.capacity.Fits(trip.TotalDimension+s.Dimension, trip.TotalWeight+s.Weight) {
				trip.Add(s)
				continue
			}
			remaining = append(remaining, s)
		}
		queue = remaining

		if trip.TotalDimension < p.capacity.DimensionMax {
			trip.State = domain.TripMergeCandidate
		} else {
			trip.State = domain.TripFinal
		}
		trips = append(trips, trip)
	}
	return trips
}

func (p *tripPlanner) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[TRIPS] warning=%q", msg)
	p.warnings = append(p.warnings, msg)
}
