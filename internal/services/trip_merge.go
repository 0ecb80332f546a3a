package services

import (
	"math"
	"slices"

	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/geo"
)

// primaryMerge repeatedly merges the head of the under-capacity queue with
// its nearest compatible partner. A merged trip that is still under capacity
// goes back on the queue.
func (p *tripPlanner) primaryMerge(trips []*domain.Trip) []*domain.Trip {
	var queue, final []*domain.Trip
	for _, t := range trips {
		if t.TotalDimension < p.capacity.DimensionMax {
			t.State = domain.TripMergeCandidate
			queue = append(queue, t)
		} else {
			t.State = domain.TripFinal
			final = append(final, t)
		}
	}

	for iter := 0; len(queue) > 0; iter++ {
		if iter >= p.policy.MergeIterationCap {
			p.warnf("primary merge stopped after %d iterations; %d trips left unmerged", iter, len(queue))
			final = append(final, finalize(queue)...)
			break
		}

		current := queue[0]
		queue = queue[1:]

		best := p.nearestPartner(current, queue)
		if best < 0 {
			current.State = domain.TripFinal
			final = append(final, current)
			continue
		}

		current.Absorb(queue[best])
		queue = slices.Delete(queue, best, best+1)

		if current.TotalDimension < p.capacity.DimensionMax {
			queue = append(queue, current)
		} else {
			current.State = domain.TripFinal
			final = append(final, current)
		}
	}
	return final
}

// secondaryMerge gives trips below the second merge threshold one more
// chance to join any trip of their scope, including finalized ones.
func (p *tripPlanner) secondaryMerge(trips []*domain.Trip) []*domain.Trip {
	var small, pool []*domain.Trip
	for _, t := range trips {
		if t.TotalDimension < p.policy.SecondMergeThreshold {
			small = append(small, t)
		} else {
			pool = append(pool, t)
		}
	}

	for iter := 0; len(small) > 0; iter++ {
		if iter >= p.policy.MergeIterationCap {
			p.warnf("secondary merge stopped after %d iterations; %d trips left unmerged", iter, len(small))
			pool = append(pool, finalize(small)...)
			break
		}

		current := small[0]
		small = small[1:]

		best := p.nearestPartner(current, pool)
		if best < 0 {
			pool = append(pool, current)
			continue
		}
		current.Absorb(pool[best])
		pool[best] = current
	}
	return finalize(pool)
}

// mergeAcrossSuppliers is the cross-supplier consolidation step. Trips of
// different suppliers are never combined, so it returns trips unchanged.
func mergeAcrossSuppliers(trips []*domain.Trip) []*domain.Trip {
	return trips
}

// nearestPartner returns the index of the candidate closest to current that
// it may merge with, or -1. Ties keep the first candidate.
func (p *tripPlanner) nearestPartner(current *domain.Trip, candidates []*domain.Trip) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range candidates {
		if !current.SameScope(c) || !current.CanAbsorb(c, p.mergeLimit) {
			continue
		}
		d := geo.Distance(current.Centroid, c.Centroid)
		if d >= p.policy.MaxCustomerDistanceKm {
			continue
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func finalize(trips []*domain.Trip) []*domain.Trip {
	for _, t := range trips {
		t.State = domain.TripFinal
	}
	return trips
}
