package domain

import "errors"

// PlanningPolicy holds the tunable thresholds of trip clustering.
// Distances are kilometers, volumes CBM, weights kg.
type PlanningPolicy struct {
	// Max supplier->customer distance for an order joining a forming trip.
	MaxTripDistanceKm float64 `toml:"max_trip_distance_km"`
	// Max centroid-to-centroid distance for two trips to merge.
	MaxCustomerDistanceKm float64 `toml:"max_customer_distance_km"`
	// Trips below this volume get a second merge pass.
	SecondMergeThreshold float64 `toml:"second_merge_threshold"`
	// Orders farther than this from their supplier are formed separately.
	FarAwayThresholdKm float64 `toml:"far_away_threshold_km"`
	// Extra volume allowed on top of DimensionMax when merging.
	MergeSlack float64 `toml:"merge_slack"`
	// Substituted for zero or missing order volume/weight.
	DefaultDimension float64 `toml:"default_dimension"`
	DefaultWeight    float64 `toml:"default_weight"`
	// Upper bound on iterations of each merge pass.
	MergeIterationCap int `toml:"merge_iteration_cap"`
}

func DefaultPlanningPolicy() PlanningPolicy {
	return PlanningPolicy{
		MaxTripDistanceKm:     60,
		MaxCustomerDistanceKm: 20,
		SecondMergeThreshold:  2.0,
		FarAwayThresholdKm:    30,
		MergeSlack:            0.1,
		DefaultDimension:      0.1,
		DefaultWeight:         0.1,
		MergeIterationCap:     1000,
	}
}

func (p PlanningPolicy) Validate() error {
	var errs []error
	if p.MaxTripDistanceKm <= 0 {
		errs = append(errs, errors.New("max_trip_distance_km must be positive"))
	}
	if p.MaxCustomerDistanceKm <= 0 {
		errs = append(errs, errors.New("max_customer_distance_km must be positive"))
	}
	if p.SecondMergeThreshold < 0 {
		errs = append(errs, errors.New("second_merge_threshold must not be negative"))
	}
	if p.FarAwayThresholdKm < 0 {
		errs = append(errs, errors.New("far_away_threshold_km must not be negative"))
	}
	if p.MergeSlack < 0 {
		errs = append(errs, errors.New("merge_slack must not be negative"))
	}
	if p.DefaultDimension <= 0 || p.DefaultWeight <= 0 {
		errs = append(errs, errors.New("default_dimension and default_weight must be positive"))
	}
	if p.MergeIterationCap < 1 {
		errs = append(errs, errors.New("merge_iteration_cap must be at least 1"))
	}
	return errors.Join(errs...)
}
