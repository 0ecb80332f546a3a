package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/platform/obs"
	"trip-assignment-service/internal/ports"
)

// AssignmentService runs the full planning pipeline: resolve line item
// volumes, roll them up per order and cluster orders into trips.
type AssignmentService struct {
	// Source supplies sheets the request does not carry inline. May be nil
	// when every request is self-contained.
	Source         ports.SheetSource
	Vehicles       []domain.VehicleType
	DefaultVehicle string
	Policy         domain.PlanningPolicy
}

func NewAssignmentService(
	source ports.SheetSource,
	vehicles []domain.VehicleType,
	defaultVehicle string,
	policy domain.PlanningPolicy,
) *AssignmentService {
	if len(vehicles) == 0 {
		vehicles = domain.DefaultVehicleTypes()
	}
	if strings.TrimSpace(defaultVehicle) == "" {
		defaultVehicle = domain.DefaultVehicleName
	}
	return &AssignmentService{
		Source:         source,
		Vehicles:       vehicles,
		DefaultVehicle: defaultVehicle,
		Policy:         policy,
	}
}

type AssignmentRequest struct {
	VehicleType string
	TruckCount  int
	// Suppliers restricts planning; empty means all suppliers.
	Suppliers []string

	// Inline sheets. A nil sheet is loaded from the service's Source.
	Tasks     []domain.Row
	LineItems []domain.Row
	Fallback  []domain.Row
}

type AssignmentResult struct {
	RunID      string
	Vehicle    domain.VehicleType
	Capacity   domain.Capacity
	Resolution ResolutionReport
	Orders     []domain.AssignedOrder
	Trips      []*domain.Trip
	Warnings   []string
}

// Capacity looks up the vehicle type and scales it by truck count.
func (s *AssignmentService) Capacity(vehicleType string, truckCount int) (domain.VehicleType, domain.Capacity, error) {
	name := strings.TrimSpace(vehicleType)
	if name == "" {
		name = s.DefaultVehicle
	}
	v, ok := domain.FindVehicleType(s.Vehicles, name)
	if !ok {
		return domain.VehicleType{}, domain.Capacity{}, fmt.Errorf("unknown vehicle type %q: %w", name, ErrInvalidCapacity)
	}
	c, err := v.Capacity(truckCount)
	if err != nil {
		return domain.VehicleType{}, domain.Capacity{}, fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}
	return v, c, nil
}

func (s *AssignmentService) Run(ctx context.Context, req AssignmentRequest) (_ *AssignmentResult, err error) {
	defer obs.Time(ctx, "assignment.Run", "vehicle", req.VehicleType, "trucks", req.TruckCount)(&err)

	vehicle, capacity, err := s.Capacity(req.VehicleType, req.TruckCount)
	if err != nil {
		return nil, fmt.Errorf("run assignment: %w", err)
	}

	sheets, err := s.loadSheets(ctx, map[string][]domain.Row{
		ports.SheetTasks:    req.Tasks,
		ports.SheetRunsheet: req.LineItems,
		ports.SheetFallback: req.Fallback,
	})
	if err != nil {
		return nil, fmt.Errorf("run assignment: %w", err)
	}

	report := ResolveLineItems(
		domain.ParseLineItems(sheets[ports.SheetRunsheet]),
		NewFallbackTable(sheets[ports.SheetFallback]),
	)
	orders := AggregateOrders(domain.ParseTasks(sheets[ports.SheetTasks]), report.Lines)

	result := &AssignmentResult{
		RunID:      uuid.NewString(),
		Vehicle:    vehicle,
		Capacity:   capacity,
		Resolution: report,
	}

	if n := len(report.Unmatched); n > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d line items matched no fallback rule", n))
	}
	for _, o := range FlagOversizeOrders(orders, capacity) {
		result.Warnings = append(result.Warnings, o.String())
	}

	assignment, err := AssignTrips(orders, capacity, req.Suppliers, s.Policy)
	if err != nil {
		return nil, fmt.Errorf("run assignment: %w", err)
	}
	result.Orders = assignment.Orders
	result.Trips = assignment.Trips
	result.Warnings = append(result.Warnings, assignment.Warnings...)

	log.Printf("req_id=%s run_id=%s vehicle=%s orders=%d trips=%d warnings=%d",
		obs.RequestID(ctx), result.RunID, vehicle.Name, len(result.Orders), len(result.Trips), len(result.Warnings))

	return result, nil
}

// ResolveCBM resolves line items against the fallback table. Either sheet is
// loaded from the source when nil.
func (s *AssignmentService) ResolveCBM(ctx context.Context, lineItems, fallback []domain.Row) (_ ResolutionReport, err error) {
	defer obs.Time(ctx, "assignment.ResolveCBM")(&err)

	sheets, err := s.loadSheets(ctx, map[string][]domain.Row{
		ports.SheetRunsheet: lineItems,
		ports.SheetFallback: fallback,
	})
	if err != nil {
		return ResolutionReport{}, fmt.Errorf("resolve cbm: %w", err)
	}

	return ResolveLineItems(
		domain.ParseLineItems(sheets[ports.SheetRunsheet]),
		NewFallbackTable(sheets[ports.SheetFallback]),
	), nil
}

// SupplierInfo is one planning supplier with the display names seen for it.
type SupplierInfo struct {
	Key    string   `json:"key"`
	Names  []string `json:"names"`
	Orders int      `json:"orders"`
}

// ListSuppliers lists supplier keys of the tasks sheet in first-seen order.
func (s *AssignmentService) ListSuppliers(ctx context.Context) (_ []SupplierInfo, err error) {
	defer obs.Time(ctx, "assignment.ListSuppliers")(&err)

	sheets, err := s.loadSheets(ctx, map[string][]domain.Row{ports.SheetTasks: nil})
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return SuppliersOf(domain.ParseTasks(sheets[ports.SheetTasks])), nil
}

func SuppliersOf(tasks []domain.Task) []SupplierInfo {
	index := make(map[string]int)
	var out []SupplierInfo
	for _, t := range tasks {
		if t.SupplierKey == "" {
			continue
		}
		i, ok := index[t.SupplierKey]
		if !ok {
			i = len(out)
			index[t.SupplierKey] = i
			out = append(out, SupplierInfo{Key: t.SupplierKey, Names: []string{}})
		}
		out[i].Orders++
		if t.SupplierName != "" && !slices.Contains(out[i].Names, t.SupplierName) {
			out[i].Names = append(out[i].Names, t.SupplierName)
		}
	}
	return out
}

// loadSheets fills every nil entry of sheets from the source, concurrently.
func (s *AssignmentService) loadSheets(ctx context.Context, sheets map[string][]domain.Row) (map[string][]domain.Row, error) {
	out := make(map[string][]domain.Row, len(sheets))
	var missing []string
	for name, rows := range sheets {
		if rows != nil {
			out[name] = rows
			continue
		}
		missing = append(missing, name)
	}
	if len(missing) == 0 {
		return out, nil
	}
	slices.Sort(missing)
	if s.Source == nil {
		return nil, fmt.Errorf("load sheets %s: no sheet source configured: %w", strings.Join(missing, ","), ErrMissingSheet)
	}

	loaded := make([][]domain.Row, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range missing {
		i, name := i, name
		g.Go(func() error {
			rows, err := s.Source.ListRows(gctx, name)
			if err != nil {
				return fmt.Errorf("load sheet %q: %w", name, err)
			}
			loaded[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range missing {
		out[name] = loaded[i]
	}
	return out, nil
}
