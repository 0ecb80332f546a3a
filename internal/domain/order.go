package domain

// Task is one order row of the tasks sheet, normalised from a Row.
type Task struct {
	ID string
	// SupplierKey groups orders for planning: sup_place_id, or supplier_name
	// when no place id is present. Several supplier_name values may share it.
	SupplierKey  string
	SupplierName string
	Cluster      string
	CustomerArea string
	RetailerKey  string
	Customer     Coordinates
	Supplier     Coordinates

	Row Row
}

func ParseTask(row Row) Task {
	return Task{
		ID:           row.FirstText(ColID, ColTaskID),
		SupplierKey:  row.FirstText(ColSupPlaceID, ColSupplierName),
		SupplierName: row.Text(ColSupplierName),
		Cluster:      row.Text(ColCluster),
		CustomerArea: row.Text(ColCustomerArea),
		RetailerKey:  row.FirstText(ColRetailerID, ColRetailerName),
		Customer: Coordinates{
			Lat: row.Number(ColCustomerLatitude, 0),
			Lon: row.Number(ColCustomerLongitude, 0),
		},
		Supplier: Coordinates{
			Lat: row.Number(ColSupplierLatitude, 0),
			Lon: row.Number(ColSupplierLongitude, 0),
		},
		Row: row,
	}
}

func ParseTasks(rows []Row) []Task {
	tasks := make([]Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, ParseTask(r))
	}
	return tasks
}

// Order is a Task with its line items rolled up.
type Order struct {
	Task
	Dimension float64
	WeightKG  float64
	GMV       float64
}

// ParseOrder reads an already aggregated order row, e.g. one posted back by
// a client for summaries.
func ParseOrder(row Row) Order {
	return Order{
		Task:      ParseTask(row),
		Dimension: row.Number(ColOrderDimension, 0),
		WeightKG:  row.Number(ColOrderWeight, 0),
		GMV:       row.Number(ColOrderGMV, 0),
	}
}

func ParseOrders(rows []Row) []Order {
	orders := make([]Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, ParseOrder(r))
	}
	return orders
}

// AnnotatedRow returns a copy of the task row with order_dimension,
// "Total Order Weight / KG" and order_gmv set.
func (o Order) AnnotatedRow() Row {
	out := o.Row.Clone()
	out[ColOrderDimension] = o.Dimension
	out[ColOrderWeight] = o.WeightKG
	out[ColOrderGMV] = o.GMV
	return out
}

// AssignedOrder is an Order with its trip. TripID is empty when the order
// was not planned (e.g. its supplier was not selected).
type AssignedOrder struct {
	Order
	TripID string
}

func ParseAssignedOrder(row Row) AssignedOrder {
	return AssignedOrder{Order: ParseOrder(row), TripID: row.Text(ColTripID)}
}

func ParseAssignedOrders(rows []Row) []AssignedOrder {
	out := make([]AssignedOrder, 0, len(rows))
	for _, r := range rows {
		out = append(out, ParseAssignedOrder(r))
	}
	return out
}

func (a AssignedOrder) AnnotatedRow() Row {
	out := a.Order.AnnotatedRow()
	out[ColTripID] = a.TripID
	return out
}
