package services

import "trip-assignment-service/internal/domain"

// AggregateOrders rolls resolved line items up into one Order per task.
//
// Lines join tasks on their trimmed string keys, so a numeric id in one sheet
// still matches a text id in the other. Tasks without lines get zero totals;
// lines without a task are ignored.
func AggregateOrders(tasks []domain.Task, lines []domain.ResolvedLineItem) []domain.Order {
	byOrder := make(map[string][]domain.ResolvedLineItem)
	for _, l := range lines {
		if l.OrderKey == "" {
			continue
		}
		byOrder[l.OrderKey] = append(byOrder[l.OrderKey], l)
	}

	orders := make([]domain.Order, 0, len(tasks))
	for _, t := range tasks {
		o := domain.Order{Task: t}
		for _, l := range byOrder[t.ID] {
			o.Dimension += l.CBM
			o.WeightKG += l.WeightKG
			o.GMV += l.GMV()
		}
		orders = append(orders, o)
	}
	return orders
}
