package ports

import (
	"context"

	"trip-assignment-service/internal/domain"
)

// Sheet names known to every SheetSource.
const (
	SheetTasks    = "Tasks"
	SheetRunsheet = "Runsheet"
	SheetFallback = "Fallback"
)

// Port: a boundary for reading tabular input rows from a data source.
type SheetSource interface {
	// Return the rows of one sheet in their stored order. A sheet the
	// source does not have yields no rows.
	ListRows(ctx context.Context, sheet string) ([]domain.Row, error)
}
