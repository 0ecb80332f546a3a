package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-assignment-service/internal/domain"
	"trip-assignment-service/internal/platform/obs"
)

// SQLSheetRepository is a Postgres-backed SheetSource.
type SQLSheetRepository struct {
	DB *sql.DB
}

func NewSQLSheetRepository(db *sql.DB) *SQLSheetRepository {
	return &SQLSheetRepository{DB: db}
}

// Return all rows stored for a sheet, in seeded order.
func (s *SQLSheetRepository) ListRows(ctx context.Context, sheet string) (_ []domain.Row, err error) {
	defer obs.Time(ctx, "sheets.ListRows", "sheet", sheet)(&err)

	if s.DB == nil {
		return nil, errors.New("sheet repository: db is nil")
	}

	q := `
	SELECT data
	FROM sheet_rows
	WHERE sheet = $1
	ORDER BY row_index;
	`

	rows, err := s.DB.QueryContext(ctx, q, sheet)
	if err != nil {
		return nil, fmt.Errorf("list rows sheet=%q: query sheet_rows table: %w", sheet, err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("list rows sheet=%q: %w", sheet, err)
	}
	return out, nil
}
