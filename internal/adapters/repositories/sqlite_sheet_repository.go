package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-assignment-service/internal/domain"
)

// SQLite-backed implementation of the SheetSource port.
type SqliteSheetRepository struct{ DB *sql.DB }

func NewSqliteSheetRepository(db *sql.DB) *SqliteSheetRepository {
	return &SqliteSheetRepository{DB: db}
}

// Return all rows stored for a sheet, in seeded order.
func (s *SqliteSheetRepository) ListRows(ctx context.Context, sheet string) ([]domain.Row, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite sheet repository: DB is nil")
	}

	query := `
	SELECT data
	FROM sheet_rows
	WHERE sheet = ?
	ORDER BY row_index;
	`
	rows, err := s.DB.QueryContext(ctx, query, sheet)
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
