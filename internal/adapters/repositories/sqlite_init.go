package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trip-assignment-service/internal/domain"
)

// Dialect selects the placeholder style of the target database.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Initialize the sheet_rows schema. The DDL is valid for SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSheetRowsQuery := `
	CREATE TABLE IF NOT EXISTS sheet_rows (
		sheet TEXT NOT NULL,
		row_index INTEGER NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (sheet, row_index)
	);
	`

	statements := []string{
		createSheetRowsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace all stored rows of one sheet. Row order becomes row_index.
func SeedRows(ctx context.Context, db *sql.DB, dialect Dialect, sheet string, rows []domain.Row) error {
	if db == nil {
		return errors.New("seed rows: DB is nil")
	}

	sheet = strings.TrimSpace(sheet)
	if sheet == "" {
		return errors.New("seed rows: sheet name cannot be empty")
	}

	encoded := make([]string, 0, len(rows))
	for i, r := range rows {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("seed rows: sheet=%q encode row %d: %w", sheet, i+1, err)
		}
		encoded = append(encoded, string(b))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed rows: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery := fmt.Sprintf(`DELETE FROM sheet_rows WHERE sheet = %s;`, dialect.placeholder(1))
	if _, err := tx.ExecContext(ctx, deleteQuery, sheet); err != nil {
		return fmt.Errorf("seed rows: clear sheet=%q: %w", sheet, err)
	}

	insertQuery := fmt.Sprintf(`
	INSERT INTO sheet_rows (
		sheet,
		row_index,
		data
	)
	VALUES (%s, %s, %s);
	`, dialect.placeholder(1), dialect.placeholder(2), dialect.placeholder(3))
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("seed rows: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, data := range encoded {
		if _, err := stmt.ExecContext(ctx, sheet, i, data); err != nil {
			return fmt.Errorf("seed rows: insert sheet=%q row_index=%d: %w", sheet, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed rows: commit tx: %w", err)
	}

	return nil
}

// decodeRow reads a stored row, keeping numbers as json.Number so long ids
// survive unchanged.
func decodeRow(data string) (domain.Row, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()

	row := domain.Row{}
	if err := dec.Decode(&row); err != nil {
		return nil, err
	}
	return row, nil
}

// scanRows reads (data) rows produced by a sheet_rows query.
func scanRows(rows *sql.Rows) ([]domain.Row, error) {
	out := make([]domain.Row, 0, 64)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row, err := decodeRow(data)
		if err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return out, nil
}
