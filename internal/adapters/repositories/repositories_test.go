package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"trip-assignment-service/internal/domain"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, InitSchema(db))
	return db
}

func TestSqliteSheetRepositoryRoundTrip(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	rows := []domain.Row{
		{"CATEGORY_AVG": "Dairy", "CBM_AVG": "0,04"},
		{"CATEGORY_AVG": "Dairy", "CBM_AVG": "9"},
		{"CATEGORY_AVG": "Snacks", "measure": 12345678901234567},
	}
	require.NoError(t, SeedRows(ctx, db, DialectSQLite, "Fallback", rows))
	require.NoError(t, SeedRows(ctx, db, DialectSQLite, "Tasks", []domain.Row{{"id": "T1"}}))

	repo := NewSqliteSheetRepository(db)
	got, err := repo.ListRows(ctx, "Fallback")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "0,04", got[0]["CBM_AVG"])
	assert.Equal(t, "9", got[1]["CBM_AVG"])
	assert.Equal(t, json.Number("12345678901234567"), got[2]["measure"])
	assert.Equal(t, "12345678901234567", got[2].Text("measure"))

	missing, err := repo.ListRows(ctx, "Runsheet")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSeedRowsReplacesSheet(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	require.NoError(t, SeedRows(ctx, db, DialectSQLite, "Tasks", []domain.Row{{"id": "1"}, {"id": "2"}}))
	require.NoError(t, SeedRows(ctx, db, DialectSQLite, "Tasks", []domain.Row{{"id": "3"}}))

	got, err := NewSqliteSheetRepository(db).ListRows(ctx, "Tasks")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].Text("id"))
}

func TestSeedRowsValidation(t *testing.T) {
	require.Error(t, SeedRows(context.Background(), nil, DialectSQLite, "Tasks", nil))

	db := openMemoryDB(t)
	err := SeedRows(context.Background(), db, DialectSQLite, "  ", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet name cannot be empty")
}

func TestSQLSheetRepositoryListRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM sheet_rows")).
		WithArgs("Tasks").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow(`{"id": 101, "sup_place_id": "S1"}`).
			AddRow(`{"id": "102"}`))

	got, err := NewSQLSheetRepository(db).ListRows(context.Background(), "Tasks")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "101", got[0].Text("id"))
	assert.Equal(t, "S1", got[0].Text("sup_place_id"))
	assert.Equal(t, "102", got[1].Text("id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSheetRepositoryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM sheet_rows")).WithArgs("Tasks").WillReturnError(boom)
	_, err = NewSQLSheetRepository(db).ListRows(context.Background(), "Tasks")
	require.ErrorIs(t, err, boom)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sheet_rows")).
		WithArgs("Tasks").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(`not json`))
	_, err = NewSQLSheetRepository(db).ListRows(context.Background(), "Tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode row")

	_, err = NewSQLSheetRepository(nil).ListRows(context.Background(), "Tasks")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRowsPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sheet_rows WHERE sheet = $1")).
		WithArgs("Tasks").
		WillReturnResult(sqlmock.NewResult(0, 2))
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO sheet_rows"))
	prep.ExpectExec().WithArgs("Tasks", int64(0), `{"id":"T1"}`).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("Tasks", int64(1), `{"id":"T2"}`).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = SeedRows(context.Background(), db, DialectPostgres, "Tasks", []domain.Row{{"id": "T1"}, {"id": "T2"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
