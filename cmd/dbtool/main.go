package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"trip-assignment-service/internal/adapters/repositories"
	"trip-assignment-service/internal/adapters/workbook"
	"trip-assignment-service/internal/config"
	"trip-assignment-service/internal/platform/db"
	"trip-assignment-service/internal/ports"
)

func main() {
	config.LoadEnv()

	workbookPath := flag.String("workbook", config.Get("SEED_WORKBOOK", "data/seeds/runsheet.xlsx"), "workbook with Tasks, Runsheet and Fallback sheets")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	var conn *sql.DB
	dialect := repositories.DialectSQLite
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		conn, err = db.Open(cfg.Storage.DSN)
		dialect = repositories.DialectPostgres
	case config.DriverSQLite:
		conn, err = db.OpenSQLite(cfg.Storage.DBPath)
	default:
		log.Fatalf("storage driver %q has no database to seed", cfg.Storage.Driver)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, dialect, *workbookPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, workbookPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	src, err := workbook.OpenSource(workbookPath)
	if err != nil {
		return fmt.Errorf("open workbook failed: %w", err)
	}
	defer src.Close()

	log.Printf("Seeding database from workbook=%s sheets=%s", workbookPath, strings.Join(src.Sheets(), ","))
	for _, sheet := range []string{ports.SheetTasks, ports.SheetRunsheet, ports.SheetFallback} {
		rows, err := src.ListRows(ctx, sheet)
		if err != nil {
			return fmt.Errorf("read sheet %s failed: %w", sheet, err)
		}
		if err := repositories.SeedRows(ctx, conn, dialect, sheet, rows); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		log.Printf("Seeded sheet=%s rows=%d", sheet, len(rows))
	}
	log.Println("Seeding complete.")

	return nil
}
