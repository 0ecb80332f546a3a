package main

import (
	"io"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"trip-assignment-service/internal/adapters/repositories"
	"trip-assignment-service/internal/adapters/workbook"
	"trip-assignment-service/internal/api"
	"trip-assignment-service/internal/config"
	"trip-assignment-service/internal/platform/db"
	"trip-assignment-service/internal/ports"
	"trip-assignment-service/internal/services"
)

// main is the application composition root.
// It wires the configured sheet source behind the SheetSource port and starts the HTTP server.
func main() {
	config.LoadEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	source, closer, err := openSource(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	svc := services.NewAssignmentService(source, cfg.Vehicles, cfg.DefaultVehicle, cfg.Planner)
	router := api.NewRouter(svc)

	// Large runsheets take a while to plan; the write timeout leaves room for exports.
	log.Printf("Server listening addr=:%s storage=%s", cfg.Server.Port, cfg.Storage.Driver)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSource(storage config.StorageConfig) (ports.SheetSource, io.Closer, error) {
	switch storage.Driver {
	case config.DriverPostgres:
		conn, err := db.Open(storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLSheetRepository(conn), conn, nil

	case config.DriverWorkbook:
		src, err := workbook.OpenSource(storage.WorkbookPath)
		if err != nil {
			return nil, nil, err
		}
		return src, src, nil

	default:
		conn, err := db.OpenSQLite(storage.DBPath)
		if err != nil {
			return nil, nil, err
		}
		// A fresh local database serves empty sheets until dbtool seeds it.
		if err := repositories.InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return repositories.NewSqliteSheetRepository(conn), conn, nil
	}
}
