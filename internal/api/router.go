package api

import (
	"net/http"

	"trip-assignment-service/internal/adapters/workbook"
	"trip-assignment-service/internal/api/handlers"
	"trip-assignment-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.AssignmentService) http.Handler {
	mux := http.NewServeMux()

	assignHandler := &handlers.AssignmentHandler{
		Service: svc,
		Export:  workbook.Export,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/vehicles", assignHandler.Vehicles)
	mux.HandleFunc("/suppliers", assignHandler.Suppliers)
	mux.HandleFunc("/cbm", assignHandler.ResolveCBM)
	mux.HandleFunc("/assignments", assignHandler.Assign)
	mux.HandleFunc("/assignments/export", assignHandler.ExportAssignment)
	mux.HandleFunc("/summaries", handlers.Summaries)

	// The logger runs inside the request id middleware so it can read the id.
	return requestIDMiddleware(loggingMiddleware(recoverMiddleware(mux)))
}
