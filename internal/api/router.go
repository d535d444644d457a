package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the dashboard API routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	v1.HandleFunc("/risks", h.Risks).Methods(http.MethodGet)
	v1.HandleFunc("/viewmode", h.GetViewMode).Methods(http.MethodGet)
	v1.HandleFunc("/viewmode", h.SetViewMode).Methods(http.MethodPut)
	v1.HandleFunc("/ingest", h.Ingest).Methods(http.MethodPost)

	return r
}
