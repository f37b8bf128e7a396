package api

import "net/http"

// NewRouter wires the HTTP surface. Reads are public; the mutating endpoints
// go through the shared-secret authenticator inside their handlers.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /v1/simulate", h.Simulate)
	mux.HandleFunc("POST /v1/applications", h.CreateApplication)
	mux.HandleFunc("GET /v1/applications", h.ListApplications)
	mux.HandleFunc("GET /v1/applications/{id}", h.GetApplication)
	return mux
}
