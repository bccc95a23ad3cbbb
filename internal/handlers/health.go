package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

const version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	service string
	log     *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service string, log *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		log:     log,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   h.service,
		Timestamp: time.Now().UTC(),
		Version:   version,
	}, h.log)
}
