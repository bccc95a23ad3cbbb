package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OnSightTeam/ordersvc/internal/customer"
)

// CustomerHandler exposes customer tier lookups
type CustomerHandler struct {
	log *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(log *slog.Logger) *CustomerHandler {
	return &CustomerHandler{log: log}
}

// Profile handles GET /api/customers/{customerName}
func (h *CustomerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "customerName")

	if name == "" {
		h.log.Warn("customer name is required")
		WriteError(w, http.StatusBadRequest, "Customer name is required", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"customer": name,
		"premium":  customer.IsPremium(name),
	}, h.log)
}
