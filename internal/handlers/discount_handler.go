package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OnSightTeam/ordersvc/internal/discount"
)

// discountSource is the interface for discount code lookup
type discountSource interface {
	Lookup(ctx context.Context, code string) (discount.Discount, bool)
	Stats() map[string]interface{}
}

// DiscountHandler handles HTTP requests for discount codes
type DiscountHandler struct {
	codes discountSource
	log   *slog.Logger
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(codes discountSource, log *slog.Logger) *DiscountHandler {
	return &DiscountHandler{
		codes: codes,
		log:   log,
	}
}

// GetDiscount handles GET /api/discounts/{code}
// Reports whether the given code is recognised and what it is worth.
func (h *DiscountHandler) GetDiscount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	d, ok := h.codes.Lookup(r.Context(), code)
	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]interface{}{
			"valid":   false,
			"code":    code,
			"message": "Discount code not found",
		}, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":   true,
		"code":    d.Code,
		"percent": d.Percent,
	}, h.log)
}

// GetStats handles GET /api/discounts/stats (for debugging/monitoring)
func (h *DiscountHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.codes.Stats(), h.log)
}
