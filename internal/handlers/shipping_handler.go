package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/OnSightTeam/ordersvc/internal/pricing"
)

// ShippingHandler quotes parcel shipping costs
type ShippingHandler struct {
	log *slog.Logger
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(log *slog.Logger) *ShippingHandler {
	return &ShippingHandler{log: log}
}

// Quote handles GET /api/shipping/quote?weight=12.5
func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("weight")

	// ParseFloat accepts NaN and Inf tokens; neither is a shippable weight.
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		h.log.Warn("invalid shipping weight", "weight", raw)
		WriteError(w, http.StatusBadRequest, "Invalid weight supplied", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"weight": weight,
		"cost":   pricing.ShippingCost(weight),
	}, h.log)
}
