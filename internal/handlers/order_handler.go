package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/OnSightTeam/ordersvc/internal/cache"
	"github.com/OnSightTeam/ordersvc/internal/models"
	"github.com/OnSightTeam/ordersvc/internal/repository"
	"github.com/OnSightTeam/ordersvc/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	cache        cache.Cache
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler. The cache is optional;
// pass nil when no Redis is configured.
func NewOrderHandler(orderService *service.OrderService, cache cache.Cache, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		cache:        cache,
		log:          log,
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	receipt, err := h.orderService.ProcessOrder(r.Context(), req)
	if err != nil {
		h.log.Error("failed to process order", "error", err)

		switch err {
		case service.ErrMissingCustomer:
			WriteError(w, http.StatusBadRequest, "Customer name is required", h.log)
		case service.ErrEmptyOrder:
			WriteError(w, http.StatusBadRequest, "Order must contain at least one item", h.log)
		case service.ErrInvalidQuantity:
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
		case service.ErrInvalidPrice:
			WriteError(w, http.StatusBadRequest, "Price must not be negative", h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, receipt, h.log)
}

// GetOrder handles GET /api/orders/{orderId}
// Returns the stored order or an error:
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Order not found
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rawID := chi.URLParam(r, "orderId")

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warn("invalid order ID format", "orderId", rawID)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return
	}

	var cacheKey string
	if h.cache != nil {
		cacheKey = h.cache.GenerateKey("order", rawID)
		if cached, err := h.cache.Get(ctx, cacheKey); err != nil {
			h.log.Warn("order cache read failed", "error", err)
		} else if cached != "" {
			WriteJSON(w, http.StatusOK, json.RawMessage(cached), h.log)
			return
		}
	}

	order, err := h.orderService.GetOrder(ctx, id)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			h.log.Info("order not found", "orderId", id)
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}

		h.log.Error("failed to get order", "orderId", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	if h.cache != nil {
		if b, err := json.Marshal(order); err == nil {
			if err := h.cache.Set(ctx, cacheKey, string(b), cache.OrderTTL); err != nil {
				h.log.Warn("order cache write failed", "error", err)
			}
		}
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
