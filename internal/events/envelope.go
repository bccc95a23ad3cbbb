package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/OnSightTeam/ordersvc/internal/models"
)

const EventOrderProcessed = "OrderProcessed"

const TopicOrderProcessed = "orders.processed"

// Envelope is the versioned wrapper every published event shares.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderProcessedPayload struct {
	OrderID     int64     `json:"order_id"`
	Customer    string    `json:"customer"`
	Email       string    `json:"email"`
	OrderType   string    `json:"order_type"`
	Total       float64   `json:"total"`
	ProcessedAt time.Time `json:"processed_at"`
}

func newOrderProcessedEnvelope(ctx context.Context, producer string, order *models.Order, req *models.OrderRequest) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderProcessed,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       chimw.GetReqID(ctx),
		CorrelationID: strconv.FormatInt(order.ID, 10),
		Payload: MustMarshal(OrderProcessedPayload{
			OrderID:     order.ID,
			Customer:    order.Customer,
			Email:       req.Email,
			OrderType:   string(req.OrderType),
			Total:       order.Total,
			ProcessedAt: order.Date,
		}),
	}
}

// PartitionKey keys messages by order id so events for one order keep
// their relative order on the topic.
func PartitionKey(orderID int64) []byte { return []byte(strconv.FormatInt(orderID, 10)) }

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// UnwrapPayload decodes the event-specific payload carried by an envelope.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
