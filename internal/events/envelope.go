package events

import (
	"context"
	"encoding/json"
	"time"

	"marketplace-be/internal/logger"

	"github.com/google/uuid"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderAccepted  = "OrderAccepted"
	EventOrderDeclined  = "OrderDeclined"
	EventOrderCompleted = "OrderCompleted"
	EventOrderCancelled = "OrderCancelled"
	EventRatingCreated  = "RatingCreated"
)

const (
	ProducerName = "marketplace-be"
	Version      = 1
)

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

type OrderPayload struct {
	OrderID    uint   `json:"order_id"`
	ProductID  uint   `json:"product_id"`
	BuyerID    uint   `json:"buyer_id"`
	SupplierID uint   `json:"supplier_id"`
	Quantity   int    `json:"quantity"`
	Total      string `json:"total"`
	Status     string `json:"status"`
}

type RatingPayload struct {
	RatingID   uint `json:"rating_id"`
	OrderID    uint `json:"order_id"`
	SupplierID uint `json:"supplier_id"`
	Score      int  `json:"score"`
}

// New builds an envelope for payload. The request ID on ctx becomes the
// trace ID and correlationID is used as the partition key.
func New(ctx context.Context, eventType, correlationID string, payload any) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  Version,
		OccurredAt:    time.Now().UTC(),
		Producer:      ProducerName,
		TraceID:       logger.RequestIDFrom(ctx),
		CorrelationID: correlationID,
		Payload:       MustMarshal(payload),
	}
}

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
