package interfaces

//go:generate mockgen -source=order_event_publisher_interface.go -destination=mocks/mock_order_event_publisher_interface.go -package=mock_interfaces

import (
	"context"
	"time"
)

const (
	OrderEventCreated       = "created"
	OrderEventStatusChanged = "status_changed"
)

// OrderEvent is published after an order change has been persisted.
// It never carries the customer's phone number.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	PublicID   string    `json:"public_id"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	Method     string    `json:"fulfillment_method"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// IOrderEventPublisher abstracts the message broker (e.g. RabbitMQ).

type IOrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
