package response

import (
	"time"

	"cloud_kitchen/internal/domain/entities"
)

type OrderItemResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type StatusHistoryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
}

// OrderResponse is the public shape of an order. It never carries the tracking key.
type OrderResponse struct {
	ID            string                  `json:"id"`
	PublicID      string                  `json:"publicId"`
	Customer      entities.Customer       `json:"customer"`
	Items         []OrderItemResponse     `json:"items"`
	Subtotal      float64                 `json:"subtotal"`
	DeliveryFee   float64                 `json:"deliveryFee"`
	Total         float64                 `json:"total"`
	Status        string                  `json:"status"`
	StatusHistory []StatusHistoryResponse `json:"statusHistory"`
	Fulfillment   entities.Fulfillment    `json:"fulfillment"`
	ScheduledFor  *time.Time              `json:"scheduledFor"`
	PlacedAt      time.Time               `json:"placedAt"`
	AcceptedAt    *time.Time              `json:"acceptedAt"`
	DeliveredAt   *time.Time              `json:"deliveredAt"`
	CancelledAt   *time.Time              `json:"cancelledAt"`
	CancelReason  string                  `json:"cancelReason,omitempty"`
}

type OrderEnvelope struct {
	Order OrderResponse `json:"order"`
}

type OrdersEnvelope struct {
	Orders []OrderResponse `json:"orders"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

func FromOrder(o entities.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	history := make([]StatusHistoryResponse, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, StatusHistoryResponse{Status: string(h.Status), Timestamp: h.Timestamp, Actor: h.Actor})
	}

	return OrderResponse{
		ID:            o.ID,
		PublicID:      o.PublicID,
		Customer:      o.Customer,
		Items:         items,
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		Status:        string(o.Status),
		StatusHistory: history,
		Fulfillment:   o.Fulfillment,
		ScheduledFor:  o.ScheduledFor,
		PlacedAt:      o.PlacedAt,
		AcceptedAt:    o.AcceptedAt,
		DeliveredAt:   o.DeliveredAt,
		CancelledAt:   o.CancelledAt,
		CancelReason:  o.CancelReason,
	}
}

func FromOrders(orders []entities.Order) OrdersEnvelope {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return OrdersEnvelope{Orders: out}
}
