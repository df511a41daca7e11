package entities

import (
	"fmt"
	"strings"
	"time"
)

// OrderSummary is the flat projection remote stores keep next to the order document
// so operators can query and sort orders without decoding it.
type OrderSummary struct {
	CustomerName  string
	CustomerPhone string
	Building      string
	Apartment     string
	ItemsSummary  string
	ItemsCount    int
	Total         float64
	Status        OrderStatus
	Method        FulfillmentMethod
	PlacedAt      time.Time
	ScheduledFor  *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}

// SummarizeOrder derives the projection. A cancelled order never reports a delivery time.
func SummarizeOrder(o Order) OrderSummary {
	parts := make([]string, 0, len(o.Items))
	count := 0
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%d× %s", it.Quantity, it.Name))
		count += it.Quantity
	}
	summary := strings.Join(parts, ", ")
	if summary == "" {
		summary = "N/A"
	}

	deliveredAt := cloneTime(o.DeliveredAt)
	if o.Status == OrderStatusCancelled {
		deliveredAt = nil
	}

	return OrderSummary{
		CustomerName:  o.Customer.Name,
		CustomerPhone: o.Customer.Phone,
		Building:      o.Customer.Building,
		Apartment:     o.Customer.Apartment,
		ItemsSummary:  summary,
		ItemsCount:    count,
		Total:         o.Total,
		Status:        o.Status,
		Method:        o.Fulfillment.Method,
		PlacedAt:      o.PlacedAt,
		ScheduledFor:  cloneTime(o.ScheduledFor),
		DeliveredAt:   deliveredAt,
		CancelledAt:   cloneTime(o.CancelledAt),
	}
}
