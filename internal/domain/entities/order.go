package entities

import "time"

// OrderStatus represents the lifecycle of a kitchen order.
//
// Domain notes:
//   - Delivered and Cancelled are terminal.
//   - Transitions are guarded by ApplyTransition / ApplyCancellation (order_status.go).

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusDone           OrderStatus = "Done"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

const (
	ActorAdmin    = "admin"
	ActorCustomer = "customer"
)

type Customer struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Actor     string      `json:"actor,omitempty"`
}

// Order is the document persisted by every storage backend.
//
// Storage model:
//   - The JSON document is the source of truth (file store and order_data attribute/column).
//   - Summary columns kept by the remote drivers are projections rebuilt from it.
//
// TrackingPhoneKey is internal: Sanitized() strips it before an order leaves the use case.
type Order struct {
	ID               string               `json:"id"`
	PublicID         string               `json:"publicId"`
	Customer         Customer             `json:"customer"`
	TrackingPhoneKey string               `json:"trackingPhoneKey,omitempty"`
	Items            []OrderItem          `json:"items"`
	Subtotal         float64              `json:"subtotal"`
	DeliveryFee      float64              `json:"deliveryFee"`
	Total            float64              `json:"total"`
	Status           OrderStatus          `json:"status"`
	StatusHistory    []StatusHistoryEntry `json:"statusHistory"`
	Fulfillment      Fulfillment          `json:"fulfillment"`
	ScheduledFor     *time.Time           `json:"scheduledFor"`
	PlacedAt         time.Time            `json:"placedAt"`
	AcceptedAt       *time.Time           `json:"acceptedAt"`
	DeliveredAt      *time.Time           `json:"deliveredAt"`
	CancelledAt      *time.Time           `json:"cancelledAt"`
	CancelReason     string               `json:"cancelReason,omitempty"`
}

// Clone returns a deep copy so transitions never share slices or timestamps
// with the value they were derived from.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = append([]OrderItem(nil), o.Items...)
	}
	if o.StatusHistory != nil {
		c.StatusHistory = append([]StatusHistoryEntry(nil), o.StatusHistory...)
	}
	c.Fulfillment.Schedule.ISO = cloneTime(o.Fulfillment.Schedule.ISO)
	c.ScheduledFor = cloneTime(o.ScheduledFor)
	c.AcceptedAt = cloneTime(o.AcceptedAt)
	c.DeliveredAt = cloneTime(o.DeliveredAt)
	c.CancelledAt = cloneTime(o.CancelledAt)
	return c
}

// Sanitized returns a copy without the tracking phone key.
func (o Order) Sanitized() Order {
	c := o.Clone()
	c.TrackingPhoneKey = ""
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
