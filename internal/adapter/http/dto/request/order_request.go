package request

import (
	"strings"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase"
)

type CustomerRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
}

type OrderItemRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// TotalsRequest mirrors what checkout computed. Only DeliveryFee is trusted;
// subtotal and total are recomputed from the items.
type TotalsRequest struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

type CreateOrderRequest struct {
	Customer    *CustomerRequest            `json:"customer" binding:"required"`
	Items       []OrderItemRequest          `json:"items"`
	Totals      TotalsRequest               `json:"totals"`
	Fulfillment entities.FulfillmentRequest `json:"fulfillment"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	items := make([]entities.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.OrderItem{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	var customer entities.Customer
	if r.Customer != nil {
		customer = entities.Customer{
			Name:      r.Customer.Name,
			Phone:     r.Customer.Phone,
			Building:  r.Customer.Building,
			Apartment: r.Customer.Apartment,
		}
	}

	fee := r.Totals.DeliveryFee
	if fee < 0 {
		fee = 0
	}

	return usecase.CreateOrderInput{
		Customer:    customer,
		Items:       items,
		DeliveryFee: fee,
		Fulfillment: r.Fulfillment,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateOrderStatusRequest) ResolveStatus() entities.OrderStatus {
	return entities.OrderStatus(strings.TrimSpace(r.Status))
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
	Phone  string `json:"phone"`
}
