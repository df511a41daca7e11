package usecase

//go:generate mockgen -source=order_usecase.go -destination=../adapter/http/handlers/mocks/mock_order_usecase.go -package=mocks

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart      = errors.New("order must include at least one menu item")
	ErrMissingPhone   = errors.New("phone number is required")
	ErrMissingOrderID = errors.New("order id is required")
	ErrOrderNotFound  = errors.New("order not found")
)

const defaultItemName = "Menu Item"

// CreateOrderInput is what checkout submits. Items may omit ids and names; they are
// defaulted. Totals are recomputed; only the delivery fee is taken from the caller.
type CreateOrderInput struct {
	Customer    entities.Customer
	Items       []entities.OrderItem
	DeliveryFee float64
	Fulfillment entities.FulfillmentRequest
}

// CancelOrderInput: Phone is required unless Actor is admin.
type CancelOrderInput struct {
	ID     string
	Reason string
	Phone  string
	Actor  string
}

// IOrderUseCase exposes the order lifecycle:
//   - CreateOrder places a Pending order
//   - UpdateOrderStatus moves it along Pending > Preparing > Done > Out for Delivery > Delivered
//   - CancelOrder is available to admins and to the customer who placed the order
//
// Every order returned is sanitized (no tracking phone key).

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	GetOrdersByPhone(ctx context.Context, phone string) ([]entities.Order, error)
	GetOrderForTracking(ctx context.Context, id, phone string) (entities.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	CancelOrder(ctx context.Context, in CancelOrderInput) (entities.Order, error)
	OrdersVersion(ctx context.Context) (string, error)
}

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	publisher interfaces.IOrderEventPublisher
	loc       *time.Location
	now       func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

// NewOrderUseCase wires the order repository. publisher may be nil (events disabled);
// loc is the kitchen time zone used for scheduled orders (nil means local time).
func NewOrderUseCase(repo interfaces.IOrderRepository, publisher interfaces.IOrderEventPublisher, loc *time.Location) *OrderUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &OrderUseCase{
		repo:      repo,
		publisher: publisher,
		loc:       loc,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	if len(in.Items) == 0 {
		return entities.Order{}, ErrEmptyCart
	}

	items := make([]entities.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, normalizeOrderItem(it))
	}

	customer := normalizeCustomer(in.Customer)
	fulfillment := entities.NormalizeFulfillment(in.Fulfillment, u.loc)
	now := u.now()

	subtotal := entities.Subtotal(items)
	deliveryFee := entities.RoundMoney(in.DeliveryFee)

	o := entities.Order{
		ID:               uuid.NewString(),
		PublicID:         newPublicID(now),
		Customer:         customer,
		TrackingPhoneKey: entities.NormalizePhone(customer.Phone),
		Items:            items,
		Subtotal:         subtotal,
		DeliveryFee:      deliveryFee,
		Total:            entities.RoundMoney(subtotal + deliveryFee),
		Status:           entities.OrderStatusPending,
		StatusHistory:    []entities.StatusHistoryEntry{{Status: entities.OrderStatusPending, Timestamp: now}},
		Fulfillment:      fulfillment,
		ScheduledFor:     fulfillment.Schedule.ISO,
		PlacedAt:         now,
	}
	if fulfillment.Schedule.Unresolved() {
		log.Printf("[order][usecase] scheduled time could not be parsed public_id=%s date=%q time=%q",
			o.PublicID, fulfillment.Schedule.Date, fulfillment.Schedule.Time)
	}

	if err := u.repo.Create(ctx, o); err != nil {
		log.Printf("[order][usecase] create failed public_id=%s err=%v", o.PublicID, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] order placed public_id=%s total=%.2f items=%d", o.PublicID, o.Total, len(o.Items))

	u.publish(ctx, interfaces.OrderEventCreated, o, entities.ActorCustomer)
	return o.Sanitized(), nil
}

func (u *OrderUseCase) ListOrders(ctx context.Context) ([]entities.Order, error) {
	orders, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeNewestFirst(orders), nil
}

func (u *OrderUseCase) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	o, err := u.findOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	return o.Sanitized(), nil
}

func (u *OrderUseCase) GetOrdersByPhone(ctx context.Context, phone string) ([]entities.Order, error) {
	key := entities.NormalizePhone(phone)
	if key == "" {
		return nil, ErrMissingPhone
	}

	orders, err := u.repo.ListByPhoneKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return sanitizeNewestFirst(orders), nil
}

// GetOrderForTracking returns the order only when the phone matches the one used at
// checkout. A mismatch is reported as not found so ids cannot be enumerated.
func (u *OrderUseCase) GetOrderForTracking(ctx context.Context, id, phone string) (entities.Order, error) {
	if strings.TrimSpace(id) == "" {
		return entities.Order{}, ErrMissingOrderID
	}
	key := entities.NormalizePhone(phone)
	if key == "" {
		return entities.Order{}, ErrMissingPhone
	}

	o, err := u.findOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.TrackingPhoneKey != key {
		return entities.Order{}, ErrOrderNotFound
	}
	return o.Sanitized(), nil
}

func (u *OrderUseCase) UpdateOrderStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	if !status.IsValid() {
		return entities.Order{}, entities.ErrUnknownStatus
	}

	o, err := u.findOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	updated, err := entities.ApplyTransition(o, status, entities.ActorAdmin, u.now())
	if err != nil {
		return entities.Order{}, err
	}
	if err := u.repo.Update(ctx, updated); err != nil {
		log.Printf("[order][usecase] status update failed public_id=%s status=%s err=%v", o.PublicID, status, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] status changed public_id=%s from=%s to=%s", o.PublicID, o.Status, status)

	u.publish(ctx, interfaces.OrderEventStatusChanged, updated, entities.ActorAdmin)
	return updated.Sanitized(), nil
}

func (u *OrderUseCase) CancelOrder(ctx context.Context, in CancelOrderInput) (entities.Order, error) {
	actor := entities.ActorCustomer
	if in.Actor == entities.ActorAdmin {
		actor = entities.ActorAdmin
	}

	o, err := u.findOrder(ctx, in.ID)
	if err != nil {
		return entities.Order{}, err
	}

	reason := strings.TrimSpace(in.Reason)
	cancelled, err := entities.ApplyCancellation(o, reason, actor, in.Phone, u.now())
	if err != nil {
		return entities.Order{}, err
	}
	if err := u.repo.Update(ctx, cancelled); err != nil {
		log.Printf("[order][usecase] cancel failed public_id=%s err=%v", o.PublicID, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] order cancelled public_id=%s actor=%s", o.PublicID, actor)

	u.publish(ctx, interfaces.OrderEventStatusChanged, cancelled, actor)
	return cancelled.Sanitized(), nil
}

// OrdersVersion fingerprints the current order list so pollers can detect changes
// without downloading it.
func (u *OrderUseCase) OrdersVersion(ctx context.Context) (string, error) {
	orders, err := u.ListOrders(ctx)
	if err != nil {
		return "", err
	}
	return fingerprint(orders)
}

// findOrder looks the order up by id, then by public id.
func (u *OrderUseCase) findOrder(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrMissingOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID != "" {
		return o, nil
	}

	o, err = u.repo.GetByPublicID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) publish(ctx context.Context, eventType string, o entities.Order, actor string) {
	if u.publisher == nil {
		return
	}
	event := interfaces.OrderEvent{
		Type:       eventType,
		OrderID:    o.ID,
		PublicID:   o.PublicID,
		Status:     string(o.Status),
		Total:      o.Total,
		Method:     string(o.Fulfillment.Method),
		Actor:      actor,
		OccurredAt: u.now(),
	}
	if err := u.publisher.Publish(ctx, event); err != nil {
		log.Printf("[order][usecase] event publish failed type=%s public_id=%s err=%v", eventType, o.PublicID, err)
	}
}

func normalizeOrderItem(it entities.OrderItem) entities.OrderItem {
	it.ID = strings.TrimSpace(it.ID)
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if strings.TrimSpace(it.Name) == "" {
		it.Name = defaultItemName
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	if it.Price < 0 {
		it.Price = 0
	}
	return it
}

func normalizeCustomer(c entities.Customer) entities.Customer {
	return entities.Customer{
		Name:      trimOr(c.Name, "Guest"),
		Phone:     trimOr(c.Phone, "N/A"),
		Building:  trimOr(c.Building, "N/A"),
		Apartment: trimOr(c.Apartment, "-"),
	}
}

func trimOr(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func newPublicID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%d-%s", now.Year(), suffix)
}

func sanitizeNewestFirst(orders []entities.Order) []entities.Order {
	out := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Sanitized())
	}
	slices.SortStableFunc(out, func(a, b entities.Order) int {
		return cmp.Compare(b.PlacedAt.UnixNano(), a.PlacedAt.UnixNano())
	})
	return out
}

func fingerprint(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
