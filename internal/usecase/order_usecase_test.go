package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"cloud_kitchen/internal/adapter/persistence/fallback"
	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"
	mock_interfaces "cloud_kitchen/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 10, 18, 18, 30, 0, 0, time.UTC)

func newTestOrderUseCase(repo interfaces.IOrderRepository, pub interfaces.IOrderEventPublisher) *OrderUseCase {
	uc := NewOrderUseCase(repo, pub, time.UTC)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func storedOrder(status entities.OrderStatus) entities.Order {
	return entities.Order{
		ID:               "o-1",
		PublicID:         "ORD-2026-ABCDEF",
		Customer:         entities.Customer{Name: "Asha", Phone: "(555) 010-1000", Building: "B", Apartment: "12"},
		TrackingPhoneKey: "5550101000",
		Items:            []entities.OrderItem{{ID: "i1", Name: "Samosa", Quantity: 2, Price: 60}},
		Subtotal:         120,
		Total:            120,
		Status:           status,
		StatusHistory:    []entities.StatusHistoryEntry{{Status: entities.OrderStatusPending, Timestamp: fixedNow.Add(-time.Hour)}},
		PlacedAt:         fixedNow.Add(-time.Hour),
	}
}

func TestOrderUseCase_CreateOrder(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		uc := newTestOrderUseCase(nil, nil)
		_, err := uc.CreateOrder(context.Background(), CreateOrderInput{})
		if !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("normalizes and persists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		pub := mock_interfaces.NewMockIOrderEventPublisher(ctrl)
		uc := newTestOrderUseCase(repo, pub)

		var persisted entities.Order
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Order{})).DoAndReturn(
			func(_ context.Context, o entities.Order) error {
				persisted = o
				return nil
			},
		)
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e interfaces.OrderEvent) error {
				if e.Type != interfaces.OrderEventCreated || e.Status != "Pending" || e.Actor != entities.ActorCustomer {
					t.Fatalf("unexpected event: %+v", e)
				}
				return nil
			},
		)

		res, err := uc.CreateOrder(context.Background(), CreateOrderInput{
			Customer: entities.Customer{Name: "  Asha ", Phone: " (555) 010-1000 "},
			Items: []entities.OrderItem{
				{ID: "samosa", Name: "Samosa", Quantity: 2, Price: 0.1},
				{Quantity: 0, Price: -4},
			},
			DeliveryFee: 0.2,
			Fulfillment: entities.FulfillmentRequest{Method: "pickup"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if persisted.TrackingPhoneKey != "5550101000" {
			t.Fatalf("expected tracking key on stored order, got %q", persisted.TrackingPhoneKey)
		}
		if res.TrackingPhoneKey != "" {
			t.Fatalf("tracking key leaked: %q", res.TrackingPhoneKey)
		}
		if res.Customer != (entities.Customer{Name: "Asha", Phone: "(555) 010-1000", Building: "N/A", Apartment: "-"}) {
			t.Fatalf("unexpected customer: %+v", res.Customer)
		}
		if res.Items[1].ID == "" || res.Items[1].Name != "Menu Item" || res.Items[1].Quantity != 1 || res.Items[1].Price != 0 {
			t.Fatalf("unexpected defaulted item: %+v", res.Items[1])
		}
		if res.Subtotal != 0.2 || res.DeliveryFee != 0.2 || res.Total != 0.4 {
			t.Fatalf("unexpected totals: %v %v %v", res.Subtotal, res.DeliveryFee, res.Total)
		}
		if res.Status != entities.OrderStatusPending || len(res.StatusHistory) != 1 || !res.PlacedAt.Equal(fixedNow) {
			t.Fatalf("unexpected initial state: %+v", res)
		}
		if res.Fulfillment.Method != entities.FulfillmentPickup {
			t.Fatalf("expected pickup, got %s", res.Fulfillment.Method)
		}
		if !regexp.MustCompile(`^ORD-2026-[0-9A-F]{6}$`).MatchString(res.PublicID) {
			t.Fatalf("unexpected public id %q", res.PublicID)
		}
	})

	t.Run("scheduled order keeps iso", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.CreateOrder(context.Background(), CreateOrderInput{
			Items: []entities.OrderItem{{Name: "Naan", Quantity: 1, Price: 50}},
			Fulfillment: entities.FulfillmentRequest{
				Schedule: &entities.ScheduleRequest{Mode: "later", Date: "2026-10-19", Time: "20:15"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, 10, 19, 20, 15, 0, 0, time.UTC)
		if res.ScheduledFor == nil || !res.ScheduledFor.Equal(want) {
			t.Fatalf("expected scheduledFor %v, got %v", want, res.ScheduledFor)
		}
	})

	t.Run("storage failure surfaces and skips event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		pub := mock_interfaces.NewMockIOrderEventPublisher(ctrl)
		uc := newTestOrderUseCase(repo, pub)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(fallback.ErrStorageUnavailable)

		_, err := uc.CreateOrder(context.Background(), CreateOrderInput{Items: []entities.OrderItem{{Name: "Naan"}}})
		if !errors.Is(err, fallback.ErrStorageUnavailable) {
			t.Fatalf("expected ErrStorageUnavailable, got %v", err)
		}
	})

	t.Run("publish failure is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		pub := mock_interfaces.NewMockIOrderEventPublisher(ctrl)
		uc := newTestOrderUseCase(repo, pub)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		if _, err := uc.CreateOrder(context.Background(), CreateOrderInput{Items: []entities.OrderItem{{Name: "Naan"}}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_Lookups(t *testing.T) {
	t.Run("get falls back to public id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "ORD-2026-ABCDEF").Return(entities.Order{}, nil)
		repo.EXPECT().GetByPublicID(gomock.Any(), "ORD-2026-ABCDEF").Return(storedOrder(entities.OrderStatusPending), nil)

		res, err := uc.GetOrder(context.Background(), " ORD-2026-ABCDEF ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "o-1" || res.TrackingPhoneKey != "" {
			t.Fatalf("unexpected order: %+v", res)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Order{}, nil)
		repo.EXPECT().GetByPublicID(gomock.Any(), "nope").Return(entities.Order{}, nil)

		_, err := uc.GetOrder(context.Background(), "nope")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("get missing id", func(t *testing.T) {
		uc := newTestOrderUseCase(nil, nil)
		_, err := uc.GetOrder(context.Background(), "  ")
		if !errors.Is(err, ErrMissingOrderID) {
			t.Fatalf("expected ErrMissingOrderID, got %v", err)
		}
	})

	t.Run("list is newest first and sanitized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		older := storedOrder(entities.OrderStatusPending)
		newer := storedOrder(entities.OrderStatusPreparing)
		newer.ID = "o-2"
		newer.PlacedAt = fixedNow
		repo.EXPECT().List(gomock.Any()).Return([]entities.Order{older, newer}, nil)

		res, err := uc.ListOrders(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 || res[0].ID != "o-2" || res[1].TrackingPhoneKey != "" {
			t.Fatalf("unexpected list: %+v", res)
		}
	})

	t.Run("by phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		if _, err := uc.GetOrdersByPhone(context.Background(), "call me"); !errors.Is(err, ErrMissingPhone) {
			t.Fatalf("expected ErrMissingPhone, got %v", err)
		}

		repo.EXPECT().ListByPhoneKey(gomock.Any(), "5550101000").Return([]entities.Order{storedOrder(entities.OrderStatusPending)}, nil)
		res, err := uc.GetOrdersByPhone(context.Background(), "555-010-1000")
		if err != nil || len(res) != 1 {
			t.Fatalf("unexpected result: %+v %v", res, err)
		}

		repo.EXPECT().ListByPhoneKey(gomock.Any(), "111").Return(nil, nil)
		if _, err := uc.GetOrdersByPhone(context.Background(), "111"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("tracking requires matching phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		if _, err := uc.GetOrderForTracking(context.Background(), "o-1", ""); !errors.Is(err, ErrMissingPhone) {
			t.Fatalf("expected ErrMissingPhone, got %v", err)
		}
		if _, err := uc.GetOrderForTracking(context.Background(), "", "555"); !errors.Is(err, ErrMissingOrderID) {
			t.Fatalf("expected ErrMissingOrderID, got %v", err)
		}

		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(storedOrder(entities.OrderStatusPending), nil).Times(2)

		if _, err := uc.GetOrderForTracking(context.Background(), "o-1", "5559999999"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
		res, err := uc.GetOrderForTracking(context.Background(), "o-1", "+ (555) 010 1000")
		if err != nil || res.ID != "o-1" || res.TrackingPhoneKey != "" {
			t.Fatalf("unexpected result: %+v %v", res, err)
		}
	})
}

func TestOrderUseCase_UpdateOrderStatus(t *testing.T) {
	t.Run("unknown status never hits storage", func(t *testing.T) {
		uc := newTestOrderUseCase(nil, nil)
		_, err := uc.UpdateOrderStatus(context.Background(), "o-1", "Teleported")
		if !errors.Is(err, entities.ErrUnknownStatus) {
			t.Fatalf("expected ErrUnknownStatus, got %v", err)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(storedOrder(entities.OrderStatusPending), nil)

		_, err := uc.UpdateOrderStatus(context.Background(), "o-1", entities.OrderStatusDelivered)
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("success persists and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		pub := mock_interfaces.NewMockIOrderEventPublisher(ctrl)
		uc := newTestOrderUseCase(repo, pub)

		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(storedOrder(entities.OrderStatusPending), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) error {
				if o.Status != entities.OrderStatusPreparing || o.AcceptedAt == nil || o.TrackingPhoneKey == "" {
					t.Fatalf("unexpected stored order: %+v", o)
				}
				return nil
			},
		)
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e interfaces.OrderEvent) error {
				if e.Type != interfaces.OrderEventStatusChanged || e.Status != "Preparing" || e.Actor != entities.ActorAdmin {
					t.Fatalf("unexpected event: %+v", e)
				}
				return nil
			},
		)

		res, err := uc.UpdateOrderStatus(context.Background(), "o-1", entities.OrderStatusPreparing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.StatusHistory[0].Status != entities.OrderStatusPreparing || !res.AcceptedAt.Equal(fixedNow) {
			t.Fatalf("unexpected order: %+v", res)
		}
	})
}

func TestOrderUseCase_CancelOrder(t *testing.T) {
	t.Run("customer with wrong phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(storedOrder(entities.OrderStatusPreparing), nil)

		_, err := uc.CancelOrder(context.Background(), CancelOrderInput{ID: "o-1", Phone: "5550000000"})
		if !errors.Is(err, entities.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("terminal order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(storedOrder(entities.OrderStatusDelivered), nil)

		_, err := uc.CancelOrder(context.Background(), CancelOrderInput{ID: "o-1", Actor: entities.ActorAdmin})
		if !errors.Is(err, entities.ErrTerminalState) {
			t.Fatalf("expected ErrTerminalState, got %v", err)
		}
	})

	t.Run("customer cancels own order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(storedOrder(entities.OrderStatusPending), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.CancelOrder(context.Background(), CancelOrderInput{ID: "o-1", Reason: " changed my mind ", Phone: "555 010 1000", Actor: "somebody"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.OrderStatusCancelled || res.CancelReason != "changed my mind" || res.CancelledAt == nil {
			t.Fatalf("unexpected order: %+v", res)
		}
		if res.StatusHistory[0].Actor != entities.ActorCustomer {
			t.Fatalf("expected customer actor, got %q", res.StatusHistory[0].Actor)
		}
	})
}

func TestOrderUseCase_OrdersVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	uc := newTestOrderUseCase(repo, nil)

	pending := storedOrder(entities.OrderStatusPending)
	preparing := storedOrder(entities.OrderStatusPreparing)
	gomock.InOrder(
		repo.EXPECT().List(gomock.Any()).Return([]entities.Order{pending}, nil),
		repo.EXPECT().List(gomock.Any()).Return([]entities.Order{pending}, nil),
		repo.EXPECT().List(gomock.Any()).Return([]entities.Order{preparing}, nil),
	)

	v1, _ := uc.OrdersVersion(context.Background())
	v2, _ := uc.OrdersVersion(context.Background())
	v3, _ := uc.OrdersVersion(context.Background())
	if len(v1) != 64 || v1 != v2 || v1 == v3 {
		t.Fatalf("unexpected versions: %s %s %s", v1, v2, v3)
	}
}
