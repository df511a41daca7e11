package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud_kitchen/internal/adapter/http/dto/response"
	"cloud_kitchen/internal/adapter/http/handlers/mocks"
	"cloud_kitchen/internal/adapter/http/middleware"
	"cloud_kitchen/internal/adapter/persistence/fallback"
	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const testAdminKey = "admin-key"

func newOrderRouter(h *OrderHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.DetectAdmin(testAdminKey))
	r.POST("/v1/orders", h.CreateOrder)
	r.GET("/v1/orders", middleware.RequireAdmin(), h.ListOrders)
	r.GET("/v1/orders/by-phone", h.GetOrdersByPhone)
	r.GET("/v1/orders/version", h.OrdersVersion)
	r.GET("/v1/orders/:id", h.GetOrder)
	r.PATCH("/v1/orders/:id/status", middleware.RequireAdmin(), h.UpdateOrderStatus)
	r.POST("/v1/orders/:id/cancel", h.CancelOrder)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+testAdminKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleOrder() entities.Order {
	now := time.Now().UTC()
	return entities.Order{
		ID:            "o-1",
		PublicID:      "ORD-2026-ABCDEF",
		Items:         []entities.OrderItem{{ID: "a", Name: "Samosa", Quantity: 2, Price: 3}},
		Subtotal:      6,
		Total:         6,
		Status:        entities.OrderStatusPending,
		StatusHistory: []entities.StatusHistoryEntry{{Status: entities.OrderStatusPending, Timestamp: now}},
		PlacedAt:      now,
	}
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := `{"customer":{"name":"Asha","phone":"(555) 123-4567","building":"B","apartment":"4"},` +
		`"items":[{"id":"a","name":"Samosa","quantity":2,"price":3}],"totals":{"deliveryFee":0},"fulfillment":{"method":"delivery"}}`

	t.Run("kitchen closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		kitchen := mocks.NewMockIKitchenUseCase(ctrl)
		kitchen.EXPECT().GetStatus(gomock.Any()).Return(entities.KitchenStatus{IsOpen: false, Message: "Back at 6pm"})

		w := doJSON(newOrderRouter(NewOrderHandler(uc, kitchen)), http.MethodPost, "/v1/orders", body, false)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte("Back at 6pm")) {
			t.Fatalf("expected kitchen message, got %s", w.Body.String())
		}
	})

	t.Run("missing customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		kitchen := mocks.NewMockIKitchenUseCase(ctrl)
		kitchen.EXPECT().GetStatus(gomock.Any()).Return(entities.DefaultKitchenStatus())

		w := doJSON(newOrderRouter(NewOrderHandler(uc, kitchen)), http.MethodPost, "/v1/orders", `{"items":[]}`, false)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		kitchen := mocks.NewMockIKitchenUseCase(ctrl)
		kitchen.EXPECT().GetStatus(gomock.Any()).Return(entities.DefaultKitchenStatus())
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.Order{}, usecase.ErrEmptyCart)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, kitchen)), http.MethodPost, "/v1/orders", `{"customer":{},"items":[]}`, false)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("storage unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		kitchen := mocks.NewMockIKitchenUseCase(ctrl)
		kitchen.EXPECT().GetStatus(gomock.Any()).Return(entities.DefaultKitchenStatus())
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.Order{}, fallback.ErrStorageUnavailable)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, kitchen)), http.MethodPost, "/v1/orders", body, false)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		kitchen := mocks.NewMockIKitchenUseCase(ctrl)
		kitchen.EXPECT().GetStatus(gomock.Any()).Return(entities.DefaultKitchenStatus())
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in usecase.CreateOrderInput) (entities.Order, error) {
				if in.Customer.Phone != "(555) 123-4567" || len(in.Items) != 1 || in.Items[0].Quantity != 2 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return sampleOrder(), nil
			},
		)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, kitchen)), http.MethodPost, "/v1/orders", body, false)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		var res response.OrderEnvelope
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if res.Order.PublicID != "ORD-2026-ABCDEF" || res.Order.Total != 6 || res.Order.Status != "Pending" {
			t.Fatalf("unexpected response: %+v", res.Order)
		}
	})
}

func TestOrderHandler_ListAndVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list requires admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders", "", false)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().ListOrders(gomock.Any()).Return([]entities.Order{sampleOrder()}, nil)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders", "", true)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var res response.OrdersEnvelope
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || len(res.Orders) != 1 {
			t.Fatalf("unexpected response: %s", w.Body.String())
		}
	})

	t.Run("version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().OrdersVersion(gomock.Any()).Return("abc123", nil)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders/version", "", false)
		if w.Code != http.StatusOK || w.Body.String() != `{"version":"abc123"}` {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}

func TestOrderHandler_GetOrdersByPhone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders/by-phone", "", false)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().GetOrdersByPhone(gomock.Any(), "5551234567").Return(nil, usecase.ErrOrderNotFound)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders/by-phone?phone=5551234567", "", false)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("tracking with phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().GetOrderForTracking(gomock.Any(), "o-1", "5551234567").Return(sampleOrder(), nil)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders/o-1?phone=5551234567", "", false)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("admin lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().GetOrder(gomock.Any(), "ORD-2026-ABCDEF").Return(sampleOrder(), nil)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders/ORD-2026-ABCDEF", "", true)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("anonymous without phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodGet, "/v1/orders/o-1", "", false)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"missing status", `{}`, nil, http.StatusBadRequest},
		{"unknown status", `{"status":"Teleported"}`, entities.ErrUnknownStatus, http.StatusBadRequest},
		{"invalid transition", `{"status":"Delivered"}`, entities.ErrInvalidTransition, http.StatusConflict},
		{"not found", `{"status":"Preparing"}`, usecase.ErrOrderNotFound, http.StatusNotFound},
		{"unexpected", `{"status":"Preparing"}`, errors.New("boom"), http.StatusInternalServerError},
		{"success", `{"status":"Preparing"}`, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIOrderUseCase(ctrl)
			if tt.body != `{}` {
				order := sampleOrder()
				order.Status = entities.OrderStatusPreparing
				if tt.err != nil {
					order = entities.Order{}
				}
				uc.EXPECT().UpdateOrderStatus(gomock.Any(), "o-1", gomock.Any()).Return(order, tt.err)
			}

			w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodPatch, "/v1/orders/o-1/status", tt.body, true)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}

	t.Run("requires admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodPatch, "/v1/orders/o-1/status", `{"status":"Preparing"}`, false)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("customer without phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodPost, "/v1/orders/o-1/cancel", `{"reason":"late"}`, false)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("customer phone mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().CancelOrder(gomock.Any(), usecase.CancelOrderInput{ID: "o-1", Reason: "late", Phone: "555", Actor: entities.ActorCustomer}).
			Return(entities.Order{}, entities.ErrUnauthorized)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodPost, "/v1/orders/o-1/cancel", `{"reason":"late","phone":"555"}`, false)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("admin with empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		cancelled := sampleOrder()
		cancelled.Status = entities.OrderStatusCancelled
		uc.EXPECT().CancelOrder(gomock.Any(), usecase.CancelOrderInput{ID: "o-1", Actor: entities.ActorAdmin}).Return(cancelled, nil)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodPost, "/v1/orders/o-1/cancel", "", true)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("terminal order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().CancelOrder(gomock.Any(), gomock.Any()).Return(entities.Order{}, entities.ErrTerminalState)

		w := doJSON(newOrderRouter(NewOrderHandler(uc, nil)), http.MethodPost, "/v1/orders/o-1/cancel", `{}`, true)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}
