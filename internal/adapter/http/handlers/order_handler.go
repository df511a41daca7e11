package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"cloud_kitchen/internal/adapter/http/dto/request"
	"cloud_kitchen/internal/adapter/http/dto/response"
	"cloud_kitchen/internal/adapter/http/middleware"
	"cloud_kitchen/internal/adapter/persistence/fallback"
	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase"
	"cloud_kitchen/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Please provide complete delivery details.", http.StatusBadRequest)
	errPhoneRequired       = pkg.NewDomainErrorSimple("PHONE_REQUIRED", "Phone number is required.", http.StatusBadRequest)
)

// OrderHandler serves checkout, tracking and the admin order board.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
	kitchen usecase.IKitchenUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase, kitchen usecase.IKitchenUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc, kitchen: kitchen}
}

// CreateOrder places an order. Checkout is refused while the kitchen is closed.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	if status := h.kitchen.GetStatus(c.Request.Context()); !status.IsOpen {
		log.Printf("[order][handler] create rejected, kitchen closed")
		appErr := pkg.NewDomainErrorSimple("KITCHEN_CLOSED", status.Message, http.StatusServiceUnavailable)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[order][handler] invalid payload err=%v", err)
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.OrderEnvelope{Order: response.FromOrder(order)})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.ListOrders(c.Request.Context())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

func (h *OrderHandler) GetOrdersByPhone(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		c.JSON(errPhoneRequired.HTTPStatus, errPhoneRequired.ToHTTPError())
		return
	}

	orders, err := h.usecase.GetOrdersByPhone(c.Request.Context(), phone)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// GetOrder serves customer tracking when a phone is given and admin lookups otherwise.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")

	var (
		order entities.Order
		err   error
	)
	switch phone := strings.TrimSpace(c.Query("phone")); {
	case phone != "":
		order, err = h.usecase.GetOrderForTracking(c.Request.Context(), id, phone)
	case middleware.IsAdmin(c):
		order, err = h.usecase.GetOrder(c.Request.Context(), id)
	default:
		c.JSON(errPhoneRequired.HTTPStatus, errPhoneRequired.ToHTTPError())
		return
	}
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelope{Order: response.FromOrder(order)})
}

func (h *OrderHandler) OrdersVersion(c *gin.Context) {
	version, err := h.usecase.OrdersVersion(c.Request.Context())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.VersionResponse{Version: version})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("STATUS_REQUIRED", "Status is required.", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	order, err := h.usecase.UpdateOrderStatus(c.Request.Context(), id, payload.ResolveStatus())
	if err != nil {
		log.Printf("[order][handler] status update failed id=%s status=%q err=%v", id, payload.Status, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelope{Order: response.FromOrder(order)})
}

// CancelOrder lets an admin cancel any open order and a customer cancel their own
// by proving the checkout phone. The body is optional for admins.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id := c.Param("id")

	var payload request.CancelOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	in := usecase.CancelOrderInput{ID: id, Reason: payload.Reason, Actor: entities.ActorCustomer, Phone: payload.Phone}
	if middleware.IsAdmin(c) {
		in.Actor, in.Phone = entities.ActorAdmin, ""
	} else if strings.TrimSpace(payload.Phone) == "" {
		c.JSON(errPhoneRequired.HTTPStatus, errPhoneRequired.ToHTTPError())
		return
	}

	order, err := h.usecase.CancelOrder(c.Request.Context(), in)
	if err != nil {
		log.Printf("[order][handler] cancel failed id=%s actor=%s err=%v", id, in.Actor, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelope{Order: response.FromOrder(order)})
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrEmptyCart):
		return pkg.NewDomainErrorSimple("EMPTY_CART", "Your cart is empty.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingPhone):
		return errPhoneRequired
	case errors.Is(err, usecase.ErrMissingOrderID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Order id is required.", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("UNKNOWN_STATUS", "Unknown order status.", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnauthorized):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Phone number does not match this order.", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Order cannot move to that status.", http.StatusConflict)
	case errors.Is(err, entities.ErrTerminalState):
		return pkg.NewDomainErrorSimple("ORDER_CLOSED", "Order can no longer be changed.", http.StatusConflict)
	case errors.Is(err, fallback.ErrStorageUnavailable):
		return pkg.NewDomainError("STORAGE_UNAVAILABLE", "Orders are temporarily unavailable.", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
