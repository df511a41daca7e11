package handlers

import (
	"errors"
	"net/http"

	"cloud_kitchen/internal/adapter/http/dto/request"
	"cloud_kitchen/internal/adapter/http/dto/response"
	"cloud_kitchen/internal/usecase"
	"cloud_kitchen/pkg"

	"github.com/gin-gonic/gin"
)

var errMissingKitchenFlag = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Missing isOpen flag.", http.StatusBadRequest)

type KitchenHandler struct {
	usecase usecase.IKitchenUseCase
}

func NewKitchenHandler(uc usecase.IKitchenUseCase) *KitchenHandler {
	return &KitchenHandler{usecase: uc}
}

func (h *KitchenHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromKitchenStatus(h.usecase.GetStatus(c.Request.Context())))
}

func (h *KitchenHandler) SetStatus(c *gin.Context) {
	var payload request.KitchenStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errMissingKitchenFlag.HTTPStatus, errMissingKitchenFlag.ToHTTPError())
		return
	}

	status, err := h.usecase.SetStatus(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapKitchenError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromKitchenStatus(status))
}

func mapKitchenError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrInvalidKitchenStatus) {
		return errMissingKitchenFlag
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "Failed to update kitchen status.", err, http.StatusInternalServerError)
}
