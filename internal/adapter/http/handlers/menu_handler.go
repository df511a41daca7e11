package handlers

import (
	"log"
	"net/http"

	"cloud_kitchen/internal/adapter/http/dto/request"
	"cloud_kitchen/internal/adapter/http/dto/response"
	"cloud_kitchen/internal/usecase"
	"cloud_kitchen/pkg"

	"github.com/gin-gonic/gin"
)

var errMenuRequired = pkg.NewDomainErrorSimple("INVALID_MENU_INPUT", "Menu payload is required.", http.StatusBadRequest)

type MenuHandler struct {
	usecase usecase.IMenuUseCase
}

func NewMenuHandler(uc usecase.IMenuUseCase) *MenuHandler {
	return &MenuHandler{usecase: uc}
}

func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.usecase.GetMenu(c.Request.Context())
	if err != nil {
		log.Printf("[menu][handler] read failed err=%v", err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Unable to load the menu.", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.MenuEnvelope{Menu: menu})
}

func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	var payload request.MenuRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errMenuRequired.HTTPStatus, errMenuRequired.ToHTTPError())
		return
	}

	menu, err := h.usecase.UpdateMenu(c.Request.Context(), *payload.Menu)
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Failed to save menu data.", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.MenuEnvelope{Menu: menu})
}

func (h *MenuHandler) MenuVersion(c *gin.Context) {
	version, err := h.usecase.MenuVersion(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Unable to compute menu version.", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.VersionResponse{Version: version})
}
