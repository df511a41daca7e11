package request

import "cloud_kitchen/internal/domain/entities"

type MenuRequest struct {
	Menu *entities.Menu `json:"menu" binding:"required"`
}
