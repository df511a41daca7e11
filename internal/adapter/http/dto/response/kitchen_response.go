package response

import "cloud_kitchen/internal/domain/entities"

type KitchenStatusResponse struct {
	IsOpen  bool   `json:"isOpen"`
	Message string `json:"message"`
}

func FromKitchenStatus(s entities.KitchenStatus) KitchenStatusResponse {
	return KitchenStatusResponse{IsOpen: s.IsOpen, Message: s.Message}
}

type MenuEnvelope struct {
	Menu entities.Menu `json:"menu"`
}
