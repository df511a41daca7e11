package request

import "cloud_kitchen/internal/usecase"

// KitchenStatusRequest keeps IsOpen as a pointer so a missing flag can be told
// apart from false.
type KitchenStatusRequest struct {
	IsOpen  *bool  `json:"isOpen"`
	Message string `json:"message"`
}

func (r KitchenStatusRequest) ToInput() usecase.SetKitchenStatusInput {
	return usecase.SetKitchenStatusInput{IsOpen: r.IsOpen, Message: r.Message}
}
