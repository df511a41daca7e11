package entities

import (
	"encoding/json"
	"strings"
)

const DefaultKitchenMessage = "We will be back shortly."

// KitchenStatus is the singleton open/closed flag shown to customers.
type KitchenStatus struct {
	IsOpen  bool   `json:"isOpen"`
	Message string `json:"message"`
}

func DefaultKitchenStatus() KitchenStatus {
	return KitchenStatus{IsOpen: true, Message: DefaultKitchenMessage}
}

// Normalized fills a blank message with the default one.
func (k KitchenStatus) Normalized() KitchenStatus {
	if strings.TrimSpace(k.Message) == "" {
		k.Message = DefaultKitchenMessage
	}
	return k
}

// UnmarshalJSON treats a missing or non-boolean isOpen as open.
func (k *KitchenStatus) UnmarshalJSON(data []byte) error {
	var raw struct {
		IsOpen  any    `json:"isOpen"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	isOpen, ok := raw.IsOpen.(bool)
	if !ok {
		isOpen = true
	}
	*k = KitchenStatus{IsOpen: isOpen, Message: raw.Message}.Normalized()
	return nil
}
