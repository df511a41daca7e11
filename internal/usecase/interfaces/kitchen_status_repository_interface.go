package interfaces

//go:generate mockgen -source=kitchen_status_repository_interface.go -destination=mocks/mock_kitchen_status_repository_interface.go -package=mock_interfaces

import (
	"context"

	"cloud_kitchen/internal/domain/entities"
)

// IKitchenStatusRepository stores the kitchen open/closed singleton.
// Get reports found=false when no status was ever stored.

type IKitchenStatusRepository interface {
	Get(ctx context.Context) (status entities.KitchenStatus, found bool, err error)
	Put(ctx context.Context, status entities.KitchenStatus) error
}
