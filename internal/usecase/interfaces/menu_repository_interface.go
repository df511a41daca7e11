package interfaces

//go:generate mockgen -source=menu_repository_interface.go -destination=mocks/mock_menu_repository_interface.go -package=mock_interfaces

import (
	"context"

	"cloud_kitchen/internal/domain/entities"
)

// IMenuRepository stores the active menu document.
// Get reports found=false when no menu was ever stored.

type IMenuRepository interface {
	Get(ctx context.Context) (menu entities.Menu, found bool, err error)
	Put(ctx context.Context, menu entities.Menu) error
}
