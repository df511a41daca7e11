package interfaces

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/mock_order_repository_interface.go -package=mock_interfaces

import (
	"context"

	"cloud_kitchen/internal/domain/entities"
)

// IOrderRepository abstracts order persistence.
//
// Implementations return a zero Order (empty ID) and a nil error when nothing matches,
// so callers can tell "missing" apart from a backend failure:
//   - Create inserts a freshly placed order
//   - Update replaces the stored document (upsert)
//   - List returns every order, in any order

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) error
	Update(ctx context.Context, o entities.Order) error
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByPublicID(ctx context.Context, publicID string) (entities.Order, error)
	ListByPhoneKey(ctx context.Context, phoneKey string) ([]entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
}
