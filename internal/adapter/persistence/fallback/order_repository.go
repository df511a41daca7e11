package fallback

import (
	"context"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"
)

// OrderRepository reads and writes orders remote-first with a file-store fallback.
// Fallback writes are mirrored back to the remote store when the policy allows it.
type OrderRepository struct {
	primary   interfaces.IOrderRepository
	secondary interfaces.IOrderRepository
	policy    *Policy
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(primary, secondary interfaces.IOrderRepository, policy *Policy) *OrderRepository {
	return &OrderRepository{primary: primary, secondary: secondary, policy: policy}
}

func (r *OrderRepository) Create(ctx context.Context, o entities.Order) error {
	return r.policy.Write(ctx, "create",
		func(ctx context.Context) error { return r.primary.Create(ctx, o) },
		func(ctx context.Context) error { return r.secondary.Create(ctx, o) },
		func(ctx context.Context) error { return r.primary.Update(ctx, o) },
	)
}

func (r *OrderRepository) Update(ctx context.Context, o entities.Order) error {
	return r.policy.Write(ctx, "update",
		func(ctx context.Context) error { return r.primary.Update(ctx, o) },
		func(ctx context.Context) error { return r.secondary.Update(ctx, o) },
		func(ctx context.Context) error { return r.primary.Update(ctx, o) },
	)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	return Read(ctx, r.policy, "get-by-id",
		func(ctx context.Context) (entities.Order, error) { return r.primary.GetByID(ctx, id) },
		func(ctx context.Context) (entities.Order, error) { return r.secondary.GetByID(ctx, id) },
	)
}

func (r *OrderRepository) GetByPublicID(ctx context.Context, publicID string) (entities.Order, error) {
	return Read(ctx, r.policy, "get-by-public-id",
		func(ctx context.Context) (entities.Order, error) { return r.primary.GetByPublicID(ctx, publicID) },
		func(ctx context.Context) (entities.Order, error) { return r.secondary.GetByPublicID(ctx, publicID) },
	)
}

func (r *OrderRepository) ListByPhoneKey(ctx context.Context, phoneKey string) ([]entities.Order, error) {
	return Read(ctx, r.policy, "list-by-phone",
		func(ctx context.Context) ([]entities.Order, error) { return r.primary.ListByPhoneKey(ctx, phoneKey) },
		func(ctx context.Context) ([]entities.Order, error) { return r.secondary.ListByPhoneKey(ctx, phoneKey) },
	)
}

func (r *OrderRepository) List(ctx context.Context) ([]entities.Order, error) {
	return Read(ctx, r.policy, "list",
		func(ctx context.Context) ([]entities.Order, error) { return r.primary.List(ctx) },
		func(ctx context.Context) ([]entities.Order, error) { return r.secondary.List(ctx) },
	)
}
