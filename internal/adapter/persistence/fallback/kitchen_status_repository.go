package fallback

import (
	"context"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"
)

type kitchenStatusResult struct {
	status entities.KitchenStatus
	found  bool
}

// KitchenStatusRepository prefers the remote value, then the file value.
// Unlike orders, a remote store without a row also defers to the file store.
type KitchenStatusRepository struct {
	primary   interfaces.IKitchenStatusRepository
	secondary interfaces.IKitchenStatusRepository
	policy    *Policy
}

var _ interfaces.IKitchenStatusRepository = (*KitchenStatusRepository)(nil)

func NewKitchenStatusRepository(primary, secondary interfaces.IKitchenStatusRepository, policy *Policy) *KitchenStatusRepository {
	return &KitchenStatusRepository{primary: primary, secondary: secondary, policy: policy}
}

func (r *KitchenStatusRepository) Get(ctx context.Context) (entities.KitchenStatus, bool, error) {
	res, err := Read(ctx, r.policy, "get",
		func(ctx context.Context) (kitchenStatusResult, error) {
			s, found, err := r.primary.Get(ctx)
			if err != nil {
				return kitchenStatusResult{}, err
			}
			if !found {
				return kitchenStatusResult{}, errNoValue
			}
			return kitchenStatusResult{status: s, found: true}, nil
		},
		func(ctx context.Context) (kitchenStatusResult, error) {
			s, found, err := r.secondary.Get(ctx)
			return kitchenStatusResult{status: s, found: found}, err
		},
	)
	return res.status, res.found, err
}

func (r *KitchenStatusRepository) Put(ctx context.Context, status entities.KitchenStatus) error {
	return r.policy.Write(ctx, "put",
		func(ctx context.Context) error { return r.primary.Put(ctx, status) },
		func(ctx context.Context) error { return r.secondary.Put(ctx, status) },
		func(ctx context.Context) error { return r.primary.Put(ctx, status) },
	)
}
