package fallback

import (
	"context"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"
)

type menuResult struct {
	menu  entities.Menu
	found bool
}

// MenuRepository keeps the active menu remote-first with a file-store fallback.
// A reachable remote store without a menu row answers "not found" so the caller
// seeds the remote store rather than the file.
type MenuRepository struct {
	primary   interfaces.IMenuRepository
	secondary interfaces.IMenuRepository
	policy    *Policy
}

var _ interfaces.IMenuRepository = (*MenuRepository)(nil)

func NewMenuRepository(primary, secondary interfaces.IMenuRepository, policy *Policy) *MenuRepository {
	return &MenuRepository{primary: primary, secondary: secondary, policy: policy}
}

func (r *MenuRepository) Get(ctx context.Context) (entities.Menu, bool, error) {
	res, err := Read(ctx, r.policy, "get",
		func(ctx context.Context) (menuResult, error) {
			m, found, err := r.primary.Get(ctx)
			return menuResult{menu: m, found: found}, err
		},
		func(ctx context.Context) (menuResult, error) {
			m, found, err := r.secondary.Get(ctx)
			return menuResult{menu: m, found: found}, err
		},
	)
	return res.menu, res.found, err
}

func (r *MenuRepository) Put(ctx context.Context, menu entities.Menu) error {
	return r.policy.Write(ctx, "put",
		func(ctx context.Context) error { return r.primary.Put(ctx, menu) },
		func(ctx context.Context) error { return r.secondary.Put(ctx, menu) },
		func(ctx context.Context) error { return r.primary.Put(ctx, menu) },
	)
}
