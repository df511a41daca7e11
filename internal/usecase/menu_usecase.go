package usecase

//go:generate mockgen -source=menu_usecase.go -destination=../adapter/http/handlers/mocks/mock_menu_usecase.go -package=mocks

import (
	"context"
	"log"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"
)

// MenuSeedFunc provides the menu stored on first read.
type MenuSeedFunc func() (entities.Menu, error)

type IMenuUseCase interface {
	GetMenu(ctx context.Context) (entities.Menu, error)
	UpdateMenu(ctx context.Context, menu entities.Menu) (entities.Menu, error)
	MenuVersion(ctx context.Context) (string, error)
}

type MenuUseCase struct {
	repo interfaces.IMenuRepository
	seed MenuSeedFunc
}

var _ IMenuUseCase = (*MenuUseCase)(nil)

func NewMenuUseCase(repo interfaces.IMenuRepository, seed MenuSeedFunc) *MenuUseCase {
	return &MenuUseCase{repo: repo, seed: seed}
}

// GetMenu returns the stored menu. The first read ever seeds and persists the
// bundled menu so later reads are stable.
func (u *MenuUseCase) GetMenu(ctx context.Context) (entities.Menu, error) {
	menu, found, err := u.repo.Get(ctx)
	if err != nil {
		return entities.Menu{}, err
	}
	if found {
		return entities.NormalizeMenu(menu), nil
	}

	seeded := entities.NormalizeMenu(entities.Menu{})
	if u.seed != nil {
		m, err := u.seed()
		if err != nil {
			log.Printf("[menu][usecase] seed menu unavailable, using empty menu err=%v", err)
		} else {
			seeded = entities.NormalizeMenu(m)
		}
	}

	if err := u.repo.Put(ctx, seeded); err != nil {
		log.Printf("[menu][usecase] failed to persist seeded menu err=%v", err)
	} else {
		log.Printf("[menu][usecase] menu seeded categories=%d", len(seeded.Categories))
	}
	return seeded, nil
}

func (u *MenuUseCase) UpdateMenu(ctx context.Context, menu entities.Menu) (entities.Menu, error) {
	normalized := entities.NormalizeMenu(menu)
	if err := u.repo.Put(ctx, normalized); err != nil {
		log.Printf("[menu][usecase] menu update failed err=%v", err)
		return entities.Menu{}, err
	}
	log.Printf("[menu][usecase] menu updated categories=%d", len(normalized.Categories))
	return normalized, nil
}

func (u *MenuUseCase) MenuVersion(ctx context.Context) (string, error) {
	menu, err := u.GetMenu(ctx)
	if err != nil {
		return "", err
	}
	return fingerprint(menu)
}
