package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
)

type MenuRepository struct {
	db Querier
}

var _ interfaces.IMenuRepository = (*MenuRepository)(nil)

func NewMenuRepository(db Querier) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) Get(ctx context.Context) (entities.Menu, bool, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `SELECT payload FROM menus WHERE id = $1`, entities.MenuRowID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Menu{}, false, nil
	}
	if err != nil {
		return entities.Menu{}, false, err
	}

	var menu entities.Menu
	if err := json.Unmarshal(payload, &menu); err != nil {
		return entities.Menu{}, false, fmt.Errorf("decode menu payload: %w", err)
	}
	return entities.NormalizeMenu(menu), true, nil
}

func (r *MenuRepository) Put(ctx context.Context, menu entities.Menu) error {
	payload, err := json.Marshal(entities.NormalizeMenu(menu))
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO menus (id, payload) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		entities.MenuRowID, payload,
	)
	return err
}
