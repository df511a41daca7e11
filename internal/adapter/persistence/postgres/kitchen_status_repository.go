package postgres

import (
	"context"
	"errors"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
)

const kitchenStatusRowID = "kitchen"

type KitchenStatusRepository struct {
	db Querier
}

var _ interfaces.IKitchenStatusRepository = (*KitchenStatusRepository)(nil)

func NewKitchenStatusRepository(db Querier) *KitchenStatusRepository {
	return &KitchenStatusRepository{db: db}
}

func (r *KitchenStatusRepository) Get(ctx context.Context) (entities.KitchenStatus, bool, error) {
	var status entities.KitchenStatus
	err := r.db.QueryRow(ctx,
		`SELECT is_open, message FROM kitchen_status WHERE id = $1`, kitchenStatusRowID,
	).Scan(&status.IsOpen, &status.Message)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.KitchenStatus{}, false, nil
	}
	if err != nil {
		return entities.KitchenStatus{}, false, err
	}
	return status.Normalized(), true, nil
}

func (r *KitchenStatusRepository) Put(ctx context.Context, status entities.KitchenStatus) error {
	status = status.Normalized()
	_, err := r.db.Exec(ctx,
		`INSERT INTO kitchen_status (id, is_open, message) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET is_open = EXCLUDED.is_open, message = EXCLUDED.message, updated_at = now()`,
		kitchenStatusRowID, status.IsOpen, status.Message,
	)
	return err
}
