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

const orderColumns = `id, public_id, tracking_phone_key, customer_name, customer_phone, building, apartment,
	items_summary, items_count, total, status, fulfillment_method, placed_at, scheduled_for,
	delivered_at, cancelled_at, order_data`

const insertOrderSQL = `INSERT INTO orders (` + orderColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

const upsertOrderSQL = insertOrderSQL + `
ON CONFLICT (id) DO UPDATE SET
	public_id = EXCLUDED.public_id,
	tracking_phone_key = EXCLUDED.tracking_phone_key,
	customer_name = EXCLUDED.customer_name,
	customer_phone = EXCLUDED.customer_phone,
	building = EXCLUDED.building,
	apartment = EXCLUDED.apartment,
	items_summary = EXCLUDED.items_summary,
	items_count = EXCLUDED.items_count,
	total = EXCLUDED.total,
	status = EXCLUDED.status,
	fulfillment_method = EXCLUDED.fulfillment_method,
	placed_at = EXCLUDED.placed_at,
	scheduled_for = EXCLUDED.scheduled_for,
	delivered_at = EXCLUDED.delivered_at,
	cancelled_at = EXCLUDED.cancelled_at,
	order_data = EXCLUDED.order_data,
	updated_at = now()`

const selectOrderSQL = `SELECT order_data, tracking_phone_key FROM orders`

// OrderRepository stores orders as a jsonb document plus summary columns.
type OrderRepository struct {
	db Querier
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(db Querier) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o entities.Order) error {
	args, err := orderArgs(o)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, insertOrderSQL, args...)
	return err
}

func (r *OrderRepository) Update(ctx context.Context, o entities.Order) error {
	args, err := orderArgs(o)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, upsertOrderSQL, args...)
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	return r.getOne(ctx, selectOrderSQL+` WHERE id = $1`, id)
}

func (r *OrderRepository) GetByPublicID(ctx context.Context, publicID string) (entities.Order, error) {
	return r.getOne(ctx, selectOrderSQL+` WHERE public_id = $1`, publicID)
}

func (r *OrderRepository) ListByPhoneKey(ctx context.Context, phoneKey string) ([]entities.Order, error) {
	if phoneKey == "" {
		return []entities.Order{}, nil
	}
	return r.list(ctx, selectOrderSQL+` WHERE tracking_phone_key = $1 ORDER BY placed_at DESC`, phoneKey)
}

func (r *OrderRepository) List(ctx context.Context) ([]entities.Order, error) {
	return r.list(ctx, selectOrderSQL+` ORDER BY placed_at DESC`)
}

func (r *OrderRepository) getOne(ctx context.Context, sql string, arg string) (entities.Order, error) {
	var (
		data []byte
		key  *string
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(&data, &key)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Order{}, nil
	}
	if err != nil {
		return entities.Order{}, err
	}
	return decodeOrder(data, key)
}

func (r *OrderRepository) list(ctx context.Context, sql string, args ...any) ([]entities.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		var (
			data []byte
			key  *string
		)
		if err := rows.Scan(&data, &key); err != nil {
			return nil, err
		}
		o, err := decodeOrder(data, key)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func orderArgs(o entities.Order) ([]any, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	s := entities.SummarizeOrder(o)
	return []any{
		o.ID,
		o.PublicID,
		nullIfEmpty(o.TrackingPhoneKey),
		s.CustomerName,
		s.CustomerPhone,
		s.Building,
		s.Apartment,
		s.ItemsSummary,
		s.ItemsCount,
		s.Total,
		string(s.Status),
		string(s.Method),
		s.PlacedAt,
		s.ScheduledFor,
		s.DeliveredAt,
		s.CancelledAt,
		data,
	}, nil
}

func decodeOrder(data []byte, key *string) (entities.Order, error) {
	var o entities.Order
	if err := json.Unmarshal(data, &o); err != nil {
		return entities.Order{}, fmt.Errorf("decode order_data: %w", err)
	}
	o.TrackingPhoneKey = ""
	if key != nil {
		o.TrackingPhoneKey = *key
	}
	return o, nil
}
