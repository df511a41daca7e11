package filestore

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"sync"

	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/usecase/interfaces"
)

type ordersDocument struct {
	Orders []entities.Order `json:"orders"`
}

// OrderFileRepository stores orders in <dataDir>/orders.json, newest first.
//
// A missing file reads as an empty list. A corrupt file is logged and treated as
// empty; the next write replaces it.
type OrderFileRepository struct {
	path string
	mu   sync.Mutex
}

var _ interfaces.IOrderRepository = (*OrderFileRepository)(nil)

func NewOrderFileRepository(dataDir string) *OrderFileRepository {
	return &OrderFileRepository{path: filepath.Join(dataDir, OrdersFileName)}
}

func (r *OrderFileRepository) load() ([]entities.Order, error) {
	var doc ordersDocument
	if _, err := readJSON(r.path, &doc); err != nil {
		if !errors.Is(err, errCorruptDocument) {
			return nil, err
		}
		log.Printf("[order][filestore] resetting corrupt orders file err=%v", err)
		return []entities.Order{}, nil
	}
	if doc.Orders == nil {
		doc.Orders = []entities.Order{}
	}
	return doc.Orders, nil
}

func (r *OrderFileRepository) save(orders []entities.Order) error {
	return writeJSON(r.path, ordersDocument{Orders: orders})
}

func (r *OrderFileRepository) Create(_ context.Context, o entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return err
	}
	orders = append([]entities.Order{o.Clone()}, orders...)
	return r.save(orders)
}

// Update replaces the stored order with the same id, or prepends it when absent
// (an order created remotely can be updated here while the remote is down).
func (r *OrderFileRepository) Update(_ context.Context, o entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = o.Clone()
			return r.save(orders)
		}
	}
	orders = append([]entities.Order{o.Clone()}, orders...)
	return r.save(orders)
}

func (r *OrderFileRepository) GetByID(_ context.Context, id string) (entities.Order, error) {
	return r.find(func(o entities.Order) bool { return o.ID == id })
}

func (r *OrderFileRepository) GetByPublicID(_ context.Context, publicID string) (entities.Order, error) {
	return r.find(func(o entities.Order) bool { return o.PublicID == publicID })
}

func (r *OrderFileRepository) ListByPhoneKey(_ context.Context, phoneKey string) ([]entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]entities.Order, 0)
	for _, o := range orders {
		if phoneKey != "" && o.TrackingPhoneKey == phoneKey {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OrderFileRepository) List(_ context.Context) ([]entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *OrderFileRepository) find(match func(entities.Order) bool) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return entities.Order{}, err
	}
	for _, o := range orders {
		if match(o) {
			return o, nil
		}
	}
	return entities.Order{}, nil
}
