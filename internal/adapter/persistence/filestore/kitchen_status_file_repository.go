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

// KitchenStatusFileRepository stores the kitchen status in <dataDir>/kitchen-status.json.
// The file is created with the default (open) status on first access.
type KitchenStatusFileRepository struct {
	path string
	mu   sync.Mutex
}

var _ interfaces.IKitchenStatusRepository = (*KitchenStatusFileRepository)(nil)

func NewKitchenStatusFileRepository(dataDir string) *KitchenStatusFileRepository {
	return &KitchenStatusFileRepository{path: filepath.Join(dataDir, KitchenStatusFileName)}
}

func (r *KitchenStatusFileRepository) Get(_ context.Context) (entities.KitchenStatus, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var status entities.KitchenStatus
	exists, err := readJSON(r.path, &status)
	switch {
	case err != nil && !errors.Is(err, errCorruptDocument):
		return entities.KitchenStatus{}, false, err
	case err != nil:
		log.Printf("[kitchen][filestore] resetting corrupt status file err=%v", err)
		exists = false
	}
	if !exists {
		status = entities.DefaultKitchenStatus()
		if err := writeJSON(r.path, status); err != nil {
			return entities.KitchenStatus{}, false, err
		}
	}
	return status.Normalized(), true, nil
}

func (r *KitchenStatusFileRepository) Put(_ context.Context, status entities.KitchenStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeJSON(r.path, status.Normalized())
}
