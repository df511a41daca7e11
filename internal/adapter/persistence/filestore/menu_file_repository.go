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

// MenuFileRepository stores the active menu in <dataDir>/menu.json.
// A missing or corrupt file reads as "not found" so the caller can seed it.
type MenuFileRepository struct {
	path string
	mu   sync.Mutex
}

var _ interfaces.IMenuRepository = (*MenuFileRepository)(nil)

func NewMenuFileRepository(dataDir string) *MenuFileRepository {
	return &MenuFileRepository{path: filepath.Join(dataDir, MenuFileName)}
}

func (r *MenuFileRepository) Get(_ context.Context) (entities.Menu, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var menu entities.Menu
	exists, err := readJSON(r.path, &menu)
	if err != nil {
		if errors.Is(err, errCorruptDocument) {
			log.Printf("[menu][filestore] ignoring corrupt menu file err=%v", err)
			return entities.Menu{}, false, nil
		}
		return entities.Menu{}, false, err
	}
	if !exists {
		return entities.Menu{}, false, nil
	}
	return entities.NormalizeMenu(menu), true, nil
}

func (r *MenuFileRepository) Put(_ context.Context, menu entities.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeJSON(r.path, entities.NormalizeMenu(menu))
}
