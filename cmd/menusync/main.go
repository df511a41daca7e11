// Command menusync pushes a menu document to the configured remote datastore.
//
//	menusync [path]
//
// Without a path it uses $DATA_DIR/menu.json when present and the bundled menu
// otherwise. YAML and JSON documents are accepted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"cloud_kitchen/internal/adapter/persistence/filestore"
	"cloud_kitchen/internal/adapter/persistence/postgres"
	"cloud_kitchen/internal/adapter/persistence/repository"
	"cloud_kitchen/internal/config"
	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/infrastructure/database"
	"cloud_kitchen/internal/infrastructure/seed"
	"cloud_kitchen/internal/usecase"
	"cloud_kitchen/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(context.Background(), cfg, path); err != nil {
		log.Fatalf("[menusync] %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, path string) error {
	menu, source, err := loadMenu(cfg.DataDir, path)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openMenuRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	saved, err := usecase.NewMenuUseCase(repo, nil).UpdateMenu(ctx, menu)
	if err != nil {
		return fmt.Errorf("push menu: %w", err)
	}

	items := 0
	for _, list := range saved.Items {
		items += len(list)
	}
	log.Printf("[menusync] menu pushed backend=%s source=%s categories=%d items=%d",
		cfg.RemoteBackend, source, len(saved.Categories), items)
	return nil
}

func loadMenu(dataDir, path string) (entities.Menu, string, error) {
	if path != "" {
		menu, err := seed.LoadMenuFile(path)
		if err != nil {
			return entities.Menu{}, "", fmt.Errorf("load %s: %w", path, err)
		}
		return menu, path, nil
	}

	local := filepath.Join(dataDir, filestore.MenuFileName)
	menu, err := seed.LoadMenuFile(local)
	switch {
	case err == nil:
		return menu, local, nil
	case errors.Is(err, fs.ErrNotExist):
		menu, err = seed.DefaultMenu()
		if err != nil {
			return entities.Menu{}, "", fmt.Errorf("load bundled menu: %w", err)
		}
		return menu, "bundled", nil
	default:
		return entities.Menu{}, "", fmt.Errorf("load %s: %w", local, err)
	}
}

func openMenuRepository(ctx context.Context, cfg config.Config) (interfaces.IMenuRepository, func(), error) {
	switch cfg.RemoteBackend {
	case config.BackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMenuDynamoRepository(ddb, cfg.MenusTable), func() {}, nil
	case config.BackendPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewMenuRepository(pool), pool.Close, nil
	default:
		return nil, nil, errors.New("REMOTE_BACKEND must be dynamodb or postgres")
	}
}
