package routes

import (
	"context"
	"log"

	"cloud_kitchen/internal/adapter/persistence/postgres"
	"cloud_kitchen/internal/adapter/persistence/repository"
	"cloud_kitchen/internal/config"
	"cloud_kitchen/internal/infrastructure/database"
	"cloud_kitchen/internal/usecase/interfaces"
)

// remoteStores holds the primary datastore drivers. When enabled is false the
// fallback policies never call them and the file store serves every request.
type remoteStores struct {
	enabled bool
	orders  interfaces.IOrderRepository
	kitchen interfaces.IKitchenStatusRepository
	menu    interfaces.IMenuRepository
	closers []func()
}

func openRemoteStores(ctx context.Context, cfg config.Config) remoteStores {
	switch cfg.RemoteBackend {
	case config.BackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			log.Printf("[routes] dynamodb unavailable, using file store only err=%v", err)
			return remoteStores{}
		}
		log.Printf("[routes] primary store dynamodb orders_table=%s", cfg.OrdersTable)
		return remoteStores{
			enabled: true,
			orders:  repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable),
			kitchen: repository.NewKitchenStatusDynamoRepository(ddb, cfg.KitchenTable),
			menu:    repository.NewMenuDynamoRepository(ddb, cfg.MenusTable),
		}

	case config.BackendPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("[routes] postgres unavailable, using file store only err=%v", err)
			return remoteStores{}
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Printf("[routes] postgres migrations failed, using file store only err=%v", err)
			pool.Close()
			return remoteStores{}
		}
		log.Printf("[routes] primary store postgres")
		return remoteStores{
			enabled: true,
			orders:  postgres.NewOrderRepository(pool),
			kitchen: postgres.NewKitchenStatusRepository(pool),
			menu:    postgres.NewMenuRepository(pool),
			closers: []func(){pool.Close},
		}

	default:
		log.Printf("[routes] no REMOTE_BACKEND configured, using file store only")
		return remoteStores{}
	}
}
