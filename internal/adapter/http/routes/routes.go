package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cloud_kitchen/internal/adapter/http/handlers"
	"cloud_kitchen/internal/adapter/http/middleware"
	"cloud_kitchen/internal/adapter/persistence/fallback"
	"cloud_kitchen/internal/adapter/persistence/filestore"
	"cloud_kitchen/internal/config"
	"cloud_kitchen/internal/domain/entities"
	"cloud_kitchen/internal/infrastructure/messaging"
	"cloud_kitchen/internal/infrastructure/seed"
	"cloud_kitchen/internal/usecase"
	"cloud_kitchen/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

var router = gin.Default()

const shutdownTimeout = 10 * time.Second

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setMiddlewares()
	shutdown := getRoutes(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.Port), Handler: router}
	if err := listenAndServe(ctx, srv, shutdown, shutdownTimeout); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// listenAndServe runs srv until it fails or ctx is done, then drains
// in-flight requests and calls release exactly once.
func listenAndServe(ctx context.Context, srv *http.Server, release func(), timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		release()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[routes][listenAndServe] shutting down addr=%s", srv.Addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	release()
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// getRoutes wires stores, use cases and handlers. The returned func releases
// connections and waits for in-flight mirror writes.
func getRoutes(cfg config.Config) func() {
	ctx := context.Background()

	remote := openRemoteStores(ctx, cfg)

	orderPolicy := fallback.NewPolicy(fallback.Options{
		Name:           "order",
		PrimaryEnabled: remote.enabled,
		Mirror:         true,
		MirrorTimeout:  cfg.MirrorTimeout,
	})
	kitchenPolicy := fallback.NewPolicy(fallback.Options{Name: "kitchen", PrimaryEnabled: remote.enabled})
	menuPolicy := fallback.NewPolicy(fallback.Options{Name: "menu", PrimaryEnabled: remote.enabled})

	orderRepo := fallback.NewOrderRepository(remote.orders, filestore.NewOrderFileRepository(cfg.DataDir), orderPolicy)
	kitchenRepo := fallback.NewKitchenStatusRepository(remote.kitchen, filestore.NewKitchenStatusFileRepository(cfg.DataDir), kitchenPolicy)
	menuRepo := fallback.NewMenuRepository(remote.menu, filestore.NewMenuFileRepository(cfg.DataDir), menuPolicy)

	var publisher interfaces.IOrderEventPublisher
	closers := remote.closers
	if cfg.AMQPURL != "" {
		conn, err := messaging.Connect(cfg.AMQPURL)
		if err != nil {
			log.Printf("[routes] order events disabled err=%v", err)
		} else {
			publisher = messaging.NewRabbitMQPublisher(conn)
			closers = append(closers, func() { _ = conn.Close() })
		}
	}

	orderUseCase := usecase.NewOrderUseCase(orderRepo, publisher, cfg.Location())
	kitchenUseCase := usecase.NewKitchenUseCase(kitchenRepo)
	menuUseCase := usecase.NewMenuUseCase(menuRepo, menuSeed(cfg.MenuSeedPath))

	orderHandler := handlers.NewOrderHandler(orderUseCase, kitchenUseCase)
	kitchenHandler := handlers.NewKitchenHandler(kitchenUseCase)
	menuHandler := handlers.NewMenuHandler(menuUseCase)

	v1 := router.Group("/v1")
	v1.Use(middleware.DetectAdmin(cfg.AdminAPIKey))
	addPingRoutes(v1)
	addOrderRoutes(v1, orderHandler)
	addKitchenRoutes(v1, kitchenHandler)
	addMenuRoutes(v1, menuHandler)

	return func() {
		orderPolicy.Wait()
		for _, c := range closers {
			c()
		}
	}
}

func menuSeed(path string) usecase.MenuSeedFunc {
	if path == "" {
		return seed.DefaultMenu
	}
	return func() (entities.Menu, error) {
		return seed.LoadMenuFile(path)
	}
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
