package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendNone     = ""
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
)

// Config is read once at startup from the environment (a .env file is auto-loaded
// by the binaries).
type Config struct {
	Port    int
	DataDir string

	// RemoteBackend selects the primary store; empty means file store only.
	RemoteBackend string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	OrdersTable        string
	KitchenTable       string
	MenusTable         string

	DatabaseURL string
	AMQPURL     string

	AdminAPIKey     string
	MenuSeedPath    string
	KitchenTimezone string
	MirrorTimeout   time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		DataDir:            getenvDefault("DATA_DIR", "./data"),
		RemoteBackend:      strings.ToLower(strings.TrimSpace(os.Getenv("REMOTE_BACKEND"))),
		AWSRegion:          getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   os.Getenv("DYNAMODB_ENDPOINT"),
		OrdersTable:        getenvDefault("ORDERS_TABLE", "orders"),
		KitchenTable:       getenvDefault("KITCHEN_TABLE", "kitchen_status"),
		MenusTable:         getenvDefault("MENUS_TABLE", "menus"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		MenuSeedPath:       os.Getenv("MENU_SEED_PATH"),
		KitchenTimezone:    os.Getenv("KITCHEN_TIMEZONE"),
	}

	port, err := strconv.Atoi(getenvDefault("PORT", "8080"))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	mirrorTimeout, err := time.ParseDuration(getenvDefault("MIRROR_TIMEOUT", "5s"))
	if err != nil || mirrorTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid MIRROR_TIMEOUT %q", os.Getenv("MIRROR_TIMEOUT"))
	}
	cfg.MirrorTimeout = mirrorTimeout

	switch cfg.RemoteBackend {
	case BackendNone, BackendDynamoDB:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("REMOTE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown REMOTE_BACKEND %q", cfg.RemoteBackend)
	}

	if cfg.AdminAPIKey == "" {
		log.Printf("[config] ADMIN_API_KEY is empty; admin routes will reject every request")
	}
	return cfg, nil
}

// Location returns the kitchen's time zone for interpreting scheduled orders.
// An unknown name falls back to the process local zone.
func (c Config) Location() *time.Location {
	if c.KitchenTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.KitchenTimezone)
	if err != nil {
		log.Printf("[config] unknown KITCHEN_TIMEZONE=%q, using local time err=%v", c.KitchenTimezone, err)
		return time.Local
	}
	return loc
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
