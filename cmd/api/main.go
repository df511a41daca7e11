package main

import (
	"cloud_kitchen/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// Cloud kitchen ordering API.
//
// Base path: /v1
// Admin routes expect "Authorization: Bearer <ADMIN_API_KEY>".

func main() {
	routes.Run()
}
