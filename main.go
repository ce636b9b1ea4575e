// @title Predict This API
// @version 1.0
// @description Prediction quiz backend with answer validation and auto-scoring.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"predictthis_backend/internal/app"
	"predictthis_backend/internal/config"
	"predictthis_backend/pkg/configwatcher"
	"predictthis_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
