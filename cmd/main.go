package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inventory/internal/config"
	"inventory/internal/handlers"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
)

func main() {
	// Best effort; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Postgres schemas are managed by migrations; a sqlite kiosk bootstraps
	// its own file.
	if cfg.DBType == "sqlite" {
		err = db.AutoMigrate(
			&models.User{},
			&models.Manufacturer{},
			&models.Part{},
			&models.Checkout{},
		)
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get generic DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(cfg.DBConnectionLimit / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	userRepo := repositories.NewUserRepository(db)
	mfrRepo := repositories.NewManufacturerRepository(db)
	partRepo := repositories.NewPartRepository(db)
	checkoutRepo := repositories.NewCheckoutRepository(db)

	svc := services.NewInventoryService(db, userRepo, mfrRepo, partRepo, checkoutRepo, services.LogPrinter{})

	router := gin.Default()

	handlers.RegisterRoutes(router, svc)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// connect opens the configured database. Postgres is the production target;
// sqlite covers single-kiosk deployments where a server is overkill.
func connect(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBType {
	case "postgres", "postgresql":
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}
