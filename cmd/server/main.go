package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/config"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/database"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/engine"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/handler"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/queue"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/repository"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/router"
)

// openDatabase connects to the store selected by DB_DRIVER.
func openDatabase(cfg config.Config) (*sql.DB, database.Dialect, error) {
	if cfg.DBDriver == "sqlite" {
		db, err := database.OpenSQLite(cfg.SQLitePath)
		return db, database.SQLite, err
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	return db, database.MySQL, err
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, dialect, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db, dialect); err != nil {
		log.Fatalf("schema: %v", err)
	}

	eng := engine.New(db, dialect, engine.SystemClock(), cfg.LocalOffset)
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; view cache and rate limiting disabled")
	}

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(repository.NewClerkRepo(db), cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost),
		Catalog:   handler.NewCatalogHandler(eng),
		Passenger: handler.NewPassengerHandler(eng),
		Ticket:    handler.NewTicketHandler(eng),
		Views:     handler.NewViewsHandler(eng),
	}

	e := echo.New()
	router.Register(e, h, cfg.JWTSecret, rdb)

	// Background consumer writes booking events to logs/booking.log.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
