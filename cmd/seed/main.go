package main

import (
	"context"
	"log"
	"os"

	"orderdesk/internal/config"
	"orderdesk/internal/db"
	custrepo "orderdesk/internal/repository/customer"
	orderrepo "orderdesk/internal/repository/order"
	"orderdesk/internal/seed"
	pgstore "orderdesk/internal/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	docStore := pgstore.New(pool, logger)
	customerRepo := custrepo.New(docStore, logger)
	orderRepo := orderrepo.New(docStore, logger)

	if err := seed.Apply(ctx, customerRepo, orderRepo); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
