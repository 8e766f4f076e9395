package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orderdesk/internal/config"
	"orderdesk/internal/db"
	"orderdesk/internal/httpserver"
	custrepo "orderdesk/internal/repository/customer"
	orderrepo "orderdesk/internal/repository/order"
	custsvc "orderdesk/internal/service/customer"
	ordersvc "orderdesk/internal/service/order"
	reportsvc "orderdesk/internal/service/report"
	"orderdesk/internal/store"
	memstore "orderdesk/internal/store/memory"
	pgstore "orderdesk/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		docStore store.Store
		pool     *pgxpool.Pool
	)
	switch cfg.StoreBackend {
	case "memory":
		logger.Printf("using in-memory store, data will not survive restarts")
		docStore = memstore.New()
	default:
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		docStore = pgstore.New(pool, logger)
	}

	orderRepo := orderrepo.New(docStore, logger)
	customerRepo := custrepo.New(docStore, logger)
	resolver := custrepo.NewResolver(docStore)

	orderService := ordersvc.New(orderRepo)
	customerService := custsvc.New(customerRepo)
	reportService := reportsvc.New(orderRepo, resolver)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		OrderSvc:    orderService,
		CustomerSvc: customerService,
		ReportSvc:   reportService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
