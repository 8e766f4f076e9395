package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"orderdesk/internal/config"
	"orderdesk/internal/db"
	"orderdesk/internal/importer"
	custrepo "orderdesk/internal/repository/customer"
	pgstore "orderdesk/internal/store/postgres"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to customer CSV file (name,rank,phone,email,address,notes)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	docStore := pgstore.New(pool, nil)
	imp := importer.NewCSVImporter(f, custrepo.New(docStore, nil))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d customers in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
