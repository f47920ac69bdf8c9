package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"metalmarket-storefront/internal/config"
	"metalmarket-storefront/internal/importer"
	"metalmarket-storefront/internal/upstream"
)

func main() {
	var (
		filePath string
		email    string
		password string
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV export")
	flag.StringVar(&email, "email", "", "Admin email for the upstream API")
	flag.StringVar(&password, "password", "", "Admin password for the upstream API")
	flag.Parse()

	if filePath == "" || email == "" || password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)
	login, err := client.Login(ctx, email, password)
	if err != nil {
		logger.Fatalf("login: %v", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, client, login.Token)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d products: %v", count, err)
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
