package main

import (
	"context"
	"flag"
	"log"
	"os"

	"metalmarket-storefront/internal/config"
	"metalmarket-storefront/internal/seed"
	"metalmarket-storefront/internal/upstream"
)

func main() {
	var (
		email    string
		password string
	)
	flag.StringVar(&email, "email", "", "Admin email for the upstream API")
	flag.StringVar(&password, "password", "", "Admin password for the upstream API")
	flag.Parse()

	if email == "" || password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)
	login, err := client.Login(ctx, email, password)
	if err != nil {
		logger.Fatalf("login: %v", err)
	}

	created, err := seed.Apply(ctx, client, login.Token)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied, %d products created", created)
}
