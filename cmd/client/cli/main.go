package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/openroad/stopfinder/internal/client/cli"
	"github.com/openroad/stopfinder/internal/client/config"
	"github.com/openroad/stopfinder/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, sync, err := logging.NewProduction()
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer sync()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(context.Background())
}
