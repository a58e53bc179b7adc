package main

import (
	"context"
	"log"

	"github.com/hasilakhwa/secure-locker-api/internal/server"
	"github.com/hasilakhwa/secure-locker-api/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
