package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/syukri21/chat/internal/app"
	"github.com/syukri21/chat/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on system env vars")
	}

	cfg := config.Load()
	srv := app.NewServer(cfg)

	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
