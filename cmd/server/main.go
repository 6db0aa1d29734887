package main

import (
	"log/slog"

	"github.com/joho/godotenv"

	"payrolld/internal/app/server"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	server.Run()
}
