package main

import (
	"context"
	"log"
	"time"

	"cvwizard-backend/internal/bootstrap"
	"cvwizard-backend/internal/shared/config"
	"cvwizard-backend/internal/shared/server"
	"cvwizard-backend/internal/shared/telemetry"
)

const sweepInterval = 10 * time.Minute

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	go sweepExpiredSessions(app)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// sweepExpiredSessions periodically drops form state whose session TTL has
// lapsed.
func sweepExpiredSessions(app *bootstrap.App) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		removed, err := app.FormsService.Sweep(ctx)
		cancel()
		if err != nil {
			telemetry.Error("session sweep failed", map[string]any{"error": err.Error()})
			continue
		}
		if removed > 0 {
			telemetry.Info("swept expired sessions", map[string]any{"removed": removed})
		}
	}
}
