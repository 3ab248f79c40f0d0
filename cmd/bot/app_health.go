package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexliesenfeld/health"
)

func (a *App) healthCheck() Controller {
	checks := []health.CheckerOption{
		// Set a TTL of 1 second for the results of the checks.
		health.WithCacheDuration(1 * time.Second),

		// Set a timeout of 2 seconds for the checks.
		health.WithTimeout(2 * time.Second),

		// Monitor the data directory the documents are written to.
		health.WithCheck(health.Check{
			Name: "Data_Directory",
			Check: func(ctx context.Context) error {
				if err := a.store.Ping(); err != nil {
					return fmt.Errorf("failed to write to data directory: %w", err)
				}
				return nil
			},
			Timeout:        2 * time.Second,
			StatusListener: a.healthStatusListener,
		}),

		// Monitor the health of the Discord API.
		health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "Discord_API",
			Check: func(ctx context.Context) error {
				if _, err := a.s.GatewayBot(); err != nil {
					return fmt.Errorf("failed to ping Discord API: %w", err)
				}
				return nil
			},
			Timeout:        3 * time.Second,
			StatusListener: a.healthStatusListener,
		}),
	}

	if a.backups != nil {
		// Monitor the remote backup sink (MongoDB).
		checks = append(checks, health.WithCheck(health.Check{
			Name:           "MongoDB",
			Check:          a.backups.Ping,
			Timeout:        2 * time.Second,
			StatusListener: a.healthStatusListener,
		}))
	}

	return Controller(health.NewHandler(health.NewChecker(checks...)))
}

func (a *App) healthStatusListener(_ context.Context, name string, state health.CheckState) {
	a.Info("Health check status changed",
		slog.String("name", name),
		slog.String("state", string(state.Status)),
	)
}
