package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"matchday/api"
	"matchday/config"
	"matchday/database"
	"matchday/events"
	"matchday/repository"
	"matchday/scheduler"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting matchday server...")

	cfg := config.Get()
	clock := clockwork.NewRealClock()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	eventBus := events.NewBus()
	events.RegisterAuditHandlers(eventBus)
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Background workers
	billing := scheduler.NewBillingWorker(clock, uowFactory, cfg.BillingCheckInterval)
	stopBilling := billing.Start(ctx)
	sweeper := scheduler.NewChallengeSweeper(clock, uowFactory, cfg.ChallengeSweepInterval)
	stopSweeper := sweeper.Start(ctx)

	server := api.NewServer(cfg, uowFactory, clock)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.Infof("Server is running in %s mode", cfg.Environment)

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	log.Info("Shutting down...")
	stopBilling()
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
