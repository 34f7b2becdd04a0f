package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/services"
)

// BillingWorker charges every wallet whose payment date has arrived.
// Each league is processed in its own transaction so one failure never
// blocks the rest of the run.
type BillingWorker struct {
	clock      clockwork.Clock
	uowFactory interfaces.UnitOfWorkFactory
	interval   time.Duration
}

func NewBillingWorker(clock clockwork.Clock, uowFactory interfaces.UnitOfWorkFactory, interval time.Duration) *BillingWorker {
	return &BillingWorker{
		clock:      clock,
		uowFactory: uowFactory,
		interval:   interval,
	}
}

// Start launches the worker goroutine and returns a stop function
func (w *BillingWorker) Start(ctx context.Context) func() {
	ticker := w.clock.NewTicker(w.interval)
	stopChan := make(chan struct{})

	go func() {
		log.Info("Billing worker started")

		// Run immediately on startup
		w.ProcessDueWallets(ctx)

		for {
			select {
			case <-ctx.Done():
				log.Info("Billing worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Billing worker shutting down (stop requested)...")
				return
			case <-ticker.Chan():
				w.ProcessDueWallets(ctx)
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}

// ProcessDueWallets runs one billing pass over every due league
func (w *BillingWorker) ProcessDueWallets(ctx context.Context) {
	// Read the due set in a throwaway transaction
	tempUow := w.uowFactory.Create()
	if err := tempUow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction to get due leagues: %v", err)
		return
	}
	leagueIDs, err := tempUow.WalletRepository().GetDueLeagueIDs(ctx, w.clock.Now())
	tempUow.Rollback()
	if err != nil {
		log.Errorf("Error getting due leagues: %v", err)
		return
	}

	for _, leagueID := range leagueIDs {
		w.chargeLeague(ctx, leagueID)
	}
}

func (w *BillingWorker) chargeLeague(ctx context.Context, leagueID int64) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction for league %d monthly charge: %v", leagueID, err)
		return
	}

	walletService := services.NewWalletService(
		w.clock,
		uow.LeagueRepository(),
		uow.PlanRepository(),
		uow.LeagueMemberRepository(),
		uow.WalletRepository(),
		uow.ContributionRepository(),
		uow.EventBus(),
	)

	result, err := walletService.ProcessMonthlyPayment(ctx, leagueID)
	if err != nil {
		log.Errorf("Error processing monthly charge for league %d: %v", leagueID, err)
		uow.Rollback()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing monthly charge for league %d: %v", leagueID, err)
		return
	}

	fields := log.Fields{
		"leagueID":   leagueID,
		"charged":    result.AmountCharged,
		"newBalance": result.NewBalance,
	}
	switch {
	case result.Success:
		log.WithFields(fields).Info("Monthly charge applied")
	case result.Reason == entities.ChargeFailureDowngraded:
		log.WithFields(fields).Warn("Monthly charge failed, league downgraded to free plan")
	case result.Reason == entities.ChargeFailureFrozen:
		log.WithFields(fields).Warn("Monthly charge failed, wallet frozen")
	}
}
