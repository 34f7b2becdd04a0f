package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"matchday/domain/interfaces"
	"matchday/domain/services"
)

// ChallengeSweeper closes open challenges once their closing time passes.
type ChallengeSweeper struct {
	clock      clockwork.Clock
	uowFactory interfaces.UnitOfWorkFactory
	interval   time.Duration
}

func NewChallengeSweeper(clock clockwork.Clock, uowFactory interfaces.UnitOfWorkFactory, interval time.Duration) *ChallengeSweeper {
	return &ChallengeSweeper{
		clock:      clock,
		uowFactory: uowFactory,
		interval:   interval,
	}
}

// Start launches the sweeper goroutine and returns a stop function
func (s *ChallengeSweeper) Start(ctx context.Context) func() {
	ticker := s.clock.NewTicker(s.interval)
	stopChan := make(chan struct{})

	go func() {
		log.Info("Challenge sweeper started")

		s.Sweep(ctx)

		for {
			select {
			case <-ctx.Done():
				log.Info("Challenge sweeper shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Challenge sweeper shutting down (stop requested)...")
				return
			case <-ticker.Chan():
				s.Sweep(ctx)
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}

// Sweep runs one pass over expired open challenges
func (s *ChallengeSweeper) Sweep(ctx context.Context) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction for challenge sweep: %v", err)
		return
	}

	challengeService := services.NewChallengeService(
		s.clock,
		uow.LeagueRepository(),
		uow.PlanRepository(),
		uow.LeagueMemberRepository(),
		uow.MatchRepository(),
		uow.ChallengeRepository(),
		uow.BetRepository(),
	)

	closed, err := challengeService.CloseExpired(ctx)
	if err != nil {
		log.Errorf("Error closing expired challenges: %v", err)
		uow.Rollback()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing challenge sweep: %v", err)
		return
	}

	if closed > 0 {
		log.WithField("closed", closed).Info("Closed expired challenges")
	}
}
