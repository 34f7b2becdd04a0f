package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/interfaces"
	"matchday/events"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface. All repositories
// returned by its getters share one transaction, and events published
// through its bus are flushed only after the commit succeeds.
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	txBus            *events.TransactionalBus
	userRepo         interfaces.UserRepository
	planRepo         interfaces.PlanRepository
	leagueRepo       interfaces.LeagueRepository
	memberRepo       interfaces.LeagueMemberRepository
	betRepo          interfaces.BetRepository
	challengeRepo    interfaces.ChallengeRepository
	walletRepo       interfaces.WalletRepository
	contributionRepo interfaces.ContributionRepository
	matchRepo        interfaces.MatchRepository
}

type unitOfWorkFactory struct {
	db  *database.DB
	bus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db, bus: bus}
}

// Create creates a new UnitOfWork instance
func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:    f.db,
		txBus: events.NewTransactionalBus(f.bus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepositoryWithTx(tx)
	u.planRepo = newPlanRepositoryWithTx(tx)
	u.leagueRepo = newLeagueRepositoryWithTx(tx)
	u.memberRepo = newLeagueMemberRepositoryWithTx(tx)
	u.betRepo = newBetRepositoryWithTx(tx)
	u.challengeRepo = newChallengeRepositoryWithTx(tx)
	u.walletRepo = newWalletRepositoryWithTx(tx)
	u.contributionRepo = newContributionRepositoryWithTx(tx)
	u.matchRepo = newMatchRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return u.txBus.Flush(u.ctx)
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.txBus.Discard()

	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	return u.userRepo
}

func (u *unitOfWork) PlanRepository() interfaces.PlanRepository {
	return u.planRepo
}

func (u *unitOfWork) LeagueRepository() interfaces.LeagueRepository {
	return u.leagueRepo
}

func (u *unitOfWork) LeagueMemberRepository() interfaces.LeagueMemberRepository {
	return u.memberRepo
}

func (u *unitOfWork) BetRepository() interfaces.BetRepository {
	return u.betRepo
}

func (u *unitOfWork) ChallengeRepository() interfaces.ChallengeRepository {
	return u.challengeRepo
}

func (u *unitOfWork) WalletRepository() interfaces.WalletRepository {
	return u.walletRepo
}

func (u *unitOfWork) ContributionRepository() interfaces.ContributionRepository {
	return u.contributionRepo
}

func (u *unitOfWork) MatchRepository() interfaces.MatchRepository {
	return u.matchRepo
}

func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.txBus
}
