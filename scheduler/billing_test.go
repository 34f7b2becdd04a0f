package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matchday/domain/entities"
	"matchday/domain/testhelpers"
)

func fixedClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(2026, 5, 15, 9, 0, 0, 0, time.UTC))
}

func championPlan() *entities.Plan {
	return &entities.Plan{
		ID:                entities.PlanChampion,
		Name:              "Champion",
		MaxMembers:        20,
		MaxChangesWeek:    10,
		MonthlyPriceCents: 999,
	}
}

func TestBillingWorker_ChargesDueLeague(t *testing.T) {
	clock := fixedClock()
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	f := factory.UoW
	ctx := context.Background()

	league := &entities.League{ID: 7, PlanID: entities.PlanChampion, IsActive: true}
	wallet := &entities.LeagueWallet{ID: 3, LeagueID: 7, BalanceCents: 2500}

	f.Wallets.On("GetDueLeagueIDs", mock.Anything, clock.Now()).Return([]int64{7}, nil)
	f.Leagues.On("GetByID", mock.Anything, int64(7)).Return(league, nil)
	f.Plans.On("GetByID", mock.Anything, entities.PlanChampion).Return(championPlan(), nil)
	f.Wallets.On("GetByLeagueIDForUpdate", mock.Anything, int64(7)).Return(wallet, nil)
	f.Wallets.On("Update", mock.Anything, wallet).Return(nil)
	f.Publisher.On("Publish", mock.Anything).Return()

	worker := NewBillingWorker(clock, factory, time.Hour)
	worker.ProcessDueWallets(ctx)

	assert.Equal(t, int64(1501), wallet.BalanceCents)
	require.NotNil(t, wallet.NextPaymentDate)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *wallet.NextPaymentDate)

	// One read-only pass for the due set, one committed charge
	assert.Equal(t, 2, f.Began)
	assert.Equal(t, 1, f.RolledBack)
	assert.Equal(t, 1, f.Committed)
	f.Wallets.AssertExpectations(t)
}

func TestBillingWorker_NothingDue(t *testing.T) {
	clock := fixedClock()
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	f := factory.UoW

	f.Wallets.On("GetDueLeagueIDs", mock.Anything, clock.Now()).Return([]int64{}, nil)

	worker := NewBillingWorker(clock, factory, time.Hour)
	worker.ProcessDueWallets(context.Background())

	assert.Equal(t, 1, f.Began)
	assert.Equal(t, 0, f.Committed)
	f.Leagues.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestBillingWorker_ChargeErrorRollsBack(t *testing.T) {
	clock := fixedClock()
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	f := factory.UoW

	f.Wallets.On("GetDueLeagueIDs", mock.Anything, clock.Now()).Return([]int64{9}, nil)
	f.Leagues.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)

	worker := NewBillingWorker(clock, factory, time.Hour)
	worker.ProcessDueWallets(context.Background())

	assert.Equal(t, 0, f.Committed)
	assert.Equal(t, 2, f.RolledBack)
}

func TestChallengeSweeper_ClosesExpired(t *testing.T) {
	clock := fixedClock()
	factory := testhelpers.NewFakeUnitOfWorkFactory()
	f := factory.UoW

	expired := &entities.Challenge{
		ID:       4,
		LeagueID: 1,
		MatchID:  2,
		Status:   entities.ChallengeStatusOpen,
		ClosesAt: clock.Now().Add(-time.Minute),
	}
	f.Challenges.On("GetOpenExpired", mock.Anything, clock.Now()).Return([]*entities.Challenge{expired}, nil)
	f.Challenges.On("Update", mock.Anything, expired).Return(nil)

	sweeper := NewChallengeSweeper(clock, factory, time.Minute)
	sweeper.Sweep(context.Background())

	assert.Equal(t, entities.ChallengeStatusClosed, expired.Status)
	assert.Equal(t, 1, f.Committed)
	f.Challenges.AssertExpectations(t)
}
