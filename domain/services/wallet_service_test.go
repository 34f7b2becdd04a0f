package services

import (
	"context"
	"testing"
	"time"

	"matchday/domain/entities"
	"matchday/domain/testhelpers"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type walletFixture struct {
	clock         *clockwork.FakeClock
	leagues       *testhelpers.MockLeagueRepository
	plans         *testhelpers.MockPlanRepository
	members       *testhelpers.MockLeagueMemberRepository
	wallets       *testhelpers.MockWalletRepository
	contributions *testhelpers.MockContributionRepository
	publisher     *testhelpers.MockEventPublisher
}

func newWalletFixture(now time.Time) (*walletFixture, *walletService) {
	f := &walletFixture{
		clock:         clockwork.NewFakeClockAt(now),
		leagues:       new(testhelpers.MockLeagueRepository),
		plans:         new(testhelpers.MockPlanRepository),
		members:       new(testhelpers.MockLeagueMemberRepository),
		wallets:       new(testhelpers.MockWalletRepository),
		contributions: new(testhelpers.MockContributionRepository),
		publisher:     new(testhelpers.MockEventPublisher),
	}
	svc := NewWalletService(f.clock, f.leagues, f.plans, f.members, f.wallets, f.contributions, f.publisher)
	return f, svc.(*walletService)
}

func championPlan() *entities.Plan {
	return &entities.Plan{
		ID:                entities.PlanChampion,
		Name:              "Champion",
		MaxMembers:        20,
		MaxChangesWeek:    7,
		MonthlyPriceCents: 999,
		Features: map[string]bool{
			entities.FeatureLeaderboard: true,
			entities.FeatureChallenges:  true,
		},
	}
}

func TestWalletService_Contribute_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	_, svc := newWalletFixture(time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC))

	for _, amount := range []int64{0, -100} {
		result, err := svc.Contribute(ctx, 1, 10, amount, "card")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, ReasonInvalidContribution, result.Reason)
	}
}

func TestWalletService_Contribute_CreditsAndUnfreezes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	f, svc := newWalletFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	frozen := &entities.LeagueWallet{ID: 3, LeagueID: 1, BalanceCents: 100, IsFrozen: true}
	f.wallets.On("GetByLeagueID", ctx, int64(1)).Return(frozen, nil)
	f.wallets.On("GetByLeagueIDForUpdate", ctx, int64(1)).Return(frozen, nil)
	f.contributions.On("Create", ctx, mock.MatchedBy(func(c *entities.Contribution) bool {
		return c.WalletID == 3 &&
			c.UserID == 10 &&
			c.AmountCents == 2000 &&
			c.Status == entities.ContributionStatusCompleted &&
			c.PaymentRef != ""
	})).Return(nil)
	f.wallets.On("Update", ctx, mock.MatchedBy(func(w *entities.LeagueWallet) bool {
		return w.BalanceCents == 2100 && !w.IsFrozen && w.NextPaymentDate != nil
	})).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.ContributionEvent")).Return()

	result, err := svc.Contribute(ctx, 1, 10, 2000, "card")

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.True(t, result.Unfroze)
	assert.Equal(t, int64(2100), result.NewBalance)
	assert.Equal(t, int64(2), result.MonthsCovered) // 2100 / 999
	f.wallets.AssertExpectations(t)
	f.contributions.AssertExpectations(t)
}

func TestWalletService_ProcessMonthlyPayment_FreePlanIsNoop(t *testing.T) {
	ctx := context.Background()
	f, svc := newWalletFixture(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)

	result, err := svc.ProcessMonthlyPayment(ctx, 1)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.AmountCharged)
	f.wallets.AssertNotCalled(t, "GetByLeagueIDForUpdate", mock.Anything, mock.Anything)
}

func TestWalletService_ProcessMonthlyPayment_ChargesAndAdvances(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 14, 8, 0, 0, 0, time.UTC)
	f, svc := newWalletFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.wallets.On("GetByLeagueIDForUpdate", ctx, int64(1)).Return(&entities.LeagueWallet{
		ID: 3, LeagueID: 1, BalanceCents: 2500,
	}, nil)
	f.wallets.On("Update", ctx, mock.MatchedBy(func(w *entities.LeagueWallet) bool {
		return w.BalanceCents == 1501 &&
			w.NextPaymentDate != nil &&
			w.NextPaymentDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.WalletChargedEvent")).Return()

	result, err := svc.ProcessMonthlyPayment(ctx, 1)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(999), result.AmountCharged)
	assert.Equal(t, int64(1501), result.NewBalance)
	f.wallets.AssertExpectations(t)
}

func TestWalletService_ProcessMonthlyPayment_DowngradesSmallLeague(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	f, svc := newWalletFixture(now)

	league := activeLeague(entities.PlanChampion)
	f.leagues.On("GetByID", ctx, int64(1)).Return(league, nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.wallets.On("GetByLeagueIDForUpdate", ctx, int64(1)).Return(&entities.LeagueWallet{
		ID: 3, LeagueID: 1, BalanceCents: 100,
	}, nil)
	// Four members fit the free tier's cap of four.
	f.members.On("CountByLeague", ctx, int64(1)).Return(4, nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.leagues.On("Update", ctx, mock.MatchedBy(func(l *entities.League) bool {
		return l.PlanID == entities.PlanFree
	})).Return(nil)
	f.wallets.On("Update", ctx, mock.MatchedBy(func(w *entities.LeagueWallet) bool {
		return w.NextPaymentDate == nil && !w.IsFrozen
	})).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.LeagueDowngradedEvent")).Return()

	result, err := svc.ProcessMonthlyPayment(ctx, 1)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, entities.ChargeFailureDowngraded, result.Reason)
	f.leagues.AssertExpectations(t)
}

func TestWalletService_ProcessMonthlyPayment_FreezesLargeLeague(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	f, svc := newWalletFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.wallets.On("GetByLeagueIDForUpdate", ctx, int64(1)).Return(&entities.LeagueWallet{
		ID: 3, LeagueID: 1, BalanceCents: 100,
	}, nil)
	// Five members exceed the free tier's cap of four: freeze instead.
	f.members.On("CountByLeague", ctx, int64(1)).Return(5, nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.wallets.On("Update", ctx, mock.MatchedBy(func(w *entities.LeagueWallet) bool {
		return w.IsFrozen
	})).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.WalletFrozenEvent")).Return()

	result, err := svc.ProcessMonthlyPayment(ctx, 1)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, entities.ChargeFailureFrozen, result.Reason)
	f.leagues.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.wallets.AssertExpectations(t)
}

func TestWalletService_Upgrade_RejectsCheaperPlan(t *testing.T) {
	ctx := context.Background()
	f, svc := newWalletFixture(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)

	result, err := svc.Upgrade(ctx, 1, entities.PlanFree)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonNotAnUpgrade, result.Reason)
}

func TestWalletService_Upgrade_RequiresCoveredFirstMonth(t *testing.T) {
	ctx := context.Background()
	f, svc := newWalletFixture(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.members.On("CountByLeague", ctx, int64(1)).Return(3, nil)
	wallet := &entities.LeagueWallet{ID: 3, LeagueID: 1, BalanceCents: 500}
	f.wallets.On("GetByLeagueID", ctx, int64(1)).Return(wallet, nil)
	f.wallets.On("GetByLeagueIDForUpdate", ctx, int64(1)).Return(wallet, nil)

	result, err := svc.Upgrade(ctx, 1, entities.PlanChampion)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonInsufficientBalance, result.Reason)
	f.leagues.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestWalletService_Upgrade_Succeeds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 14, 8, 0, 0, 0, time.UTC)
	f, svc := newWalletFixture(now)

	league := activeLeague(entities.PlanFree)
	f.leagues.On("GetByID", ctx, int64(1)).Return(league, nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.members.On("CountByLeague", ctx, int64(1)).Return(3, nil)
	wallet := &entities.LeagueWallet{ID: 3, LeagueID: 1, BalanceCents: 1500}
	f.wallets.On("GetByLeagueID", ctx, int64(1)).Return(wallet, nil)
	f.wallets.On("GetByLeagueIDForUpdate", ctx, int64(1)).Return(wallet, nil)
	f.leagues.On("Update", ctx, league).Return(nil)
	f.wallets.On("Update", ctx, mock.MatchedBy(func(w *entities.LeagueWallet) bool {
		return w.NextPaymentDate != nil &&
			w.NextPaymentDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	result, err := svc.Upgrade(ctx, 1, entities.PlanChampion)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, entities.PlanChampion, league.PlanID)
}

func TestWalletService_Downgrade_RejectsOversizedMembership(t *testing.T) {
	ctx := context.Background()
	f, svc := newWalletFixture(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.members.On("CountByLeague", ctx, int64(1)).Return(10, nil)

	result, err := svc.Downgrade(ctx, 1, entities.PlanFree)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonMemberCapExceeded, result.Reason)
}

func TestWalletService_Downgrade_ToFreeClearsPaymentDate(t *testing.T) {
	ctx := context.Background()
	f, svc := newWalletFixture(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	league := activeLeague(entities.PlanChampion)
	f.leagues.On("GetByID", ctx, int64(1)).Return(league, nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.members.On("CountByLeague", ctx, int64(1)).Return(3, nil)
	f.leagues.On("Update", ctx, league).Return(nil)
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f.wallets.On("GetByLeagueID", ctx, int64(1)).Return(&entities.LeagueWallet{
		ID: 3, LeagueID: 1, BalanceCents: 400, NextPaymentDate: &due,
	}, nil)
	f.wallets.On("Update", ctx, mock.MatchedBy(func(w *entities.LeagueWallet) bool {
		return w.NextPaymentDate == nil
	})).Return(nil)

	result, err := svc.Downgrade(ctx, 1, entities.PlanFree)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, entities.PlanFree, league.PlanID)
	f.wallets.AssertExpectations(t)
}

func TestWalletService_UnknownPlanRejected(t *testing.T) {
	ctx := context.Background()
	f, svc := newWalletFixture(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.plans.On("GetByID", ctx, "gold").Return(nil, nil)

	result, err := svc.Upgrade(ctx, 1, "gold")

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonUnknownPlan, result.Reason)
}
