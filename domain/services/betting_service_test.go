package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/testhelpers"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bettingFixture struct {
	clock      *clockwork.FakeClock
	leagues    *testhelpers.MockLeagueRepository
	plans      *testhelpers.MockPlanRepository
	members    *testhelpers.MockLeagueMemberRepository
	bets       *testhelpers.MockBetRepository
	matches    *testhelpers.MockMatchRepository
	challenges *testhelpers.MockChallengeRepository
	publisher  *testhelpers.MockEventPublisher
}

func newBettingFixture(now time.Time) (*bettingFixture, *bettingService) {
	f := &bettingFixture{
		clock:      clockwork.NewFakeClockAt(now),
		leagues:    new(testhelpers.MockLeagueRepository),
		plans:      new(testhelpers.MockPlanRepository),
		members:    new(testhelpers.MockLeagueMemberRepository),
		bets:       new(testhelpers.MockBetRepository),
		matches:    new(testhelpers.MockMatchRepository),
		challenges: new(testhelpers.MockChallengeRepository),
		publisher:  new(testhelpers.MockEventPublisher),
	}
	svc := NewBettingService(f.clock, f.leagues, f.plans, f.members, f.bets, f.matches, f.challenges, f.publisher)
	return f, svc.(*bettingService)
}

func activeLeague(planID string) *entities.League {
	return &entities.League{
		ID:       1,
		Name:     "Friday Five",
		OwnerID:  10,
		PlanID:   planID,
		IsActive: true,
	}
}

func freePlan() *entities.Plan {
	return &entities.Plan{
		ID:             entities.PlanFree,
		Name:           "Free",
		MaxMembers:     4,
		MaxChangesWeek: 3,
		Features:       map[string]bool{entities.FeatureLeaderboard: true},
	}
}

func mvpPlan() *entities.Plan {
	return &entities.Plan{
		ID:                entities.PlanMVP,
		Name:              "MVP",
		MaxMembers:        50,
		MaxChangesWeek:    entities.UnlimitedSentinel,
		MonthlyPriceCents: 1999,
		Features: map[string]bool{
			entities.FeatureLeaderboard: true,
			entities.FeatureChallenges:  true,
		},
	}
}

func TestBettingService_PlaceBet_Success(t *testing.T) {
	ctx := context.Background()
	// Tuesday 12:00, kickoff 3 days out: inside the window.
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(72 * time.Hour)

	f, svc := newBettingFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10, Role: entities.MemberRoleMember, Points: 1000,
	}, nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{
		ID: 5, KickoffAt: kickoff, Status: entities.MatchStatusScheduled,
		HomeOdds: 2.5, DrawOdds: 3.1, AwayOdds: 2.8,
	}, nil)
	f.bets.On("CountByUserInRange", ctx, int64(10), int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(1, nil)
	f.members.On("AddPoints", ctx, int64(1), int64(10), int64(-200)).Return(nil)
	f.bets.On("Create", ctx, mock.MatchedBy(func(b *entities.Bet) bool {
		return b.UserID == 10 &&
			b.Amount == 200 &&
			b.Status == entities.BetStatusPending &&
			b.PotentialWin == 500 // 200 * 2.5
	})).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.BetPlacedEvent")).Return()

	result, err := svc.PlaceBet(ctx, placeBetInput(10, 1, 5, "home", 200))

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.NotNil(t, result.Bet)
	assert.Equal(t, int64(500), result.Bet.PotentialWin)

	f.bets.AssertExpectations(t)
	f.members.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestBettingService_PlaceBet_WeeklyLimitReached(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(72 * time.Hour)

	f, svc := newBettingFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10, Points: 1000,
	}, nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{
		ID: 5, KickoffAt: kickoff, HomeOdds: 2.0, DrawOdds: 3.0, AwayOdds: 3.5,
	}, nil)
	// Plan allows 3 per calendar week; all 3 already used.
	f.bets.On("CountByUserInRange", ctx, int64(10), int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(3, nil)

	result, err := svc.PlaceBet(ctx, placeBetInput(10, 1, 5, "home", 100))

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonWeeklyLimitReached, result.Reason)
	assert.Equal(t, 0, result.Limit.Remaining)
	f.bets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.members.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBettingService_PlaceBet_TooEarly(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	// Kickoff 9 days out: the window opens 7 days before kickoff.
	kickoff := now.Add(9 * 24 * time.Hour)

	f, svc := newBettingFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10, Points: 1000,
	}, nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff}, nil)

	result, err := svc.PlaceBet(ctx, placeBetInput(10, 1, 5, "home", 100))

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonTooEarly, result.Reason)
	require.NotNil(t, result.Window)
	assert.Equal(t, 2, result.Window.DaysUntilOpen)
}

func TestBettingService_PlaceBet_WindowClosed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	// Kickoff 5 minutes out: inside the 10 minute lockout.
	kickoff := now.Add(5 * time.Minute)

	f, svc := newBettingFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10, Points: 1000,
	}, nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff}, nil)

	result, err := svc.PlaceBet(ctx, placeBetInput(10, 1, 5, "home", 100))

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonWindowClosed, result.Reason)
}

func TestBettingService_PlaceBet_InvalidPrediction(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(72 * time.Hour)

	f, svc := newBettingFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10, Points: 1000,
	}, nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff}, nil)
	f.bets.On("CountByUserInRange", ctx, int64(10), int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(0, nil)

	result, err := svc.PlaceBet(ctx, placeBetInput(10, 1, 5, "hoome", 100))

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonInvalidPrediction, result.Reason)
	assert.Contains(t, result.Detail, "hoome")
}

func TestBettingService_PlaceBet_InsufficientPoints(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(72 * time.Hour)

	f, svc := newBettingFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10, Points: 50,
	}, nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff}, nil)
	f.bets.On("CountByUserInRange", ctx, int64(10), int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(0, nil)

	result, err := svc.PlaceBet(ctx, placeBetInput(10, 1, 5, "away", 100))

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonInsufficientPoints, result.Reason)
}

func TestBettingService_PlaceBet_InactiveLeague(t *testing.T) {
	ctx := context.Background()
	f, svc := newBettingFixture(time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC))

	league := activeLeague(entities.PlanFree)
	league.IsActive = false
	f.leagues.On("GetByID", ctx, int64(1)).Return(league, nil)

	result, err := svc.PlaceBet(ctx, placeBetInput(10, 1, 5, "home", 100))

	require.NoError(t, err)
	assert.Equal(t, ReasonLeagueInactive, result.Reason)
}

func TestBettingService_PlaceBet_ChallengeDuplicate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(72 * time.Hour)

	f, svc := newBettingFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10, Points: 1000,
	}, nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff, HomeOdds: 2.0}, nil)
	f.bets.On("CountByUserInRange", ctx, int64(10), int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(0, nil)
	f.challenges.On("GetByID", ctx, int64(7)).Return(&entities.Challenge{
		ID: 7, LeagueID: 1, MatchID: 5, Status: entities.ChallengeStatusOpen,
		ClosesAt: kickoff.Add(-10 * time.Minute),
	}, nil)
	f.bets.On("GetByChallengeAndUser", ctx, int64(7), int64(10)).Return(&entities.Bet{ID: 99}, nil)

	input := placeBetInput(10, 1, 5, "home", 100)
	challengeID := int64(7)
	input.ChallengeID = &challengeID

	result, err := svc.PlaceBet(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, ReasonAlreadyBet, result.Reason)
}

func TestBettingService_WeeklyLimitStatus_Unlimited(t *testing.T) {
	ctx := context.Background()
	f, svc := newBettingFixture(time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanMVP), nil)
	f.plans.On("GetByID", ctx, entities.PlanMVP).Return(mvpPlan(), nil)
	f.bets.On("CountByUserInRange", ctx, int64(10), int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(40, nil)

	status, err := svc.WeeklyLimitStatus(ctx, 10, 1)

	require.NoError(t, err)
	assert.True(t, status.IsUnlimited)
	assert.Equal(t, entities.UnlimitedSentinel, status.Limit)
	assert.Equal(t, entities.UnlimitedSentinel, status.Remaining)
	assert.True(t, status.CanPlaceBet())
}

func TestBettingService_WeeklyLimitStatus_MissingPlanFallsBack(t *testing.T) {
	ctx := context.Background()
	f, svc := newBettingFixture(time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague("retired-plan"), nil)
	f.plans.On("GetByID", ctx, "retired-plan").Return(nil, nil)
	f.bets.On("CountByUserInRange", ctx, int64(10), int64(1), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(2, nil)

	status, err := svc.WeeklyLimitStatus(ctx, 10, 1)

	require.NoError(t, err)
	assert.Equal(t, DefaultWeeklyBetLimit, status.Limit)
	assert.Equal(t, 1, status.Remaining)
}

func TestBettingService_SettleMatch_GradesOutcomes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 22, 18, 0, 0, 0, time.UTC)
	f, svc := newBettingFixture(now)

	home, away := 2, 1
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{
		ID: 5, Status: entities.MatchStatusFinished,
		HomeScore: &home, AwayScore: &away,
	}, nil)
	f.bets.On("GetPendingByMatch", ctx, int64(5)).Return([]*entities.Bet{
		{ID: 1, UserID: 10, LeagueID: 1, MatchID: 5, PredictionType: entities.PredictionTypeWinner, PredictionValue: winnerPayload("home"), Amount: 100, PotentialWin: 250, Status: entities.BetStatusPending},
		{ID: 2, UserID: 11, LeagueID: 1, MatchID: 5, PredictionType: entities.PredictionTypeWinner, PredictionValue: winnerPayload("away"), Amount: 100, PotentialWin: 280, Status: entities.BetStatusPending},
	}, nil)
	f.bets.On("Settle", ctx, int64(1), entities.BetStatusWon, int64(250), now).Return(nil)
	f.bets.On("Settle", ctx, int64(2), entities.BetStatusLost, int64(0), now).Return(nil)
	f.members.On("AddPoints", ctx, int64(1), int64(10), int64(250)).Return(nil)
	f.challenges.On("GetByMatch", ctx, int64(5)).Return([]*entities.Challenge{}, nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.BetSettledEvent")).Return()

	summary, err := svc.SettleMatch(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.BetsSettled)
	assert.Equal(t, 1, summary.BetsWon)
	assert.Equal(t, 1, summary.BetsLost)
	f.bets.AssertExpectations(t)
	f.members.AssertExpectations(t)
}

func TestBettingService_SettleMatch_CancelledVoidsAndRefunds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 22, 18, 0, 0, 0, time.UTC)
	f, svc := newBettingFixture(now)

	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{
		ID: 5, Status: entities.MatchStatusCancelled,
	}, nil)
	f.bets.On("GetPendingByMatch", ctx, int64(5)).Return([]*entities.Bet{
		{ID: 1, UserID: 10, LeagueID: 1, MatchID: 5, PredictionType: entities.PredictionTypeWinner, PredictionValue: winnerPayload("home"), Amount: 150, PotentialWin: 300, Status: entities.BetStatusPending},
	}, nil)
	f.bets.On("Settle", ctx, int64(1), entities.BetStatusVoid, int64(0), now).Return(nil)
	f.members.On("AddPoints", ctx, int64(1), int64(10), int64(150)).Return(nil)
	f.challenges.On("GetByMatch", ctx, int64(5)).Return([]*entities.Challenge{}, nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.BetSettledEvent")).Return()

	summary, err := svc.SettleMatch(ctx, 5)

	require.NoError(t, err)
	assert.True(t, summary.Voided)
	assert.Equal(t, 1, summary.BetsSettled)
	f.members.AssertExpectations(t)
}

func winnerPayload(value string) string {
	return fmt.Sprintf(`{"type":"winner","value":%q}`, value)
}

func placeBetInput(userID, leagueID, matchID int64, value string, amount int64) interfaces.PlaceBetInput {
	return interfaces.PlaceBetInput{
		UserID:          userID,
		LeagueID:        leagueID,
		MatchID:         matchID,
		PredictionType:  entities.PredictionTypeWinner,
		PredictionValue: winnerPayload(value),
		Amount:          amount,
	}
}
