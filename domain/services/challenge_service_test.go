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

type challengeFixture struct {
	clock      *clockwork.FakeClock
	leagues    *testhelpers.MockLeagueRepository
	plans      *testhelpers.MockPlanRepository
	members    *testhelpers.MockLeagueMemberRepository
	matches    *testhelpers.MockMatchRepository
	challenges *testhelpers.MockChallengeRepository
	bets       *testhelpers.MockBetRepository
}

func newChallengeFixture(now time.Time) (*challengeFixture, *challengeService) {
	f := &challengeFixture{
		clock:      clockwork.NewFakeClockAt(now),
		leagues:    new(testhelpers.MockLeagueRepository),
		plans:      new(testhelpers.MockPlanRepository),
		members:    new(testhelpers.MockLeagueMemberRepository),
		matches:    new(testhelpers.MockMatchRepository),
		challenges: new(testhelpers.MockChallengeRepository),
		bets:       new(testhelpers.MockBetRepository),
	}
	svc := NewChallengeService(f.clock, f.leagues, f.plans, f.members, f.matches, f.challenges, f.bets)
	return f, svc.(*challengeService)
}

func TestChallengeService_CreateChallenge_Succeeds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(48 * time.Hour)
	f, svc := newChallengeFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{
		LeagueID: 1, UserID: 10,
	}, nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff}, nil)
	f.challenges.On("GetByLeagueAndMatch", ctx, int64(1), int64(5)).Return(nil, nil)
	f.challenges.On("Create", ctx, mock.MatchedBy(func(c *entities.Challenge) bool {
		return c.LeagueID == 1 &&
			c.MatchID == 5 &&
			c.CreatedByID == 10 &&
			c.Status == entities.ChallengeStatusOpen &&
			c.ClosesAt.Equal(kickoff.Add(-10*time.Minute))
	})).Return(nil)

	result, err := svc.CreateChallenge(ctx, 10, 1, 5)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	require.NotNil(t, result.Challenge)
	assert.Equal(t, entities.ChallengeStatusOpen, result.Challenge.Status)
	f.challenges.AssertExpectations(t)
}

func TestChallengeService_CreateChallenge_DuplicatePair(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	kickoff := now.Add(48 * time.Hour)
	f, svc := newChallengeFixture(now)

	existing := &entities.Challenge{ID: 7, LeagueID: 1, MatchID: 5, Status: entities.ChallengeStatusOpen}
	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{LeagueID: 1, UserID: 10}, nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff}, nil)
	f.challenges.On("GetByLeagueAndMatch", ctx, int64(1), int64(5)).Return(existing, nil)

	result, err := svc.CreateChallenge(ctx, 10, 1, 5)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonDuplicateChallenge, result.Reason)
	assert.Equal(t, existing, result.Challenge)
}

func TestChallengeService_CreateChallenge_MatchAlreadyLocked(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC)
	// Kickoff 5 minutes out: past the closing time.
	kickoff := now.Add(5 * time.Minute)
	f, svc := newChallengeFixture(now)

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanChampion), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{LeagueID: 1, UserID: 10}, nil)
	f.plans.On("GetByID", ctx, entities.PlanChampion).Return(championPlan(), nil)
	f.matches.On("GetByID", ctx, int64(5)).Return(&entities.Match{ID: 5, KickoffAt: kickoff}, nil)

	result, err := svc.CreateChallenge(ctx, 10, 1, 5)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonMatchNotOpen, result.Reason)
}

func TestChallengeService_CreateChallenge_FreePlanLacksFeature(t *testing.T) {
	ctx := context.Background()
	f, svc := newChallengeFixture(time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.members.On("Get", ctx, int64(1), int64(10)).Return(&entities.LeagueMember{LeagueID: 1, UserID: 10}, nil)
	f.plans.On("GetByID", ctx, entities.PlanFree).Return(freePlan(), nil)

	result, err := svc.CreateChallenge(ctx, 10, 1, 5)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonChallengesNotInPlan, result.Reason)
	f.challenges.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChallengeService_CreateChallenge_NonMember(t *testing.T) {
	ctx := context.Background()
	f, svc := newChallengeFixture(time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC))

	f.leagues.On("GetByID", ctx, int64(1)).Return(activeLeague(entities.PlanFree), nil)
	f.members.On("Get", ctx, int64(1), int64(99)).Return(nil, nil)

	result, err := svc.CreateChallenge(ctx, 99, 1, 5)

	require.NoError(t, err)
	assert.Equal(t, ReasonNotAMember, result.Reason)
}

func TestChallengeService_CloseExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 20, 20, 0, 0, 0, time.UTC)
	f, svc := newChallengeFixture(now)

	expired := []*entities.Challenge{
		{ID: 1, Status: entities.ChallengeStatusOpen},
		{ID: 2, Status: entities.ChallengeStatusOpen},
	}
	f.challenges.On("GetOpenExpired", ctx, now).Return(expired, nil)
	f.challenges.On("Update", ctx, expired[0]).Return(nil)
	f.challenges.On("Update", ctx, expired[1]).Return(nil)

	closed, err := svc.CloseExpired(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, closed)
	assert.Equal(t, entities.ChallengeStatusClosed, expired[0].Status)
	assert.Equal(t, entities.ChallengeStatusClosed, expired[1].Status)
}

func TestChallengeService_GetChallengeDetail_NotFound(t *testing.T) {
	ctx := context.Background()
	f, svc := newChallengeFixture(time.Date(2025, 3, 18, 12, 0, 0, 0, time.UTC))

	f.challenges.On("GetByID", ctx, int64(404)).Return(nil, nil)

	detail, err := svc.GetChallengeDetail(ctx, 404)

	require.NoError(t, err)
	assert.Nil(t, detail)
}
