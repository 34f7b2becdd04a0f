package repository

import (
	"context"
	"testing"
	"time"

	"matchday/domain/entities"
	"matchday/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBetFixtures(t *testing.T, testDB *testutil.TestDatabase) (*entities.User, *entities.League, *entities.Match) {
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	user, err := userRepo.Create(ctx, "bettor", "bettor@example.com")
	require.NoError(t, err)

	matchRepo := NewMatchRepository(testDB.DB)
	competition := testutil.CreateTestCompetition("Premier League")
	require.NoError(t, matchRepo.CreateCompetition(ctx, competition))
	match := testutil.CreateTestMatch(competition.ID, time.Now().Add(48*time.Hour))
	require.NoError(t, matchRepo.CreateMatch(ctx, match))

	leagueRepo := NewLeagueRepository(testDB.DB)
	league := testutil.CreateTestLeague(user.ID, "Office League")
	require.NoError(t, leagueRepo.Create(ctx, league))

	memberRepo := NewLeagueMemberRepository(testDB.DB)
	require.NoError(t, memberRepo.Create(ctx, testutil.CreateTestMember(league.ID, user.ID, entities.MemberRoleOwner)))

	return user, league, match
}

func TestBetRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	user, league, match := setupBetFixtures(t, testDB)

	betRepo := NewBetRepository(testDB.DB)
	bet := testutil.CreateTestBet(user.ID, league.ID, match.ID, 200)

	err := betRepo.Create(ctx, bet)
	require.NoError(t, err)
	require.NotEqual(t, int64(0), bet.ID)

	saved, err := betRepo.GetByID(ctx, bet.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, entities.BetStatusPending, saved.Status)
	assert.Equal(t, int64(200), saved.Amount)
	assert.Equal(t, "home", saved.PredictionValue)
	assert.Nil(t, saved.SettledAt)
}

func TestBetRepository_CountByUserInRange(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	user, league, match := setupBetFixtures(t, testDB)

	betRepo := NewBetRepository(testDB.DB)
	for i := 0; i < 3; i++ {
		require.NoError(t, betRepo.Create(ctx, testutil.CreateTestBet(user.ID, league.ID, match.ID, 100)))
	}

	now := time.Now()
	count, err := betRepo.CountByUserInRange(ctx, user.ID, league.ID, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// A window entirely in the past matches nothing
	count, err = betRepo.CountByUserInRange(ctx, user.ID, league.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestBetRepository_SettleOnlyTouchesPendingBets(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	user, league, match := setupBetFixtures(t, testDB)

	betRepo := NewBetRepository(testDB.DB)
	bet := testutil.CreateTestBet(user.ID, league.ID, match.ID, 150)
	require.NoError(t, betRepo.Create(ctx, bet))

	settledAt := time.Now()
	err := betRepo.Settle(ctx, bet.ID, entities.BetStatusWon, 300, settledAt)
	require.NoError(t, err)

	saved, err := betRepo.GetByID(ctx, bet.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BetStatusWon, saved.Status)
	require.NotNil(t, saved.ActualWin)
	assert.Equal(t, int64(300), *saved.ActualWin)
	require.NotNil(t, saved.SettledAt)

	// Settling the same bet again must fail the pending guard
	err = betRepo.Settle(ctx, bet.ID, entities.BetStatusLost, 0, settledAt)
	require.Error(t, err)
}

func TestBetRepository_OneBetPerChallengePerUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	user, league, match := setupBetFixtures(t, testDB)

	challengeRepo := NewChallengeRepository(testDB.DB)
	challenge := testutil.CreateTestChallenge(league.ID, match.ID, user.ID, match.KickoffAt.Add(-10*time.Minute))
	require.NoError(t, challengeRepo.Create(ctx, challenge))

	betRepo := NewBetRepository(testDB.DB)
	first := testutil.CreateTestBet(user.ID, league.ID, match.ID, 100)
	first.ChallengeID = &challenge.ID
	require.NoError(t, betRepo.Create(ctx, first))

	second := testutil.CreateTestBet(user.ID, league.ID, match.ID, 100)
	second.ChallengeID = &challenge.ID
	err := betRepo.Create(ctx, second)
	require.Error(t, err, "unique index should reject a second bet on the same challenge")

	found, err := betRepo.GetByChallengeAndUser(ctx, challenge.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
}

func TestBetRepository_GetByUserAndLeagueOrdersNewestFirst(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	user, league, match := setupBetFixtures(t, testDB)

	betRepo := NewBetRepository(testDB.DB)
	var ids []int64
	for i := 0; i < 3; i++ {
		bet := testutil.CreateTestBet(user.ID, league.ID, match.ID, 100)
		require.NoError(t, betRepo.Create(ctx, bet))
		ids = append(ids, bet.ID)
	}

	bets, err := betRepo.GetByUserAndLeague(ctx, user.ID, league.ID, 2)
	require.NoError(t, err)
	require.Len(t, bets, 2)
	assert.Equal(t, ids[2], bets[0].ID)
	assert.Equal(t, ids[1], bets[1].ID)

	// A non-positive limit returns full history
	all, err := betRepo.GetByUserAndLeague(ctx, user.ID, league.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
