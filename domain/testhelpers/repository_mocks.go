package testhelpers

import (
	"context"
	"time"

	"matchday/domain/entities"
	"matchday/events"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username, email string) (*entities.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPlanRepository is a mock implementation of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id string) (*entities.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context) ([]*entities.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Plan), args.Error(1)
}

// MockLeagueRepository is a mock implementation of LeagueRepository
type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) Create(ctx context.Context, league *entities.League) error {
	args := m.Called(ctx, league)
	return args.Error(0)
}

func (m *MockLeagueRepository) GetByID(ctx context.Context, id int64) (*entities.League, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.League), args.Error(1)
}

func (m *MockLeagueRepository) GetByInviteCode(ctx context.Context, code string) (*entities.League, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.League), args.Error(1)
}

func (m *MockLeagueRepository) Update(ctx context.Context, league *entities.League) error {
	args := m.Called(ctx, league)
	return args.Error(0)
}

func (m *MockLeagueRepository) Count(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockLeagueMemberRepository is a mock implementation of LeagueMemberRepository
type MockLeagueMemberRepository struct {
	mock.Mock
}

func (m *MockLeagueMemberRepository) Create(ctx context.Context, member *entities.LeagueMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockLeagueMemberRepository) Get(ctx context.Context, leagueID, userID int64) (*entities.LeagueMember, error) {
	args := m.Called(ctx, leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LeagueMember), args.Error(1)
}

func (m *MockLeagueMemberRepository) GetByLeague(ctx context.Context, leagueID int64) ([]*entities.LeagueMember, error) {
	args := m.Called(ctx, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeagueMember), args.Error(1)
}

func (m *MockLeagueMemberRepository) CountByLeague(ctx context.Context, leagueID int64) (int, error) {
	args := m.Called(ctx, leagueID)
	return args.Int(0), args.Error(1)
}

func (m *MockLeagueMemberRepository) AddPoints(ctx context.Context, leagueID, userID int64, delta int64) error {
	args := m.Called(ctx, leagueID, userID, delta)
	return args.Error(0)
}

func (m *MockLeagueMemberRepository) UpdateRole(ctx context.Context, leagueID, userID int64, role entities.MemberRole) error {
	args := m.Called(ctx, leagueID, userID, role)
	return args.Error(0)
}

func (m *MockLeagueMemberRepository) Delete(ctx context.Context, leagueID, userID int64) error {
	args := m.Called(ctx, leagueID, userID)
	return args.Error(0)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) CountByUserInRange(ctx context.Context, userID, leagueID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, userID, leagueID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockBetRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID int64, limit int) ([]*entities.Bet, error) {
	args := m.Called(ctx, userID, leagueID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetPendingByMatch(ctx context.Context, matchID int64) ([]*entities.Bet, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByChallengeAndUser(ctx context.Context, challengeID, userID int64) (*entities.Bet, error) {
	args := m.Called(ctx, challengeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByChallenge(ctx context.Context, challengeID int64) ([]*entities.Bet, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

func (m *MockBetRepository) Settle(ctx context.Context, betID int64, status entities.BetStatus, actualWin int64, settledAt time.Time) error {
	args := m.Called(ctx, betID, status, actualWin, settledAt)
	return args.Error(0)
}

func (m *MockBetRepository) Count(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockChallengeRepository is a mock implementation of ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(ctx context.Context, challenge *entities.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, id int64) (*entities.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetByLeagueAndMatch(ctx context.Context, leagueID, matchID int64) (*entities.Challenge, error) {
	args := m.Called(ctx, leagueID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetByMatch(ctx context.Context, matchID int64) ([]*entities.Challenge, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetOpenExpired(ctx context.Context, now time.Time) ([]*entities.Challenge, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) Update(ctx context.Context, challenge *entities.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByLeagueID(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error) {
	args := m.Called(ctx, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LeagueWallet), args.Error(1)
}

func (m *MockWalletRepository) GetByLeagueIDForUpdate(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error) {
	args := m.Called(ctx, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LeagueWallet), args.Error(1)
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.LeagueWallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, wallet *entities.LeagueWallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetDueLeagueIDs(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockWalletRepository) CountFrozen(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockContributionRepository is a mock implementation of ContributionRepository
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Create(ctx context.Context, contribution *entities.Contribution) error {
	args := m.Called(ctx, contribution)
	return args.Error(0)
}

func (m *MockContributionRepository) GetByWallet(ctx context.Context, walletID int64, limit int) ([]*entities.Contribution, error) {
	args := m.Called(ctx, walletID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Contribution), args.Error(1)
}

func (m *MockContributionRepository) TotalCompleted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) GetUpcomingByCompetition(ctx context.Context, competitionID int64, now time.Time, limit int) ([]*entities.Match, error) {
	args := m.Called(ctx, competitionID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) GetCompetition(ctx context.Context, id int64) (*entities.Competition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Competition), args.Error(1)
}

func (m *MockMatchRepository) ListCompetitions(ctx context.Context) ([]*entities.Competition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Competition), args.Error(1)
}

func (m *MockMatchRepository) CreateCompetition(ctx context.Context, competition *entities.Competition) error {
	args := m.Called(ctx, competition)
	return args.Error(0)
}

func (m *MockMatchRepository) CreateMatch(ctx context.Context, match *entities.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) RecordResult(ctx context.Context, matchID int64, homeScore, awayScore int, status entities.MatchStatus) error {
	args := m.Called(ctx, matchID, homeScore, awayScore, status)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}
