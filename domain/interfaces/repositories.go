package interfaces

import (
	"context"
	"time"

	"matchday/domain/entities"
	"matchday/events"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// Create creates a new user
	Create(ctx context.Context, username, email string) (*entities.User, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int, error)
}

// PlanRepository defines the interface for plan data access. Plans are
// seeded by migration and read-only at runtime.
type PlanRepository interface {
	// GetByID retrieves a plan by its stable key
	GetByID(ctx context.Context, id string) (*entities.Plan, error)

	// List returns all plans ordered by ascending monthly price
	List(ctx context.Context) ([]*entities.Plan, error)
}

// LeagueRepository defines the interface for league data access
type LeagueRepository interface {
	// Create creates a new league
	Create(ctx context.Context, league *entities.League) error

	// GetByID retrieves a league by ID
	GetByID(ctx context.Context, id int64) (*entities.League, error)

	// GetByInviteCode retrieves an active league by its invite code
	GetByInviteCode(ctx context.Context, code string) (*entities.League, error)

	// Update persists mutable league fields
	Update(ctx context.Context, league *entities.League) error

	// Count returns total and active league counts
	Count(ctx context.Context) (total int, active int, err error)
}

// LeagueMemberRepository defines the interface for membership data access
type LeagueMemberRepository interface {
	// Create adds a member to a league
	Create(ctx context.Context, member *entities.LeagueMember) error

	// Get retrieves a membership by league and user
	Get(ctx context.Context, leagueID, userID int64) (*entities.LeagueMember, error)

	// GetByLeague returns all members of a league ordered by points descending
	GetByLeague(ctx context.Context, leagueID int64) ([]*entities.LeagueMember, error)

	// CountByLeague returns the number of members in a league
	CountByLeague(ctx context.Context, leagueID int64) (int, error)

	// AddPoints atomically adjusts a member's points by delta
	AddPoints(ctx context.Context, leagueID, userID int64, delta int64) error

	// UpdateRole changes a member's role
	UpdateRole(ctx context.Context, leagueID, userID int64, role entities.MemberRole) error

	// Delete removes a membership
	Delete(ctx context.Context, leagueID, userID int64) error
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create creates a new bet record
	Create(ctx context.Context, bet *entities.Bet) error

	// GetByID retrieves a bet by ID
	GetByID(ctx context.Context, id int64) (*entities.Bet, error)

	// CountByUserInRange counts a user's bets in a league created inside
	// [from, to]
	CountByUserInRange(ctx context.Context, userID, leagueID int64, from, to time.Time) (int, error)

	// GetByUserAndLeague returns a user's bets in a league, newest first
	GetByUserAndLeague(ctx context.Context, userID, leagueID int64, limit int) ([]*entities.Bet, error)

	// GetPendingByMatch returns all pending bets on a match
	GetPendingByMatch(ctx context.Context, matchID int64) ([]*entities.Bet, error)

	// GetByChallengeAndUser retrieves a user's bet on a challenge
	GetByChallengeAndUser(ctx context.Context, challengeID, userID int64) (*entities.Bet, error)

	// GetByChallenge returns all bets on a challenge
	GetByChallenge(ctx context.Context, challengeID int64) ([]*entities.Bet, error)

	// Settle stamps a pending bet with its terminal status, actual win and
	// settlement time. Settled bets are never updated again.
	Settle(ctx context.Context, betID int64, status entities.BetStatus, actualWin int64, settledAt time.Time) error

	// Count returns total and pending bet counts
	Count(ctx context.Context) (total int, pending int, err error)
}

// ChallengeRepository defines the interface for challenge data access
type ChallengeRepository interface {
	// Create creates a new challenge
	Create(ctx context.Context, challenge *entities.Challenge) error

	// GetByID retrieves a challenge by ID
	GetByID(ctx context.Context, id int64) (*entities.Challenge, error)

	// GetByLeagueAndMatch retrieves the challenge for a (league, match) pair
	GetByLeagueAndMatch(ctx context.Context, leagueID, matchID int64) (*entities.Challenge, error)

	// GetByMatch returns all challenges on a match
	GetByMatch(ctx context.Context, matchID int64) ([]*entities.Challenge, error)

	// GetOpenExpired returns open challenges whose closing time has passed
	GetOpenExpired(ctx context.Context, now time.Time) ([]*entities.Challenge, error)

	// Update persists challenge state transitions
	Update(ctx context.Context, challenge *entities.Challenge) error

	// Count returns the total number of challenges
	Count(ctx context.Context) (int, error)
}

// WalletRepository defines the interface for league wallet data access
type WalletRepository interface {
	// GetByLeagueID retrieves a league's wallet
	GetByLeagueID(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error)

	// GetByLeagueIDForUpdate retrieves a league's wallet with a row lock,
	// serializing concurrent balance mutations within a transaction
	GetByLeagueIDForUpdate(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error)

	// Create creates a wallet for a league
	Create(ctx context.Context, wallet *entities.LeagueWallet) error

	// Update persists wallet balance and state changes
	Update(ctx context.Context, wallet *entities.LeagueWallet) error

	// GetDueLeagueIDs returns leagues whose wallets have a payment due and
	// are not frozen
	GetDueLeagueIDs(ctx context.Context, now time.Time) ([]int64, error)

	// CountFrozen returns the number of frozen wallets
	CountFrozen(ctx context.Context) (int, error)
}

// ContributionRepository defines the interface for the append-only
// contribution ledger
type ContributionRepository interface {
	// Create appends a contribution entry
	Create(ctx context.Context, contribution *entities.Contribution) error

	// GetByWallet returns a wallet's contributions, newest first
	GetByWallet(ctx context.Context, walletID int64, limit int) ([]*entities.Contribution, error)

	// TotalCompleted returns the sum of all completed contributions
	TotalCompleted(ctx context.Context) (int64, error)
}

// MatchRepository defines the read-only interface over ingested fixtures.
// Matches and competitions are written by the external sync collaborator.
type MatchRepository interface {
	// GetByID retrieves a match by ID
	GetByID(ctx context.Context, id int64) (*entities.Match, error)

	// GetUpcomingByCompetition returns scheduled matches for a competition
	// kicking off after now, soonest first
	GetUpcomingByCompetition(ctx context.Context, competitionID int64, now time.Time, limit int) ([]*entities.Match, error)

	// GetCompetition retrieves a competition by ID
	GetCompetition(ctx context.Context, id int64) (*entities.Competition, error)

	// ListCompetitions returns all active competitions
	ListCompetitions(ctx context.Context) ([]*entities.Competition, error)

	// CreateCompetition persists a new competition
	CreateCompetition(ctx context.Context, competition *entities.Competition) error

	// CreateMatch persists a new match
	CreateMatch(ctx context.Context, match *entities.Match) error

	// RecordResult stores the final score and status for a match
	RecordResult(ctx context.Context, matchID int64, homeScore, awayScore int, status entities.MatchStatus) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	PlanRepository() PlanRepository
	LeagueRepository() LeagueRepository
	LeagueMemberRepository() LeagueMemberRepository
	BetRepository() BetRepository
	ChallengeRepository() ChallengeRepository
	WalletRepository() WalletRepository
	ContributionRepository() ContributionRepository
	MatchRepository() MatchRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
