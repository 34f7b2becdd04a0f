package interfaces

import (
	"context"

	"matchday/domain/entities"
)

// PlaceBetInput carries everything needed to place a bet.
type PlaceBetInput struct {
	UserID          int64
	LeagueID        int64
	MatchID         int64
	ChallengeID     *int64
	PredictionType  string
	PredictionValue string
	Amount          int64
}

// BettingService defines the interface for bet placement, the weekly
// allowance and settlement
type BettingService interface {
	// WeeklyLimitStatus reports a user's bet allowance in a league for the
	// current calendar week
	WeeklyLimitStatus(ctx context.Context, userID, leagueID int64) (*entities.WeeklyLimitStatus, error)

	// PlaceBet runs the betting window, weekly limit and prediction checks
	// in sequence, then persists the bet and wagers the member's points
	PlaceBet(ctx context.Context, input PlaceBetInput) (*entities.PlaceBetResult, error)

	// SettleMatch grades all pending bets on a finished match and settles
	// the challenges attached to it
	SettleMatch(ctx context.Context, matchID int64) (*entities.SettlementSummary, error)
}

// LeagueService defines the interface for league lifecycle operations
type LeagueService interface {
	// CreateLeague creates a league with its owner membership and wallet
	CreateLeague(ctx context.Context, ownerID int64, name string, isPrivate bool) (*entities.League, error)

	// JoinLeague redeems an invite code for a membership
	JoinLeague(ctx context.Context, userID int64, inviteCode string) (*entities.JoinResult, error)

	// LeaveLeague removes a non-owner member from a league
	LeaveLeague(ctx context.Context, userID, leagueID int64) error

	// RegenerateInviteCode issues a fresh invite code
	RegenerateInviteCode(ctx context.Context, actorID, leagueID int64) (string, error)

	// TransferOwnership moves the owner role to another member
	TransferOwnership(ctx context.Context, ownerID, leagueID, newOwnerID int64) error

	// DeactivateLeague soft-deletes a league
	DeactivateLeague(ctx context.Context, ownerID, leagueID int64) error
}

// CompetitionService defines the interface for the competition-change gate
type CompetitionService interface {
	// CanChangeCompetition evaluates the competition-change gate for a league
	CanChangeCompetition(ctx context.Context, leagueID int64) (*entities.CompetitionChangeCheck, error)

	// DaysUntilCompetitionChange returns nil when a change is currently
	// allowed and the positive day count otherwise; a frozen wallet is
	// reported as an error rather than a count
	DaysUntilCompetitionChange(ctx context.Context, leagueID int64) (*int, error)

	// ChangeCompetition switches the league's tracked competition after
	// passing the gate
	ChangeCompetition(ctx context.Context, actorID, leagueID, competitionID int64) (*entities.CompetitionChangeCheck, error)
}

// WalletService defines the interface for the league wallet ledger
type WalletService interface {
	// GetOrCreateWallet lazily creates a league's wallet on first access
	GetOrCreateWallet(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error)

	// Contribute appends a completed contribution, credits the balance and
	// unfreezes the wallet
	Contribute(ctx context.Context, leagueID, userID int64, amountCents int64, paymentMethod string) (*entities.ContributionResult, error)

	// ProcessMonthlyPayment applies a due monthly charge, downgrading or
	// freezing the league on insufficient funds
	ProcessMonthlyPayment(ctx context.Context, leagueID int64) (*entities.MonthlyChargeResult, error)

	// Upgrade moves the league to a more expensive plan
	Upgrade(ctx context.Context, leagueID int64, newPlanID string) (*entities.PlanChangeResult, error)

	// Downgrade moves the league to a cheaper plan
	Downgrade(ctx context.Context, leagueID int64, newPlanID string) (*entities.PlanChangeResult, error)

	// Freeze applies an administrative freeze
	Freeze(ctx context.Context, leagueID int64) error

	// Unfreeze lifts an administrative freeze
	Unfreeze(ctx context.Context, leagueID int64) error
}

// ChallengeService defines the interface for shared prediction events
type ChallengeService interface {
	// CreateChallenge opens a challenge on a match for a league
	CreateChallenge(ctx context.Context, creatorID, leagueID, matchID int64) (*entities.CreateChallengeResult, error)

	// GetChallengeDetail retrieves a challenge with its bets
	GetChallengeDetail(ctx context.Context, challengeID int64) (*entities.ChallengeDetail, error)

	// CloseExpired transitions open challenges past their closing time
	CloseExpired(ctx context.Context) (int, error)
}

// StatsService defines the interface for read-only aggregations
type StatsService interface {
	// GetUserLeagueStats returns a user's record within a league
	GetUserLeagueStats(ctx context.Context, userID, leagueID int64) (*entities.UserLeagueStats, error)

	// GetLeaderboard returns a league's standings ordered by points
	GetLeaderboard(ctx context.Context, leagueID int64) ([]*entities.LeaderboardEntry, error)

	// GetAdminOverview returns the dashboard rollup counts
	GetAdminOverview(ctx context.Context) (*entities.AdminOverview, error)
}
