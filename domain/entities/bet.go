package entities

import (
	"time"
)

// BetStatus represents the lifecycle state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
	BetStatusVoid    BetStatus = "void"
)

// Bet represents a single prediction a user placed in a league.
// Status only ever transitions pending -> won/lost/void; settled bets are
// never re-opened and SettledAt is stamped exactly once.
type Bet struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	LeagueID        int64      `db:"league_id" json:"league_id"`
	MatchID         int64      `db:"match_id" json:"match_id"`
	ChallengeID     *int64     `db:"challenge_id" json:"challenge_id"`
	PredictionType  string     `db:"prediction_type" json:"prediction_type"`
	PredictionValue string     `db:"prediction_value" json:"prediction_value"`
	Amount          int64      `db:"amount" json:"amount"`
	Status          BetStatus  `db:"status" json:"status"`
	PotentialWin    int64      `db:"potential_win" json:"potential_win"`
	ActualWin       *int64     `db:"actual_win" json:"actual_win"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	SettledAt       *time.Time `db:"settled_at" json:"settled_at"`
}

// IsPending reports whether the bet still awaits settlement.
func (b *Bet) IsPending() bool {
	return b.Status == BetStatusPending
}

// WindowReason explains why a betting window rejected a bet
type WindowReason string

const (
	WindowReasonTooEarly WindowReason = "too_early"
	WindowReasonClosed   WindowReason = "window_closed"
)

// BettingWindow is the result of evaluating the fixed betting window for
// a match at a given instant.
type BettingWindow struct {
	Valid         bool         `json:"valid"`
	Reason        WindowReason `json:"reason,omitempty"`
	OpensAt       time.Time    `json:"opens_at"`
	ClosesAt      time.Time    `json:"closes_at"`
	DaysUntilOpen int          `json:"days_until_open,omitempty"` // whole days until OpensAt, only set for too_early
}

// WeeklyLimitStatus describes a user's bet allowance in a league for the
// current calendar week.
type WeeklyLimitStatus struct {
	Used        int       `json:"used"`
	Limit       int       `json:"limit"` // raw plan value; UnlimitedSentinel when unlimited
	Remaining   int       `json:"remaining"` // UnlimitedSentinel when unlimited
	IsUnlimited bool      `json:"is_unlimited"`
	ResetsAt    time.Time `json:"resets_at"`
}

// CanPlaceBet reports whether one more bet fits under the weekly allowance.
func (s *WeeklyLimitStatus) CanPlaceBet() bool {
	return NewPlanLimit(s.Limit).Allows(s.Used)
}

// PlaceBetResult represents the outcome of a bet placement attempt.
// Business-rule rejections come back with Allowed=false and a reason;
// only true faults surface as errors.
type PlaceBetResult struct {
	Allowed bool               `json:"allowed"`
	Reason  string             `json:"reason,omitempty"`
	Detail  string             `json:"detail,omitempty"`
	Bet     *Bet               `json:"bet,omitempty"`
	Window  *BettingWindow     `json:"window,omitempty"`
	Limit   *WeeklyLimitStatus `json:"limit,omitempty"`
}

// SettlementSummary reports what a match settlement run did.
type SettlementSummary struct {
	MatchID           int64   `json:"match_id"`
	Outcome           Outcome `json:"outcome,omitempty"`
	Voided            bool    `json:"voided"`
	BetsSettled       int     `json:"bets_settled"`
	BetsWon           int     `json:"bets_won"`
	BetsLost          int     `json:"bets_lost"`
	ChallengesSettled int     `json:"challenges_settled"`
}
