package entities

import (
	"time"
)

// ChallengeStatus represents the state of a challenge. Transitions are
// monotonic: open -> closed -> settled.
type ChallengeStatus string

const (
	ChallengeStatusOpen    ChallengeStatus = "open"
	ChallengeStatusClosed  ChallengeStatus = "closed"
	ChallengeStatusSettled ChallengeStatus = "settled"
)

// Challenge represents a shared prediction event on one match within one
// league, open to all league members until a closing time derived from
// kickoff. At most one challenge exists per (league, match) pair.
type Challenge struct {
	ID          int64           `db:"id" json:"id"`
	LeagueID    int64           `db:"league_id" json:"league_id"`
	MatchID     int64           `db:"match_id" json:"match_id"`
	CreatedByID int64           `db:"created_by_id" json:"created_by_id"`
	Status      ChallengeStatus `db:"status" json:"status"`
	ClosesAt    time.Time       `db:"closes_at" json:"closes_at"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	SettledAt   *time.Time      `db:"settled_at" json:"settled_at"`
}

// IsOpen reports whether the challenge is still in its open state.
func (c *Challenge) IsOpen() bool {
	return c.Status == ChallengeStatusOpen
}

// AcceptsBets reports whether new bets may still join the challenge.
func (c *Challenge) AcceptsBets(now time.Time) bool {
	return c.IsOpen() && now.Before(c.ClosesAt)
}

// ChallengeDetail combines a challenge with the bets placed on it.
type ChallengeDetail struct {
	Challenge *Challenge `json:"challenge"`
	Bets      []*Bet     `json:"bets"`
}

// CreateChallengeResult represents the outcome of a challenge creation
// attempt.
type CreateChallengeResult struct {
	Allowed   bool       `json:"allowed"`
	Reason    string     `json:"reason,omitempty"`
	Challenge *Challenge `json:"challenge,omitempty"`
}
