package entities

import (
	"time"
)

// StreakKind identifies what a run of settled outcomes consists of
type StreakKind string

const (
	StreakKindWin  StreakKind = "win"
	StreakKindLoss StreakKind = "loss"
	StreakKindNone StreakKind = "none"
)

// Streak represents a run of identical settled outcomes.
type Streak struct {
	Kind   StreakKind `json:"kind"`
	Length int        `json:"length"`
}

// UserLeagueStats represents a user's aggregated betting record within
// one league. Win rate and streaks consider settled won/lost bets only.
type UserLeagueStats struct {
	UserID          int64  `json:"user_id"`
	LeagueID        int64  `json:"league_id"`
	Points          int64  `json:"points"`
	TotalBets       int    `json:"total_bets"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	Pending         int    `json:"pending"`
	Voided          int    `json:"voided"`
	WinRatePercent  int    `json:"win_rate_percent"`
	CurrentStreak   Streak `json:"current_streak"`
	BestWinStreak   int    `json:"best_win_streak"`
	WorstLossStreak int    `json:"worst_loss_streak"`
	TotalWagered    int64  `json:"total_wagered"`
	TotalWon        int64  `json:"total_won"`
}

// LeaderboardEntry represents one row of a league's standings table,
// ordered by points.
type LeaderboardEntry struct {
	Rank           int        `json:"rank"`
	UserID         int64      `json:"user_id"`
	Username       string     `json:"username"`
	Role           MemberRole `json:"role"`
	Points         int64      `json:"points"`
	SettledBets    int        `json:"settled_bets"`
	WinRatePercent int        `json:"win_rate_percent"`
}

// AdminOverview represents the dashboard rollup counts.
type AdminOverview struct {
	TotalUsers       int       `json:"total_users"`
	TotalLeagues     int       `json:"total_leagues"`
	ActiveLeagues    int       `json:"active_leagues"`
	TotalBets        int       `json:"total_bets"`
	PendingBets      int       `json:"pending_bets"`
	TotalChallenges  int       `json:"total_challenges"`
	FrozenWallets    int       `json:"frozen_wallets"`
	ContributedCents int64     `json:"contributed_cents"`
	GeneratedAt      time.Time `json:"generated_at"`
}
