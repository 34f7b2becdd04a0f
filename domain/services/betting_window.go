package services

import (
	"time"

	"matchday/domain/entities"
	"matchday/domain/utils"
)

// The betting window is a fixed global rule, not a plan quota: bets open
// seven days before kickoff and close ten minutes before it, for every
// league regardless of tier.
const (
	BettingWindowOpenOffset  = 7 * 24 * time.Hour
	BettingWindowCloseOffset = 10 * time.Minute
)

// ChallengeClosesAt derives a challenge's closing time from its match
// kickoff. Never supplied by callers.
func ChallengeClosesAt(kickoff time.Time) time.Time {
	return kickoff.Add(-BettingWindowCloseOffset)
}

// EvaluateBettingWindow decides whether a match accepts new bets at the
// given instant. The window is inclusive of its opening instant and
// exclusive of its closing instant: a bet at exactly kickoff-7d is
// accepted, a bet at exactly kickoff-10m is not. Pure and deterministic.
func EvaluateBettingWindow(kickoff, now time.Time) *entities.BettingWindow {
	opensAt := kickoff.Add(-BettingWindowOpenOffset)
	closesAt := ChallengeClosesAt(kickoff)

	window := &entities.BettingWindow{
		OpensAt:  opensAt,
		ClosesAt: closesAt,
	}

	if now.Before(opensAt) {
		window.Reason = entities.WindowReasonTooEarly
		window.DaysUntilOpen = utils.WholeDaysUntil(now, opensAt)
		return window
	}
	if !now.Before(closesAt) {
		window.Reason = entities.WindowReasonClosed
		return window
	}

	window.Valid = true
	return window
}
