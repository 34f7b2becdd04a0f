package utils

import (
	"math"

	"matchday/domain/entities"
)

// CurrentStreak computes the run of identical outcomes starting from the
// most recent settled bet. The input must be ordered most-recent-first
// and contain only won/lost statuses.
func CurrentStreak(mostRecentFirst []entities.BetStatus) entities.Streak {
	if len(mostRecentFirst) == 0 {
		return entities.Streak{Kind: entities.StreakKindNone}
	}

	kind := entities.StreakKindLoss
	if mostRecentFirst[0] == entities.BetStatusWon {
		kind = entities.StreakKindWin
	}

	length := 0
	for _, status := range mostRecentFirst {
		if status != mostRecentFirst[0] {
			break
		}
		length++
	}

	return entities.Streak{Kind: kind, Length: length}
}

// LongestRuns scans an oldest-first sequence of settled outcomes and
// returns the longest run of consecutive wins and the longest run of
// consecutive losses across the whole history.
func LongestRuns(oldestFirst []entities.BetStatus) (bestWin, worstLoss int) {
	var winRun, lossRun int
	for _, status := range oldestFirst {
		if status == entities.BetStatusWon {
			winRun++
			lossRun = 0
			if winRun > bestWin {
				bestWin = winRun
			}
		} else {
			lossRun++
			winRun = 0
			if lossRun > worstLoss {
				worstLoss = lossRun
			}
		}
	}
	return bestWin, worstLoss
}

// WinRatePercent returns wins/(wins+losses) as a rounded integer
// percentage, and 0 when no settled bets exist.
func WinRatePercent(wins, losses int) int {
	settled := wins + losses
	if settled == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(settled) * 100))
}
