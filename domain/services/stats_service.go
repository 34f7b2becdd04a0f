package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/utils"

	"github.com/jonboulle/clockwork"
)

type statsService struct {
	clock            clockwork.Clock
	userRepo         interfaces.UserRepository
	leagueRepo       interfaces.LeagueRepository
	memberRepo       interfaces.LeagueMemberRepository
	betRepo          interfaces.BetRepository
	challengeRepo    interfaces.ChallengeRepository
	walletRepo       interfaces.WalletRepository
	contributionRepo interfaces.ContributionRepository
}

// NewStatsService creates a new read-only aggregation service.
func NewStatsService(
	clock clockwork.Clock,
	userRepo interfaces.UserRepository,
	leagueRepo interfaces.LeagueRepository,
	memberRepo interfaces.LeagueMemberRepository,
	betRepo interfaces.BetRepository,
	challengeRepo interfaces.ChallengeRepository,
	walletRepo interfaces.WalletRepository,
	contributionRepo interfaces.ContributionRepository,
) interfaces.StatsService {
	return &statsService{
		clock:            clock,
		userRepo:         userRepo,
		leagueRepo:       leagueRepo,
		memberRepo:       memberRepo,
		betRepo:          betRepo,
		challengeRepo:    challengeRepo,
		walletRepo:       walletRepo,
		contributionRepo: contributionRepo,
	}
}

// GetUserLeagueStats aggregates a user's betting record within a league.
// Win rate and streaks consider settled won/lost bets only; voided bets
// count toward nothing but their own tally.
func (s *statsService) GetUserLeagueStats(ctx context.Context, userID, leagueID int64) (*entities.UserLeagueStats, error) {
	member, err := s.memberRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("user %d is not a member of league %d", userID, leagueID)
	}

	bets, err := s.betRepo.GetByUserAndLeague(ctx, userID, leagueID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	stats := &entities.UserLeagueStats{
		UserID:   userID,
		LeagueID: leagueID,
		Points:   member.Points,
	}

	// Bets arrive newest first.
	var settledRecentFirst []entities.BetStatus
	for _, bet := range bets {
		stats.TotalBets++
		stats.TotalWagered += bet.Amount
		if bet.IsPending() {
			stats.Pending++
			continue
		}
		switch bet.Status {
		case entities.BetStatusWon:
			stats.Wins++
			if bet.ActualWin != nil {
				stats.TotalWon += *bet.ActualWin
			}
			settledRecentFirst = append(settledRecentFirst, bet.Status)
		case entities.BetStatusLost:
			stats.Losses++
			settledRecentFirst = append(settledRecentFirst, bet.Status)
		case entities.BetStatusVoid:
			stats.Voided++
		}
	}

	stats.WinRatePercent = utils.WinRatePercent(stats.Wins, stats.Losses)
	stats.CurrentStreak = utils.CurrentStreak(settledRecentFirst)

	oldestFirst := make([]entities.BetStatus, len(settledRecentFirst))
	for i, status := range settledRecentFirst {
		oldestFirst[len(settledRecentFirst)-1-i] = status
	}
	stats.BestWinStreak, stats.WorstLossStreak = utils.LongestRuns(oldestFirst)

	return stats, nil
}

// GetLeaderboard returns a league's standings ordered by points with
// per-member win rates.
func (s *statsService) GetLeaderboard(ctx context.Context, leagueID int64) ([]*entities.LeaderboardEntry, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, fmt.Errorf("league %d not found", leagueID)
	}

	members, err := s.memberRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	entries := make([]*entities.LeaderboardEntry, 0, len(members))
	for i, member := range members {
		user, err := s.userRepo.GetByID(ctx, member.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user %d: %w", member.UserID, err)
		}
		username := ""
		if user != nil {
			username = user.Username
		}

		bets, err := s.betRepo.GetByUserAndLeague(ctx, member.UserID, leagueID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to get bets: %w", err)
		}
		wins, losses := 0, 0
		for _, bet := range bets {
			switch bet.Status {
			case entities.BetStatusWon:
				wins++
			case entities.BetStatusLost:
				losses++
			}
		}

		entries = append(entries, &entities.LeaderboardEntry{
			Rank:           i + 1,
			UserID:         member.UserID,
			Username:       username,
			Role:           member.Role,
			Points:         member.Points,
			SettledBets:    wins + losses,
			WinRatePercent: utils.WinRatePercent(wins, losses),
		})
	}

	return entries, nil
}

// GetAdminOverview returns the dashboard rollup counts.
func (s *statsService) GetAdminOverview(ctx context.Context) (*entities.AdminOverview, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalLeagues, activeLeagues, err := s.leagueRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count leagues: %w", err)
	}
	totalBets, pendingBets, err := s.betRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bets: %w", err)
	}
	totalChallenges, err := s.challengeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count challenges: %w", err)
	}
	frozenWallets, err := s.walletRepo.CountFrozen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count frozen wallets: %w", err)
	}
	contributed, err := s.contributionRepo.TotalCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum contributions: %w", err)
	}

	return &entities.AdminOverview{
		TotalUsers:       totalUsers,
		TotalLeagues:     totalLeagues,
		ActiveLeagues:    activeLeagues,
		TotalBets:        totalBets,
		PendingBets:      pendingBets,
		TotalChallenges:  totalChallenges,
		FrozenWallets:    frozenWallets,
		ContributedCents: contributed,
		GeneratedAt:      s.clock.Now(),
	}, nil
}
