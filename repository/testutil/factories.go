package testutil

import (
	"fmt"
	"time"

	"matchday/domain/entities"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(username string) *entities.User {
	now := time.Now()
	return &entities.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestCompetition creates an active test competition
func CreateTestCompetition(name string) *entities.Competition {
	return &entities.Competition{
		Name:      name,
		Sport:     "football",
		Season:    "2025/26",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

// CreateTestMatch creates a scheduled test match with default odds
func CreateTestMatch(competitionID int64, kickoffAt time.Time) *entities.Match {
	return &entities.Match{
		CompetitionID: competitionID,
		HomeTeam:      "Arsenal",
		AwayTeam:      "Spurs",
		KickoffAt:     kickoffAt,
		Status:        entities.MatchStatusScheduled,
		HomeOdds:      2.1,
		DrawOdds:      3.4,
		AwayOdds:      3.0,
		UpdatedAt:     time.Now(),
	}
}

// CreateTestLeague creates an active test league on the free plan
func CreateTestLeague(ownerID int64, name string) *entities.League {
	now := time.Now()
	return &entities.League{
		Name:       name,
		OwnerID:    ownerID,
		PlanID:     entities.PlanFree,
		InviteCode: fmt.Sprintf("inv-%d-%d", ownerID, now.UnixNano()%100000),
		IsPrivate:  true,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestLeagueOnPlan creates a test league on a specific plan
func CreateTestLeagueOnPlan(ownerID int64, name, planID string) *entities.League {
	league := CreateTestLeague(ownerID, name)
	league.PlanID = planID
	return league
}

// CreateTestMember creates a test league member with default points
func CreateTestMember(leagueID, userID int64, role entities.MemberRole) *entities.LeagueMember {
	return &entities.LeagueMember{
		LeagueID: leagueID,
		UserID:   userID,
		Role:     role,
		Points:   1000,
		JoinedAt: time.Now(),
	}
}

// CreateTestBet creates a pending test bet
func CreateTestBet(userID, leagueID, matchID int64, amount int64) *entities.Bet {
	return &entities.Bet{
		UserID:          userID,
		LeagueID:        leagueID,
		MatchID:         matchID,
		PredictionType:  entities.PredictionTypeWinner,
		PredictionValue: "home",
		Amount:          amount,
		Status:          entities.BetStatusPending,
		PotentialWin:    amount * 2,
		CreatedAt:       time.Now(),
	}
}

// CreateTestChallenge creates an open test challenge
func CreateTestChallenge(leagueID, matchID, createdByID int64, closesAt time.Time) *entities.Challenge {
	return &entities.Challenge{
		LeagueID:    leagueID,
		MatchID:     matchID,
		CreatedByID: createdByID,
		Status:      entities.ChallengeStatusOpen,
		ClosesAt:    closesAt,
		CreatedAt:   time.Now(),
	}
}

// CreateTestWallet creates a test wallet with a specific balance
func CreateTestWallet(leagueID int64, balanceCents int64) *entities.LeagueWallet {
	now := time.Now()
	return &entities.LeagueWallet{
		LeagueID:     leagueID,
		BalanceCents: balanceCents,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestContribution creates a completed test contribution
func CreateTestContribution(walletID, userID int64, amountCents int64) *entities.Contribution {
	return &entities.Contribution{
		WalletID:      walletID,
		UserID:        userID,
		AmountCents:   amountCents,
		PaymentMethod: "card",
		PaymentRef:    fmt.Sprintf("ref-%d-%d", walletID, time.Now().UnixNano()%100000),
		Status:        entities.ContributionStatusCompleted,
		CreatedAt:     time.Now(),
	}
}
