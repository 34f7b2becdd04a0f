package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// Challenge creation rejection reasons.
const (
	ReasonDuplicateChallenge  = "duplicate_challenge"
	ReasonMatchNotOpen        = "match_not_open"
	ReasonChallengesNotInPlan = "challenges_not_in_plan"
)

type challengeService struct {
	clock         clockwork.Clock
	leagueRepo    interfaces.LeagueRepository
	planRepo      interfaces.PlanRepository
	memberRepo    interfaces.LeagueMemberRepository
	matchRepo     interfaces.MatchRepository
	challengeRepo interfaces.ChallengeRepository
	betRepo       interfaces.BetRepository
}

// NewChallengeService creates a new challenge service.
func NewChallengeService(
	clock clockwork.Clock,
	leagueRepo interfaces.LeagueRepository,
	planRepo interfaces.PlanRepository,
	memberRepo interfaces.LeagueMemberRepository,
	matchRepo interfaces.MatchRepository,
	challengeRepo interfaces.ChallengeRepository,
	betRepo interfaces.BetRepository,
) interfaces.ChallengeService {
	return &challengeService{
		clock:         clock,
		leagueRepo:    leagueRepo,
		planRepo:      planRepo,
		memberRepo:    memberRepo,
		matchRepo:     matchRepo,
		challengeRepo: challengeRepo,
		betRepo:       betRepo,
	}
}

// CreateChallenge opens a challenge on a match for a league. Challenges
// are a paid-plan feature. At most one challenge exists per (league,
// match) pair; the closing time is derived from kickoff the same way the
// betting window close is.
func (s *challengeService) CreateChallenge(ctx context.Context, creatorID, leagueID, matchID int64) (*entities.CreateChallengeResult, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil || !league.IsActive {
		return &entities.CreateChallengeResult{Reason: ReasonLeagueInactive}, nil
	}

	member, err := s.memberRepo.Get(ctx, leagueID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if member == nil {
		return &entities.CreateChallengeResult{Reason: ReasonNotAMember}, nil
	}

	plan, err := s.planRepo.GetByID(ctx, league.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %q: %w", league.PlanID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %q not found", league.PlanID)
	}
	if !plan.HasFeature(entities.FeatureChallenges) {
		return &entities.CreateChallengeResult{Reason: ReasonChallengesNotInPlan}, nil
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if match == nil {
		return nil, fmt.Errorf("match %d not found", matchID)
	}

	now := s.clock.Now()
	closesAt := ChallengeClosesAt(match.KickoffAt)
	if !now.Before(closesAt) {
		return &entities.CreateChallengeResult{Reason: ReasonMatchNotOpen}, nil
	}

	existing, err := s.challengeRepo.GetByLeagueAndMatch(ctx, leagueID, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if existing != nil {
		return &entities.CreateChallengeResult{
			Reason:    ReasonDuplicateChallenge,
			Challenge: existing,
		}, nil
	}

	challenge := &entities.Challenge{
		LeagueID:    leagueID,
		MatchID:     matchID,
		CreatedByID: creatorID,
		Status:      entities.ChallengeStatusOpen,
		ClosesAt:    closesAt,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	return &entities.CreateChallengeResult{Allowed: true, Challenge: challenge}, nil
}

// GetChallengeDetail retrieves a challenge with all its bets.
func (s *challengeService) GetChallengeDetail(ctx context.Context, challengeID int64) (*entities.ChallengeDetail, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge %d: %w", challengeID, err)
	}
	if challenge == nil {
		return nil, nil
	}

	bets, err := s.betRepo.GetByChallenge(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge bets: %w", err)
	}

	return &entities.ChallengeDetail{Challenge: challenge, Bets: bets}, nil
}

// CloseExpired transitions open challenges whose closing time has passed
// to closed. Returns the number of challenges closed.
func (s *challengeService) CloseExpired(ctx context.Context) (int, error) {
	now := s.clock.Now()
	expired, err := s.challengeRepo.GetOpenExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to get expired challenges: %w", err)
	}

	closed := 0
	for _, challenge := range expired {
		challenge.Status = entities.ChallengeStatusClosed
		if err := s.challengeRepo.Update(ctx, challenge); err != nil {
			return closed, fmt.Errorf("failed to close challenge %d: %w", challenge.ID, err)
		}
		closed++
	}

	if closed > 0 {
		log.WithField("count", closed).Info("Closed expired challenges")
	}
	return closed, nil
}
