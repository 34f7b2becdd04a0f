package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/utils"
	"matchday/events"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// DefaultWeeklyBetLimit is the defensive fallback applied when a league's
// plan cannot be resolved. Should not occur in practice.
const DefaultWeeklyBetLimit = 3

// Bet placement rejection reasons. Each failure mode carries a distinct
// user-facing reason string.
const (
	ReasonInvalidAmount      = "invalid_amount"
	ReasonLeagueInactive     = "league_inactive"
	ReasonNotAMember         = "not_a_member"
	ReasonTooEarly           = "too_early"
	ReasonWindowClosed       = "window_closed"
	ReasonWeeklyLimitReached = "weekly_limit_reached"
	ReasonInvalidPrediction  = "invalid_prediction"
	ReasonInsufficientPoints = "insufficient_points"
	ReasonChallengeMismatch  = "challenge_mismatch"
	ReasonChallengeNotOpen   = "challenge_not_open"
	ReasonAlreadyBet         = "already_bet_on_challenge"
)

type bettingService struct {
	clock         clockwork.Clock
	leagueRepo    interfaces.LeagueRepository
	planRepo      interfaces.PlanRepository
	memberRepo    interfaces.LeagueMemberRepository
	betRepo       interfaces.BetRepository
	matchRepo     interfaces.MatchRepository
	challengeRepo interfaces.ChallengeRepository
	publisher     interfaces.EventPublisher
}

// NewBettingService creates a new betting service
func NewBettingService(
	clock clockwork.Clock,
	leagueRepo interfaces.LeagueRepository,
	planRepo interfaces.PlanRepository,
	memberRepo interfaces.LeagueMemberRepository,
	betRepo interfaces.BetRepository,
	matchRepo interfaces.MatchRepository,
	challengeRepo interfaces.ChallengeRepository,
	publisher interfaces.EventPublisher,
) interfaces.BettingService {
	return &bettingService{
		clock:         clock,
		leagueRepo:    leagueRepo,
		planRepo:      planRepo,
		memberRepo:    memberRepo,
		betRepo:       betRepo,
		matchRepo:     matchRepo,
		challengeRepo: challengeRepo,
		publisher:     publisher,
	}
}

// WeeklyLimitStatus reports a user's bet allowance in a league for the
// current calendar week. The count resets at week boundaries purely as a
// function of now; no per-user reset state is stored.
func (s *bettingService) WeeklyLimitStatus(ctx context.Context, userID, leagueID int64) (*entities.WeeklyLimitStatus, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, fmt.Errorf("league %d not found", leagueID)
	}

	limit := entities.NewPlanLimit(DefaultWeeklyBetLimit)
	plan, err := s.planRepo.GetByID(ctx, league.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %q: %w", league.PlanID, err)
	}
	if plan != nil {
		limit = plan.WeeklyBetLimit()
	} else {
		log.WithFields(log.Fields{
			"leagueID": leagueID,
			"planID":   league.PlanID,
		}).Warn("League plan not found, applying default weekly bet limit")
	}

	now := s.clock.Now()
	weekStart := utils.WeekStart(now)
	weekEnd := utils.WeekEnd(now)

	used, err := s.betRepo.CountByUserInRange(ctx, userID, leagueID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count bets this week: %w", err)
	}

	status := &entities.WeeklyLimitStatus{
		Used:     used,
		Limit:    limit.Raw(),
		ResetsAt: weekEnd,
	}
	if limit.IsUnlimited() {
		status.IsUnlimited = true
		status.Remaining = entities.UnlimitedSentinel
		return status, nil
	}

	status.Remaining = limit.Value() - used
	if status.Remaining < 0 {
		status.Remaining = 0
	}
	return status, nil
}

// PlaceBet validates a bet through the betting window, the weekly limit
// and the prediction validator, in that order, then wagers the member's
// points and persists the bet.
func (s *bettingService) PlaceBet(ctx context.Context, input interfaces.PlaceBetInput) (*entities.PlaceBetResult, error) {
	reject := func(reason, detail string) *entities.PlaceBetResult {
		return &entities.PlaceBetResult{Reason: reason, Detail: detail}
	}

	if input.Amount <= 0 {
		return reject(ReasonInvalidAmount, "bet amount must be positive"), nil
	}

	league, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", input.LeagueID, err)
	}
	if league == nil {
		return nil, fmt.Errorf("league %d not found", input.LeagueID)
	}
	if !league.IsActive {
		return reject(ReasonLeagueInactive, "league has been deactivated"), nil
	}

	member, err := s.memberRepo.Get(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if member == nil {
		return reject(ReasonNotAMember, "user is not a member of this league"), nil
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", input.MatchID, err)
	}
	if match == nil {
		return nil, fmt.Errorf("match %d not found", input.MatchID)
	}

	now := s.clock.Now()

	// 1. Betting window, a fixed global rule.
	window := EvaluateBettingWindow(match.KickoffAt, now)
	if !window.Valid {
		reason := ReasonWindowClosed
		detail := "the betting window for this match has closed"
		if window.Reason == entities.WindowReasonTooEarly {
			reason = ReasonTooEarly
			detail = fmt.Sprintf("betting opens in %d day(s)", window.DaysUntilOpen)
		}
		result := reject(reason, detail)
		result.Window = window
		return result, nil
	}

	// 2. Weekly allowance from the league's plan.
	limitStatus, err := s.WeeklyLimitStatus(ctx, input.UserID, input.LeagueID)
	if err != nil {
		return nil, err
	}
	if !limitStatus.CanPlaceBet() {
		result := reject(ReasonWeeklyLimitReached,
			fmt.Sprintf("weekly limit of %d bet(s) reached, resets %s", limitStatus.Limit, limitStatus.ResetsAt.Format("Mon 15:04")))
		result.Window = window
		result.Limit = limitStatus
		return result, nil
	}

	// 3. Prediction payload.
	outcome, err := entities.ParsePrediction(input.PredictionType, input.PredictionValue)
	if err != nil {
		return reject(ReasonInvalidPrediction, err.Error()), nil
	}

	if !member.CanAfford(input.Amount) {
		return reject(ReasonInsufficientPoints,
			fmt.Sprintf("insufficient points: have %d, need %d", member.Points, input.Amount)), nil
	}

	var challengeID *int64
	if input.ChallengeID != nil {
		challenge, err := s.challengeRepo.GetByID(ctx, *input.ChallengeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get challenge %d: %w", *input.ChallengeID, err)
		}
		if challenge == nil {
			return nil, fmt.Errorf("challenge %d not found", *input.ChallengeID)
		}
		if challenge.LeagueID != input.LeagueID || challenge.MatchID != input.MatchID {
			return reject(ReasonChallengeMismatch, "challenge belongs to a different league or match"), nil
		}
		if !challenge.AcceptsBets(now) {
			return reject(ReasonChallengeNotOpen, "challenge is no longer accepting bets"), nil
		}
		existing, err := s.betRepo.GetByChallengeAndUser(ctx, challenge.ID, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing challenge bet: %w", err)
		}
		if existing != nil {
			return reject(ReasonAlreadyBet, "a bet was already placed on this challenge"), nil
		}
		challengeID = &challenge.ID
	}

	potentialWin := int64(float64(input.Amount) * match.OddsFor(outcome))

	// Wager the points up front; winnings come back at settlement.
	if err := s.memberRepo.AddPoints(ctx, input.LeagueID, input.UserID, -input.Amount); err != nil {
		return nil, fmt.Errorf("failed to wager points: %w", err)
	}

	bet := &entities.Bet{
		UserID:          input.UserID,
		LeagueID:        input.LeagueID,
		MatchID:         input.MatchID,
		ChallengeID:     challengeID,
		PredictionType:  input.PredictionType,
		PredictionValue: input.PredictionValue,
		Amount:          input.Amount,
		Status:          entities.BetStatusPending,
		PotentialWin:    potentialWin,
	}
	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	s.publisher.Publish(events.BetPlacedEvent{
		BetID:    bet.ID,
		UserID:   input.UserID,
		LeagueID: input.LeagueID,
		MatchID:  input.MatchID,
		Amount:   input.Amount,
	})

	return &entities.PlaceBetResult{
		Allowed: true,
		Bet:     bet,
		Window:  window,
		Limit:   limitStatus,
	}, nil
}

// SettleMatch grades all pending bets on a match against its final
// outcome and settles the challenges attached to it. Cancelled matches
// void their bets and refund the wagered points.
func (s *bettingService) SettleMatch(ctx context.Context, matchID int64) (*entities.SettlementSummary, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if match == nil {
		return nil, fmt.Errorf("match %d not found", matchID)
	}

	outcome, hasResult := match.Result()
	voided := match.Status == entities.MatchStatusCancelled
	if !hasResult && !voided {
		return nil, fmt.Errorf("match %d has no result to settle against", matchID)
	}

	bets, err := s.betRepo.GetPendingByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending bets: %w", err)
	}

	now := s.clock.Now()
	summary := &entities.SettlementSummary{MatchID: matchID, Outcome: outcome, Voided: voided}

	for _, bet := range bets {
		status := entities.BetStatusVoid
		var actualWin int64

		if !voided {
			predicted, err := entities.ParsePrediction(bet.PredictionType, bet.PredictionValue)
			switch {
			case err != nil:
				// Unreadable historical payload: void and refund.
				status = entities.BetStatusVoid
			case predicted == outcome:
				status = entities.BetStatusWon
				actualWin = bet.PotentialWin
			default:
				status = entities.BetStatusLost
			}
		}

		if err := s.betRepo.Settle(ctx, bet.ID, status, actualWin, now); err != nil {
			return nil, fmt.Errorf("failed to settle bet %d: %w", bet.ID, err)
		}

		// Winners collect their payout; voided bets get their stake back.
		var credit int64
		switch status {
		case entities.BetStatusWon:
			credit = actualWin
			summary.BetsWon++
		case entities.BetStatusVoid:
			credit = bet.Amount
		default:
			summary.BetsLost++
		}
		if credit != 0 {
			if err := s.memberRepo.AddPoints(ctx, bet.LeagueID, bet.UserID, credit); err != nil {
				return nil, fmt.Errorf("failed to credit points for bet %d: %w", bet.ID, err)
			}
		}
		summary.BetsSettled++

		s.publisher.Publish(events.BetSettledEvent{
			BetID:     bet.ID,
			UserID:    bet.UserID,
			LeagueID:  bet.LeagueID,
			Status:    string(status),
			ActualWin: actualWin,
		})
	}

	challenges, err := s.challengeRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenges for match: %w", err)
	}
	for _, challenge := range challenges {
		if challenge.Status == entities.ChallengeStatusSettled {
			continue
		}
		challenge.Status = entities.ChallengeStatusSettled
		challenge.SettledAt = &now
		if err := s.challengeRepo.Update(ctx, challenge); err != nil {
			return nil, fmt.Errorf("failed to settle challenge %d: %w", challenge.ID, err)
		}
		summary.ChallengesSettled++

		s.publisher.Publish(events.ChallengeSettledEvent{
			ChallengeID: challenge.ID,
			LeagueID:    challenge.LeagueID,
			MatchID:     matchID,
		})
	}

	log.WithFields(log.Fields{
		"matchID":    matchID,
		"settled":    summary.BetsSettled,
		"won":        summary.BetsWon,
		"lost":       summary.BetsLost,
		"challenges": summary.ChallengesSettled,
	}).Info("Match settled")

	return summary, nil
}
