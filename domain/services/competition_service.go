package services

import (
	"context"
	"errors"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/utils"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// CompetitionChangeCooldownDays is the rolling cooldown applied to
// limited plans between competition changes. Unlike the weekly bet
// allowance this is NOT anchored to calendar weeks: it is a rolling
// window measured from the last change.
const CompetitionChangeCooldownDays = 7

// ErrWalletFrozen distinguishes the frozen-wallet block from an active
// cooldown when only a day count is asked for.
var ErrWalletFrozen = errors.New("league wallet is frozen")

// Competition-change rejection reasons.
const (
	ReasonWalletFrozen       = "wallet_frozen"
	ReasonChangeCooldown     = "change_cooldown"
	ReasonNotAuthorized      = "not_authorized"
	ReasonUnknownCompetition = "unknown_competition"
)

type competitionService struct {
	clock      clockwork.Clock
	leagueRepo interfaces.LeagueRepository
	planRepo   interfaces.PlanRepository
	memberRepo interfaces.LeagueMemberRepository
	walletRepo interfaces.WalletRepository
	matchRepo  interfaces.MatchRepository
}

// NewCompetitionService creates a new competition service
func NewCompetitionService(
	clock clockwork.Clock,
	leagueRepo interfaces.LeagueRepository,
	planRepo interfaces.PlanRepository,
	memberRepo interfaces.LeagueMemberRepository,
	walletRepo interfaces.WalletRepository,
	matchRepo interfaces.MatchRepository,
) interfaces.CompetitionService {
	return &competitionService{
		clock:      clock,
		leagueRepo: leagueRepo,
		planRepo:   planRepo,
		memberRepo: memberRepo,
		walletRepo: walletRepo,
		matchRepo:  matchRepo,
	}
}

// CanChangeCompetition evaluates the gate for a league. Rules in order:
// a frozen wallet always blocks, a league that never changed is always
// allowed, unlimited plans are always allowed, and limited plans wait
// out the rolling cooldown.
func (s *competitionService) CanChangeCompetition(ctx context.Context, leagueID int64) (*entities.CompetitionChangeCheck, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, fmt.Errorf("league %d not found", leagueID)
	}

	wallet, err := s.walletRepo.GetByLeagueID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet != nil && wallet.IsFrozen {
		return &entities.CompetitionChangeCheck{
			Reason: ReasonWalletFrozen,
		}, nil
	}

	if !league.HasEverChangedCompetition() {
		return &entities.CompetitionChangeCheck{Allowed: true}, nil
	}

	plan, err := s.planRepo.GetByID(ctx, league.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %q: %w", league.PlanID, err)
	}
	if plan != nil && plan.CompetitionChangeLimit().IsUnlimited() {
		return &entities.CompetitionChangeCheck{Allowed: true}, nil
	}

	daysSince := utils.DaysSince(s.clock.Now(), *league.CompetitionChangedAt)
	if daysSince >= CompetitionChangeCooldownDays {
		return &entities.CompetitionChangeCheck{Allowed: true}, nil
	}

	return &entities.CompetitionChangeCheck{
		Reason:        ReasonChangeCooldown,
		DaysRemaining: CompetitionChangeCooldownDays - daysSince,
	}, nil
}

// DaysUntilCompetitionChange returns nil when a change is currently
// allowed and the positive day count otherwise. A frozen wallet is not a
// cooldown, so it surfaces as ErrWalletFrozen instead of a count. Used
// for display without running the full gate side effects.
func (s *competitionService) DaysUntilCompetitionChange(ctx context.Context, leagueID int64) (*int, error) {
	check, err := s.CanChangeCompetition(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if check.Reason == ReasonWalletFrozen {
		return nil, ErrWalletFrozen
	}
	if check.Allowed || check.DaysRemaining == 0 {
		return nil, nil
	}
	days := check.DaysRemaining
	return &days, nil
}

// ChangeCompetition switches the league's tracked competition after the
// gate passes, stamping the change time for the next cooldown.
func (s *competitionService) ChangeCompetition(ctx context.Context, actorID, leagueID, competitionID int64) (*entities.CompetitionChangeCheck, error) {
	member, err := s.memberRepo.Get(ctx, leagueID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if member == nil || !member.CanManageLeague() {
		return &entities.CompetitionChangeCheck{Reason: ReasonNotAuthorized}, nil
	}

	competition, err := s.matchRepo.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competition %d: %w", competitionID, err)
	}
	if competition == nil || !competition.IsActive {
		return &entities.CompetitionChangeCheck{Reason: ReasonUnknownCompetition}, nil
	}

	check, err := s.CanChangeCompetition(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !check.Allowed {
		return check, nil
	}

	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}

	now := s.clock.Now()
	league.CurrentCompetitionID = &competitionID
	league.CompetitionChangedAt = &now
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to update league: %w", err)
	}

	log.WithFields(log.Fields{
		"leagueID":      leagueID,
		"competitionID": competitionID,
		"actorID":       actorID,
	}).Info("League competition changed")

	return check, nil
}
