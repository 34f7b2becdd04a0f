package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/utils"
	"matchday/events"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// Wallet operation rejection reasons.
const (
	ReasonInvalidContribution = "invalid_contribution"
	ReasonNotAnUpgrade        = "not_an_upgrade"
	ReasonNotADowngrade       = "not_a_downgrade"
	ReasonMemberCapExceeded   = "member_cap_exceeded"
	ReasonInsufficientBalance = "insufficient_balance"
	ReasonUnknownPlan         = "unknown_plan"
)

type walletService struct {
	clock            clockwork.Clock
	leagueRepo       interfaces.LeagueRepository
	planRepo         interfaces.PlanRepository
	memberRepo       interfaces.LeagueMemberRepository
	walletRepo       interfaces.WalletRepository
	contributionRepo interfaces.ContributionRepository
	publisher        interfaces.EventPublisher
}

// NewWalletService creates a new wallet service. Callers are expected to
// run mutating operations inside a unit of work so the row lock taken by
// GetByLeagueIDForUpdate serializes concurrent mutations of one wallet.
func NewWalletService(
	clock clockwork.Clock,
	leagueRepo interfaces.LeagueRepository,
	planRepo interfaces.PlanRepository,
	memberRepo interfaces.LeagueMemberRepository,
	walletRepo interfaces.WalletRepository,
	contributionRepo interfaces.ContributionRepository,
	publisher interfaces.EventPublisher,
) interfaces.WalletService {
	return &walletService{
		clock:            clock,
		leagueRepo:       leagueRepo,
		planRepo:         planRepo,
		memberRepo:       memberRepo,
		walletRepo:       walletRepo,
		contributionRepo: contributionRepo,
		publisher:        publisher,
	}
}

// GetOrCreateWallet lazily creates a league's wallet on first access.
func (s *walletService) GetOrCreateWallet(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error) {
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
	if wallet != nil {
		return wallet, nil
	}

	wallet = &entities.LeagueWallet{LeagueID: leagueID}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return wallet, nil
}

// Contribute appends a completed contribution to the ledger, credits the
// balance and unconditionally clears any freeze. Any positive amount
// unfreezes; there is no minimum threshold.
func (s *walletService) Contribute(ctx context.Context, leagueID, userID int64, amountCents int64, paymentMethod string) (*entities.ContributionResult, error) {
	if amountCents <= 0 {
		return &entities.ContributionResult{
			Reason: ReasonInvalidContribution,
		}, nil
	}

	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, fmt.Errorf("league %d not found", leagueID)
	}

	plan, err := s.planRepo.GetByID(ctx, league.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %q: %w", league.PlanID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %q not found", league.PlanID)
	}

	if _, err := s.GetOrCreateWallet(ctx, leagueID); err != nil {
		return nil, err
	}
	wallet, err := s.walletRepo.GetByLeagueIDForUpdate(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	// Mock payment rail: contributions always complete synchronously.
	contribution := &entities.Contribution{
		WalletID:      wallet.ID,
		UserID:        userID,
		AmountCents:   amountCents,
		PaymentMethod: paymentMethod,
		PaymentRef:    uuid.NewString(),
		Status:        entities.ContributionStatusCompleted,
	}
	if err := s.contributionRepo.Create(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}

	unfroze := wallet.IsFrozen
	wallet.BalanceCents += amountCents
	wallet.IsFrozen = false
	if wallet.NextPaymentDate == nil && plan.IsPaid() && wallet.BalanceCents >= plan.MonthlyPriceCents {
		next := utils.NextMonthFirst(s.clock.Now())
		wallet.NextPaymentDate = &next
	}
	if err := s.walletRepo.Update(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}

	s.publisher.Publish(events.ContributionEvent{
		LeagueID:    leagueID,
		UserID:      userID,
		AmountCents: amountCents,
		NewBalance:  wallet.BalanceCents,
		Unfroze:     unfroze,
	})

	return &entities.ContributionResult{
		Allowed:       true,
		Contribution:  contribution,
		NewBalance:    wallet.BalanceCents,
		MonthsCovered: wallet.MonthsCovered(plan.MonthlyPriceCents),
		Unfroze:       unfroze,
	}, nil
}

// ProcessMonthlyPayment applies a due monthly charge. On insufficient
// funds the league is either auto-downgraded to the free plan (when its
// member count still fits the free tier) or frozen. Both are successful
// state transitions that accompany a payment failure: the caller learns
// about them from the result, never from an error.
func (s *walletService) ProcessMonthlyPayment(ctx context.Context, leagueID int64) (*entities.MonthlyChargeResult, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, fmt.Errorf("league %d not found", leagueID)
	}

	plan, err := s.planRepo.GetByID(ctx, league.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %q: %w", league.PlanID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %q not found", league.PlanID)
	}

	if plan.IsFree() {
		return &entities.MonthlyChargeResult{Success: true}, nil
	}

	wallet, err := s.walletRepo.GetByLeagueIDForUpdate(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("league %d has no wallet", leagueID)
	}

	if !wallet.CanCover(plan.MonthlyPriceCents) {
		memberCount, err := s.memberRepo.CountByLeague(ctx, leagueID)
		if err != nil {
			return nil, fmt.Errorf("failed to count members: %w", err)
		}

		freePlan, err := s.planRepo.GetByID(ctx, entities.PlanFree)
		if err != nil {
			return nil, fmt.Errorf("failed to get free plan: %w", err)
		}
		if freePlan == nil {
			return nil, fmt.Errorf("free plan not seeded")
		}

		if memberCount <= freePlan.MaxMembers {
			// Auto-demotion: the league still fits the free tier.
			league.PlanID = freePlan.ID
			if err := s.leagueRepo.Update(ctx, league); err != nil {
				return nil, fmt.Errorf("failed to downgrade league: %w", err)
			}
			wallet.NextPaymentDate = nil
			wallet.IsFrozen = false
			if err := s.walletRepo.Update(ctx, wallet); err != nil {
				return nil, fmt.Errorf("failed to update wallet: %w", err)
			}

			s.publisher.Publish(events.LeagueDowngradedEvent{
				LeagueID:   leagueID,
				FromPlanID: plan.ID,
				ToPlanID:   freePlan.ID,
			})
			log.WithFields(log.Fields{
				"leagueID": leagueID,
				"fromPlan": plan.ID,
			}).Info("League auto-downgraded after failed monthly charge")

			return &entities.MonthlyChargeResult{
				Reason:     entities.ChargeFailureDowngraded,
				NewBalance: wallet.BalanceCents,
			}, nil
		}

		// Too many members for the free tier: freeze until someone pays.
		wallet.IsFrozen = true
		if err := s.walletRepo.Update(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to freeze wallet: %w", err)
		}

		s.publisher.Publish(events.WalletFrozenEvent{
			LeagueID: leagueID,
			Shortage: plan.MonthlyPriceCents - wallet.BalanceCents,
		})
		log.WithFields(log.Fields{
			"leagueID":    leagueID,
			"memberCount": memberCount,
		}).Warn("League wallet frozen after failed monthly charge")

		return &entities.MonthlyChargeResult{
			Reason:     entities.ChargeFailureFrozen,
			NewBalance: wallet.BalanceCents,
		}, nil
	}

	next := utils.NextMonthFirst(s.clock.Now())
	wallet.BalanceCents -= plan.MonthlyPriceCents
	wallet.NextPaymentDate = &next
	if err := s.walletRepo.Update(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}

	s.publisher.Publish(events.WalletChargedEvent{
		LeagueID:        leagueID,
		AmountCents:     plan.MonthlyPriceCents,
		NewBalance:      wallet.BalanceCents,
		NextPaymentDate: next,
	})

	return &entities.MonthlyChargeResult{
		Success:         true,
		AmountCharged:   plan.MonthlyPriceCents,
		NewBalance:      wallet.BalanceCents,
		NextPaymentDate: &next,
	}, nil
}

// Upgrade moves the league to a strictly more expensive plan.
func (s *walletService) Upgrade(ctx context.Context, leagueID int64, newPlanID string) (*entities.PlanChangeResult, error) {
	league, currentPlan, newPlan, result, err := s.resolvePlanChange(ctx, leagueID, newPlanID)
	if err != nil || result != nil {
		return result, err
	}

	if newPlan.MonthlyPriceCents <= currentPlan.MonthlyPriceCents {
		return &entities.PlanChangeResult{Reason: ReasonNotAnUpgrade}, nil
	}

	memberCount, err := s.memberRepo.CountByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if memberCount > newPlan.MaxMembers {
		return &entities.PlanChangeResult{Reason: ReasonMemberCapExceeded}, nil
	}

	if _, err := s.GetOrCreateWallet(ctx, leagueID); err != nil {
		return nil, err
	}
	wallet, err := s.walletRepo.GetByLeagueIDForUpdate(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	if newPlan.IsPaid() && !wallet.CanCover(newPlan.MonthlyPriceCents) {
		return &entities.PlanChangeResult{Reason: ReasonInsufficientBalance}, nil
	}

	league.PlanID = newPlan.ID
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to update league: %w", err)
	}
	if newPlan.IsPaid() {
		next := utils.NextMonthFirst(s.clock.Now())
		wallet.NextPaymentDate = &next
		wallet.IsFrozen = false
		if err := s.walletRepo.Update(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to update wallet: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"leagueID": leagueID,
		"fromPlan": currentPlan.ID,
		"toPlan":   newPlan.ID,
	}).Info("League upgraded")

	return &entities.PlanChangeResult{Allowed: true, League: league, Wallet: wallet}, nil
}

// Downgrade moves the league to a strictly cheaper plan. The membership
// must already fit the target tier; callers shrink membership first.
func (s *walletService) Downgrade(ctx context.Context, leagueID int64, newPlanID string) (*entities.PlanChangeResult, error) {
	league, currentPlan, newPlan, result, err := s.resolvePlanChange(ctx, leagueID, newPlanID)
	if err != nil || result != nil {
		return result, err
	}

	if newPlan.MonthlyPriceCents >= currentPlan.MonthlyPriceCents {
		return &entities.PlanChangeResult{Reason: ReasonNotADowngrade}, nil
	}

	memberCount, err := s.memberRepo.CountByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if memberCount > newPlan.MaxMembers {
		return &entities.PlanChangeResult{Reason: ReasonMemberCapExceeded}, nil
	}

	league.PlanID = newPlan.ID
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to update league: %w", err)
	}

	wallet, err := s.walletRepo.GetByLeagueID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet != nil && newPlan.IsFree() {
		wallet.NextPaymentDate = nil
		if err := s.walletRepo.Update(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to update wallet: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"leagueID": leagueID,
		"fromPlan": currentPlan.ID,
		"toPlan":   newPlan.ID,
	}).Info("League downgraded")

	return &entities.PlanChangeResult{Allowed: true, League: league, Wallet: wallet}, nil
}

// Freeze applies an administrative freeze with no side constraints.
func (s *walletService) Freeze(ctx context.Context, leagueID int64) error {
	return s.setFrozen(ctx, leagueID, true)
}

// Unfreeze lifts an administrative freeze with no side constraints.
func (s *walletService) Unfreeze(ctx context.Context, leagueID int64) error {
	return s.setFrozen(ctx, leagueID, false)
}

func (s *walletService) setFrozen(ctx context.Context, leagueID int64, frozen bool) error {
	wallet, err := s.walletRepo.GetByLeagueIDForUpdate(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("failed to lock wallet: %w", err)
	}
	if wallet == nil {
		return fmt.Errorf("league %d has no wallet", leagueID)
	}
	wallet.IsFrozen = frozen
	if err := s.walletRepo.Update(ctx, wallet); err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

// resolvePlanChange loads the league and both plans, returning a
// rejection result when the target plan does not exist.
func (s *walletService) resolvePlanChange(ctx context.Context, leagueID int64, newPlanID string) (*entities.League, *entities.Plan, *entities.Plan, *entities.PlanChangeResult, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, nil, nil, nil, fmt.Errorf("league %d not found", leagueID)
	}

	currentPlan, err := s.planRepo.GetByID(ctx, league.PlanID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to get plan %q: %w", league.PlanID, err)
	}
	if currentPlan == nil {
		return nil, nil, nil, nil, fmt.Errorf("plan %q not found", league.PlanID)
	}

	newPlan, err := s.planRepo.GetByID(ctx, newPlanID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to get plan %q: %w", newPlanID, err)
	}
	if newPlan == nil {
		return nil, nil, nil, &entities.PlanChangeResult{Reason: ReasonUnknownPlan}, nil
	}

	return league, currentPlan, newPlan, nil, nil
}
