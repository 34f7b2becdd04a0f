package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// League join rejection reasons.
const (
	ReasonUnknownInviteCode = "unknown_invite_code"
	ReasonAlreadyMember     = "already_member"
	ReasonLeagueFull        = "league_full"
)

type leagueService struct {
	userRepo       interfaces.UserRepository
	planRepo       interfaces.PlanRepository
	leagueRepo     interfaces.LeagueRepository
	memberRepo     interfaces.LeagueMemberRepository
	walletRepo     interfaces.WalletRepository
	publisher      interfaces.EventPublisher
	startingPoints int64
}

// NewLeagueService creates a new league lifecycle service. startingPoints
// is the score granted to every new membership; non-positive values fall
// back to the default grant.
func NewLeagueService(
	userRepo interfaces.UserRepository,
	planRepo interfaces.PlanRepository,
	leagueRepo interfaces.LeagueRepository,
	memberRepo interfaces.LeagueMemberRepository,
	walletRepo interfaces.WalletRepository,
	publisher interfaces.EventPublisher,
	startingPoints int64,
) interfaces.LeagueService {
	if startingPoints <= 0 {
		startingPoints = entities.StartingPoints
	}
	return &leagueService{
		userRepo:       userRepo,
		planRepo:       planRepo,
		leagueRepo:     leagueRepo,
		memberRepo:     memberRepo,
		walletRepo:     walletRepo,
		publisher:      publisher,
		startingPoints: startingPoints,
	}
}

// CreateLeague creates a league on the free plan with its owner
// membership and wallet in one transaction.
func (s *leagueService) CreateLeague(ctx context.Context, ownerID int64, name string, isPrivate bool) (*entities.League, error) {
	if name == "" {
		return nil, fmt.Errorf("league name must not be empty")
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", ownerID, err)
	}
	if owner == nil {
		return nil, fmt.Errorf("user %d not found", ownerID)
	}

	league := &entities.League{
		Name:       name,
		OwnerID:    ownerID,
		PlanID:     entities.PlanFree,
		InviteCode: newInviteCode(),
		IsPrivate:  isPrivate,
		IsActive:   true,
	}
	if err := s.leagueRepo.Create(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}

	member := &entities.LeagueMember{
		LeagueID: league.ID,
		UserID:   ownerID,
		Role:     entities.MemberRoleOwner,
		Points:   s.startingPoints,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	wallet := &entities.LeagueWallet{LeagueID: league.ID}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	log.WithFields(log.Fields{
		"leagueID": league.ID,
		"ownerID":  ownerID,
	}).Info("League created")

	return league, nil
}

// JoinLeague redeems an invite code for a membership with the plan's
// starting points. The member cap check is count-then-insert; the
// unique (league_id, user_id) constraint catches duplicate joins.
func (s *leagueService) JoinLeague(ctx context.Context, userID int64, inviteCode string) (*entities.JoinResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	league, err := s.leagueRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if league == nil || !league.IsActive {
		return &entities.JoinResult{Reason: ReasonUnknownInviteCode}, nil
	}

	existing, err := s.memberRepo.Get(ctx, league.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if existing != nil {
		return &entities.JoinResult{Reason: ReasonAlreadyMember, League: league}, nil
	}

	plan, err := s.planRepo.GetByID(ctx, league.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %q: %w", league.PlanID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %q not found", league.PlanID)
	}

	memberCount, err := s.memberRepo.CountByLeague(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if memberCount >= plan.MaxMembers {
		return &entities.JoinResult{Reason: ReasonLeagueFull, League: league}, nil
	}

	member := &entities.LeagueMember{
		LeagueID: league.ID,
		UserID:   userID,
		Role:     entities.MemberRoleMember,
		Points:   s.startingPoints,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	s.publisher.Publish(events.MemberJoinedEvent{
		LeagueID: league.ID,
		UserID:   userID,
	})

	return &entities.JoinResult{Allowed: true, Member: member, League: league}, nil
}

// LeaveLeague removes a member. Owners must transfer ownership first.
func (s *leagueService) LeaveLeague(ctx context.Context, userID, leagueID int64) error {
	member, err := s.memberRepo.Get(ctx, leagueID, userID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if member == nil {
		return fmt.Errorf("user %d is not a member of league %d", userID, leagueID)
	}
	if member.Role == entities.MemberRoleOwner {
		return fmt.Errorf("owner must transfer ownership before leaving")
	}

	if err := s.memberRepo.Delete(ctx, leagueID, userID); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return nil
}

// RegenerateInviteCode invalidates the current code and issues a new one.
func (s *leagueService) RegenerateInviteCode(ctx context.Context, actorID, leagueID int64) (string, error) {
	league, _, err := s.requireManager(ctx, actorID, leagueID)
	if err != nil {
		return "", err
	}

	league.InviteCode = newInviteCode()
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return "", fmt.Errorf("failed to update league: %w", err)
	}
	return league.InviteCode, nil
}

// TransferOwnership swaps the owner role between the current owner and
// another existing member.
func (s *leagueService) TransferOwnership(ctx context.Context, ownerID, leagueID, newOwnerID int64) error {
	if ownerID == newOwnerID {
		return fmt.Errorf("cannot transfer ownership to self")
	}

	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return fmt.Errorf("league %d not found", leagueID)
	}
	if league.OwnerID != ownerID {
		return fmt.Errorf("user %d is not the owner of league %d", ownerID, leagueID)
	}

	newOwner, err := s.memberRepo.Get(ctx, leagueID, newOwnerID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if newOwner == nil {
		return fmt.Errorf("user %d is not a member of league %d", newOwnerID, leagueID)
	}

	if err := s.memberRepo.UpdateRole(ctx, leagueID, newOwnerID, entities.MemberRoleOwner); err != nil {
		return fmt.Errorf("failed to promote new owner: %w", err)
	}
	if err := s.memberRepo.UpdateRole(ctx, leagueID, ownerID, entities.MemberRoleAdmin); err != nil {
		return fmt.Errorf("failed to demote previous owner: %w", err)
	}

	league.OwnerID = newOwnerID
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return fmt.Errorf("failed to update league: %w", err)
	}

	log.WithFields(log.Fields{
		"leagueID":   leagueID,
		"newOwnerID": newOwnerID,
	}).Info("League ownership transferred")

	return nil
}

// DeactivateLeague soft-deletes a league. Deactivated leagues reject
// bets and invite-code joins but keep their history readable.
func (s *leagueService) DeactivateLeague(ctx context.Context, ownerID, leagueID int64) error {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return fmt.Errorf("league %d not found", leagueID)
	}
	if league.OwnerID != ownerID {
		return fmt.Errorf("user %d is not the owner of league %d", ownerID, leagueID)
	}

	league.IsActive = false
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return fmt.Errorf("failed to update league: %w", err)
	}
	return nil
}

func (s *leagueService) requireManager(ctx context.Context, actorID, leagueID int64) (*entities.League, *entities.LeagueMember, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get league %d: %w", leagueID, err)
	}
	if league == nil {
		return nil, nil, fmt.Errorf("league %d not found", leagueID)
	}

	actor, err := s.memberRepo.Get(ctx, leagueID, actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if actor == nil || !actor.CanManageLeague() {
		return nil, nil, fmt.Errorf("user %d may not manage league %d", actorID, leagueID)
	}
	return league, actor, nil
}

func newInviteCode() string {
	return uuid.NewString()[:8]
}
