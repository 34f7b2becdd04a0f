package entities

import (
	"time"
)

// MemberRole represents a member's role within a league
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// StartingPoints is the default score every member begins a league with,
// applied when no configured grant is supplied.
const StartingPoints int64 = 1000

// League represents a private group of users sharing a wallet, a point
// standings table and one active competition at a time.
type League struct {
	ID                   int64      `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	OwnerID              int64      `db:"owner_id" json:"owner_id"`
	PlanID               string     `db:"plan_id" json:"plan_id"`
	InviteCode           string     `db:"invite_code" json:"invite_code"`
	IsPrivate            bool       `db:"is_private" json:"is_private"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	CurrentCompetitionID *int64     `db:"current_competition_id" json:"current_competition_id"`
	CompetitionChangedAt *time.Time `db:"competition_changed_at" json:"competition_changed_at"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// HasEverChangedCompetition reports whether the league has ever switched
// its tracked competition. A league that never changed is always allowed
// to change.
func (l *League) HasEverChangedCompetition() bool {
	return l.CompetitionChangedAt != nil
}

// LeagueMember represents a user's membership in a league.
// Only Points and Role change after creation.
type LeagueMember struct {
	ID       int64      `db:"id" json:"id"`
	LeagueID int64      `db:"league_id" json:"league_id"`
	UserID   int64      `db:"user_id" json:"user_id"`
	Role     MemberRole `db:"role" json:"role"`
	Points   int64      `db:"points" json:"points"`
	JoinedAt time.Time  `db:"joined_at" json:"joined_at"`
}

// CanAfford checks whether the member has enough points to wager an amount.
func (m *LeagueMember) CanAfford(amount int64) bool {
	return m.Points >= amount
}

// CanManageLeague reports whether the member may perform administrative
// league operations such as changing the tracked competition.
func (m *LeagueMember) CanManageLeague() bool {
	return m.Role == MemberRoleOwner || m.Role == MemberRoleAdmin
}

// JoinResult represents the outcome of an invite-code redemption.
type JoinResult struct {
	Allowed bool          `json:"allowed"`
	Reason  string        `json:"reason,omitempty"`
	Member  *LeagueMember `json:"member,omitempty"`
	League  *League       `json:"league,omitempty"`
}
