package entities

import (
	"time"
)

// Well-known plan identifiers seeded at deployment time.
const (
	PlanFree     = "free"
	PlanChampion = "champion"
	PlanMVP      = "mvp"
)

// UnlimitedSentinel is the raw value plans use for "no limit" quotas.
// It is stored and exposed as-is; callers decode it via PlanLimit.
const UnlimitedSentinel = -1

// Feature flags seeded into plan records.
const (
	FeatureLeaderboard = "leaderboard"
	FeatureChallenges  = "challenges"
)

// Plan represents a subscription tier bounding a league's member count,
// weekly bet allowance, competition-change frequency and monthly price.
// Plans are seeded by migration and read-only at runtime.
type Plan struct {
	ID                string          `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	MaxMembers        int             `db:"max_members" json:"max_members"`
	MaxCompetitions   int             `db:"max_competitions" json:"max_competitions"`
	MaxChangesWeek    int             `db:"max_changes_week" json:"max_changes_week"`
	MonthlyPriceCents int64           `db:"monthly_price_cents" json:"monthly_price_cents"`
	Features          map[string]bool `db:"features" json:"features"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// IsFree reports whether the plan has no monthly charge.
func (p *Plan) IsFree() bool {
	return p.MonthlyPriceCents == 0
}

// IsPaid reports whether the plan carries a monthly charge.
func (p *Plan) IsPaid() bool {
	return p.MonthlyPriceCents > 0
}

// WeeklyBetLimit decodes the plan's weekly bet allowance.
func (p *Plan) WeeklyBetLimit() PlanLimit {
	return NewPlanLimit(p.MaxChangesWeek)
}

// CompetitionChangeLimit decodes the plan's competition-change allowance.
// Unlimited plans may switch their tracked competition at any time; limited
// plans are throttled by the rolling cooldown in the competition gate.
func (p *Plan) CompetitionChangeLimit() PlanLimit {
	return NewPlanLimit(p.MaxChangesWeek)
}

// HasFeature reports whether a named feature flag is enabled for the plan.
func (p *Plan) HasFeature(name string) bool {
	return p.Features[name]
}

// PlanLimit is a plan quota decoded from its raw sentinel form, so the
// -1 special case is handled once at the plan boundary instead of at
// every call site.
type PlanLimit struct {
	value     int
	unlimited bool
}

// NewPlanLimit decodes a raw quota value, treating UnlimitedSentinel as
// an unlimited quota.
func NewPlanLimit(raw int) PlanLimit {
	if raw == UnlimitedSentinel {
		return PlanLimit{unlimited: true}
	}
	return PlanLimit{value: raw}
}

// IsUnlimited reports whether the quota has no numeric bound.
func (l PlanLimit) IsUnlimited() bool {
	return l.unlimited
}

// Value returns the numeric bound. Only meaningful when not unlimited.
func (l PlanLimit) Value() int {
	return l.value
}

// Raw returns the quota in its stored form, with UnlimitedSentinel for
// unlimited quotas. Used for API transparency.
func (l PlanLimit) Raw() int {
	if l.unlimited {
		return UnlimitedSentinel
	}
	return l.value
}

// Allows reports whether one more use fits under the quota given the
// current usage count.
func (l PlanLimit) Allows(used int) bool {
	return l.unlimited || used < l.value
}
