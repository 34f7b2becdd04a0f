package entities

import (
	"time"
)

// ContributionStatus represents the state of a wallet contribution
type ContributionStatus string

const (
	ContributionStatusPending   ContributionStatus = "pending"
	ContributionStatusCompleted ContributionStatus = "completed"
	ContributionStatusFailed    ContributionStatus = "failed"
)

// UnlimitedMonthsCovered is returned for free plans, where months covered
// is not a real division.
const UnlimitedMonthsCovered int64 = -1

// LeagueWallet represents a league's virtual balance, funded by member
// contributions and drained by monthly plan charges. One wallet per
// league, created lazily on first access. The balance never goes negative;
// the ledger logic enforces that, not the storage layer.
type LeagueWallet struct {
	ID              int64      `db:"id" json:"id"`
	LeagueID        int64      `db:"league_id" json:"league_id"`
	BalanceCents    int64      `db:"balance_cents" json:"balance_cents"`
	NextPaymentDate *time.Time `db:"next_payment_date" json:"next_payment_date"`
	IsFrozen        bool       `db:"is_frozen" json:"is_frozen"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// CanCover reports whether the balance covers an amount.
func (w *LeagueWallet) CanCover(amountCents int64) bool {
	return w.BalanceCents >= amountCents
}

// MonthsCovered returns how many monthly charges the current balance
// covers, or UnlimitedMonthsCovered when the plan is free.
func (w *LeagueWallet) MonthsCovered(monthlyPriceCents int64) int64 {
	if monthlyPriceCents == 0 {
		return UnlimitedMonthsCovered
	}
	return w.BalanceCents / monthlyPriceCents
}

// Contribution represents an append-only wallet ledger entry. Immutable
// once created; the mock payment rail always creates completed entries.
type Contribution struct {
	ID            int64              `db:"id" json:"id"`
	WalletID      int64              `db:"wallet_id" json:"wallet_id"`
	UserID        int64              `db:"user_id" json:"user_id"`
	AmountCents   int64              `db:"amount_cents" json:"amount_cents"`
	PaymentMethod string             `db:"payment_method" json:"payment_method"`
	PaymentRef    string             `db:"payment_ref" json:"payment_ref"`
	Status        ContributionStatus `db:"status" json:"status"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

// ContributionResult represents the outcome of a wallet contribution.
type ContributionResult struct {
	Allowed       bool          `json:"allowed"`
	Reason        string        `json:"reason,omitempty"`
	Contribution  *Contribution `json:"contribution,omitempty"`
	NewBalance    int64         `json:"new_balance"`
	MonthsCovered int64         `json:"months_covered"`
	Unfroze       bool          `json:"unfroze"`
}

// ChargeFailureReason explains a failed monthly charge
type ChargeFailureReason string

const (
	ChargeFailureDowngraded ChargeFailureReason = "downgraded"
	ChargeFailureFrozen     ChargeFailureReason = "frozen"
)

// MonthlyChargeResult represents the outcome of a scheduled monthly
// charge. A downgrade or freeze is a successful state transition that
// accompanies a payment failure, not an error: callers must inspect the
// result to learn it happened.
type MonthlyChargeResult struct {
	Success         bool                `json:"success"`
	Reason          ChargeFailureReason `json:"reason,omitempty"`
	AmountCharged   int64               `json:"amount_charged"`
	NewBalance      int64               `json:"new_balance"`
	NextPaymentDate *time.Time          `json:"next_payment_date,omitempty"`
}

// PlanChangeResult represents the outcome of an upgrade or downgrade.
type PlanChangeResult struct {
	Allowed bool          `json:"allowed"`
	Reason  string        `json:"reason,omitempty"`
	League  *League       `json:"league,omitempty"`
	Wallet  *LeagueWallet `json:"wallet,omitempty"`
}

// CompetitionChangeCheck represents the competition-change gate's verdict.
type CompetitionChangeCheck struct {
	Allowed       bool   `json:"allowed"`
	Reason        string `json:"reason,omitempty"`
	DaysRemaining int    `json:"days_remaining,omitempty"`
}
