package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
)

// ContributionRepository implements the append-only contribution ledger
type ContributionRepository struct {
	q Queryable
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *database.DB) *ContributionRepository {
	return &ContributionRepository{q: db.Pool}
}

func newContributionRepositoryWithTx(tx Queryable) *ContributionRepository {
	return &ContributionRepository{q: tx}
}

// Create appends a contribution entry
func (r *ContributionRepository) Create(ctx context.Context, contribution *entities.Contribution) error {
	query := `
		INSERT INTO contributions (wallet_id, user_id, amount_cents, payment_method, payment_ref, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		contribution.WalletID,
		contribution.UserID,
		contribution.AmountCents,
		contribution.PaymentMethod,
		contribution.PaymentRef,
		contribution.Status,
	).Scan(&contribution.ID, &contribution.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contribution: %w", err)
	}

	return nil
}

// GetByWallet returns a wallet's contributions, newest first.
// A limit of zero returns the full ledger.
func (r *ContributionRepository) GetByWallet(ctx context.Context, walletID int64, limit int) ([]*entities.Contribution, error) {
	query := `
		SELECT id, wallet_id, user_id, amount_cents, payment_method, payment_ref, status, created_at
		FROM contributions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
	`
	args := []any{walletID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get contributions for wallet %d: %w", walletID, err)
	}
	defer rows.Close()

	var contributions []*entities.Contribution
	for rows.Next() {
		var c entities.Contribution
		err := rows.Scan(
			&c.ID,
			&c.WalletID,
			&c.UserID,
			&c.AmountCents,
			&c.PaymentMethod,
			&c.PaymentRef,
			&c.Status,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, &c)
	}

	return contributions, rows.Err()
}

// TotalCompleted returns the sum of all completed contributions
func (r *ContributionRepository) TotalCompleted(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM contributions WHERE status = 'completed'`

	var total int64
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum completed contributions: %w", err)
	}
	return total, nil
}
