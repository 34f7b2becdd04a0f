package repository

import (
	"context"
	"fmt"
	"time"

	"matchday/database"
	"matchday/domain/entities"

	"github.com/jackc/pgx/v5"
)

// WalletRepository implements the WalletRepository interface
type WalletRepository struct {
	q Queryable
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.DB) *WalletRepository {
	return &WalletRepository{q: db.Pool}
}

func newWalletRepositoryWithTx(tx Queryable) *WalletRepository {
	return &WalletRepository{q: tx}
}

const walletColumns = `id, league_id, balance_cents, next_payment_date, is_frozen, created_at, updated_at`

func scanWallet(row pgx.Row) (*entities.LeagueWallet, error) {
	var wallet entities.LeagueWallet
	err := row.Scan(
		&wallet.ID,
		&wallet.LeagueID,
		&wallet.BalanceCents,
		&wallet.NextPaymentDate,
		&wallet.IsFrozen,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetByLeagueID retrieves a league's wallet
func (r *WalletRepository) GetByLeagueID(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM league_wallets WHERE league_id = $1`

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, leagueID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for league %d: %w", leagueID, err)
	}

	return wallet, nil
}

// GetByLeagueIDForUpdate retrieves a league's wallet with a row lock,
// serializing concurrent balance mutations within a transaction
func (r *WalletRepository) GetByLeagueIDForUpdate(ctx context.Context, leagueID int64) (*entities.LeagueWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM league_wallets WHERE league_id = $1 FOR UPDATE`

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, leagueID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet for league %d: %w", leagueID, err)
	}

	return wallet, nil
}

// Create creates a wallet for a league
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.LeagueWallet) error {
	query := `
		INSERT INTO league_wallets (league_id, balance_cents, next_payment_date, is_frozen)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		wallet.LeagueID,
		wallet.BalanceCents,
		wallet.NextPaymentDate,
		wallet.IsFrozen,
	).Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet for league %d: %w", wallet.LeagueID, err)
	}

	return nil
}

// Update persists wallet balance and state changes
func (r *WalletRepository) Update(ctx context.Context, wallet *entities.LeagueWallet) error {
	query := `
		UPDATE league_wallets
		SET balance_cents = $2, next_payment_date = $3, is_frozen = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		wallet.ID,
		wallet.BalanceCents,
		wallet.NextPaymentDate,
		wallet.IsFrozen,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet %d: %w", wallet.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet %d not found", wallet.ID)
	}

	return nil
}

// GetDueLeagueIDs returns leagues whose wallets have a payment due and
// are not frozen
func (r *WalletRepository) GetDueLeagueIDs(ctx context.Context, now time.Time) ([]int64, error) {
	query := `
		SELECT league_id
		FROM league_wallets
		WHERE next_payment_date IS NOT NULL AND next_payment_date <= $1 AND is_frozen = false
		ORDER BY next_payment_date ASC
	`

	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get due wallets: %w", err)
	}
	defer rows.Close()

	var leagueIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan due league ID: %w", err)
		}
		leagueIDs = append(leagueIDs, id)
	}

	return leagueIDs, rows.Err()
}

// CountFrozen returns the number of frozen wallets
func (r *WalletRepository) CountFrozen(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM league_wallets WHERE is_frozen`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count frozen wallets: %w", err)
	}
	return count, nil
}
