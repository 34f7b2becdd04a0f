package repository

import (
	"context"
	"fmt"
	"time"

	"matchday/database"
	"matchday/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BetRepository implements the BetRepository interface
type BetRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

func newBetRepositoryWithTx(tx Queryable) *BetRepository {
	return &BetRepository{q: tx}
}

const betColumns = `id, user_id, league_id, match_id, challenge_id, prediction_type,
	prediction_value, amount, status, potential_win, actual_win, created_at, settled_at`

func scanBet(row pgx.Row) (*entities.Bet, error) {
	var bet entities.Bet
	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.LeagueID,
		&bet.MatchID,
		&bet.ChallengeID,
		&bet.PredictionType,
		&bet.PredictionValue,
		&bet.Amount,
		&bet.Status,
		&bet.PotentialWin,
		&bet.ActualWin,
		&bet.CreatedAt,
		&bet.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func (r *BetRepository) queryBets(ctx context.Context, query string, args ...any) ([]*entities.Bet, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bets []*entities.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

// Create creates a new bet record
func (r *BetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	query := `
		INSERT INTO bets (user_id, league_id, match_id, challenge_id, prediction_type,
		                  prediction_value, amount, status, potential_win)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.LeagueID,
		bet.MatchID,
		bet.ChallengeID,
		bet.PredictionType,
		bet.PredictionValue,
		bet.Amount,
		bet.Status,
		bet.PotentialWin,
	).Scan(&bet.ID, &bet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

// GetByID retrieves a bet by ID
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet, err := scanBet(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet by ID %d: %w", id, err)
	}

	return bet, nil
}

// CountByUserInRange counts a user's bets in a league created inside [from, to]
func (r *BetRepository) CountByUserInRange(ctx context.Context, userID, leagueID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bets
		WHERE user_id = $1 AND league_id = $2 AND created_at >= $3 AND created_at <= $4
	`

	var count int
	err := r.q.QueryRow(ctx, query, userID, leagueID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bets in range: %w", err)
	}
	return count, nil
}

// GetByUserAndLeague returns a user's bets in a league, newest first.
// A limit of zero returns the full history.
func (r *BetRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID int64, limit int) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE user_id = $1 AND league_id = $2
		ORDER BY created_at DESC, id DESC
	`
	args := []any{userID, leagueID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	bets, err := r.queryBets(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for user %d in league %d: %w", userID, leagueID, err)
	}
	return bets, nil
}

// GetPendingByMatch returns all pending bets on a match
func (r *BetRepository) GetPendingByMatch(ctx context.Context, matchID int64) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE match_id = $1 AND status = 'pending'
		ORDER BY created_at ASC
	`

	bets, err := r.queryBets(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending bets for match %d: %w", matchID, err)
	}
	return bets, nil
}

// GetByChallengeAndUser retrieves a user's bet on a challenge
func (r *BetRepository) GetByChallengeAndUser(ctx context.Context, challengeID, userID int64) (*entities.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE challenge_id = $1 AND user_id = $2`

	bet, err := scanBet(r.q.QueryRow(ctx, query, challengeID, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet for challenge %d and user %d: %w", challengeID, userID, err)
	}

	return bet, nil
}

// GetByChallenge returns all bets on a challenge
func (r *BetRepository) GetByChallenge(ctx context.Context, challengeID int64) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE challenge_id = $1
		ORDER BY created_at ASC
	`

	bets, err := r.queryBets(ctx, query, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for challenge %d: %w", challengeID, err)
	}
	return bets, nil
}

// Settle stamps a pending bet with its terminal status, actual win and
// settlement time. Settled bets are never updated again.
func (r *BetRepository) Settle(ctx context.Context, betID int64, status entities.BetStatus, actualWin int64, settledAt time.Time) error {
	query := `
		UPDATE bets
		SET status = $2, actual_win = $3, settled_at = $4
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.q.Exec(ctx, query, betID, status, actualWin, settledAt)
	if err != nil {
		return fmt.Errorf("failed to settle bet %d: %w", betID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bet %d is not pending", betID)
	}

	return nil
}

// Count returns total and pending bet counts
func (r *BetRepository) Count(ctx context.Context) (int, int, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'pending') FROM bets`

	var total, pending int
	if err := r.q.QueryRow(ctx, query).Scan(&total, &pending); err != nil {
		return 0, 0, fmt.Errorf("failed to count bets: %w", err)
	}
	return total, pending, nil
}
