package repository

import (
	"context"
	"fmt"
	"time"

	"matchday/database"
	"matchday/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ChallengeRepository implements the ChallengeRepository interface
type ChallengeRepository struct {
	q Queryable
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *database.DB) *ChallengeRepository {
	return &ChallengeRepository{q: db.Pool}
}

func newChallengeRepositoryWithTx(tx Queryable) *ChallengeRepository {
	return &ChallengeRepository{q: tx}
}

const challengeColumns = `id, league_id, match_id, created_by_id, status, closes_at, created_at, settled_at`

func scanChallenge(row pgx.Row) (*entities.Challenge, error) {
	var challenge entities.Challenge
	err := row.Scan(
		&challenge.ID,
		&challenge.LeagueID,
		&challenge.MatchID,
		&challenge.CreatedByID,
		&challenge.Status,
		&challenge.ClosesAt,
		&challenge.CreatedAt,
		&challenge.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Create creates a new challenge
func (r *ChallengeRepository) Create(ctx context.Context, challenge *entities.Challenge) error {
	query := `
		INSERT INTO challenges (league_id, match_id, created_by_id, status, closes_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		challenge.LeagueID,
		challenge.MatchID,
		challenge.CreatedByID,
		challenge.Status,
		challenge.ClosesAt,
	).Scan(&challenge.ID, &challenge.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}

	return nil
}

// GetByID retrieves a challenge by ID
func (r *ChallengeRepository) GetByID(ctx context.Context, id int64) (*entities.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1`

	challenge, err := scanChallenge(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge by ID %d: %w", id, err)
	}

	return challenge, nil
}

// GetByLeagueAndMatch retrieves the challenge for a (league, match) pair
func (r *ChallengeRepository) GetByLeagueAndMatch(ctx context.Context, leagueID, matchID int64) (*entities.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE league_id = $1 AND match_id = $2`

	challenge, err := scanChallenge(r.q.QueryRow(ctx, query, leagueID, matchID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge for league %d and match %d: %w", leagueID, matchID, err)
	}

	return challenge, nil
}

// GetByMatch returns all challenges on a match
func (r *ChallengeRepository) GetByMatch(ctx context.Context, matchID int64) ([]*entities.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE match_id = $1 ORDER BY created_at ASC`

	return r.queryChallenges(ctx, query, matchID)
}

// GetOpenExpired returns open challenges whose closing time has passed
func (r *ChallengeRepository) GetOpenExpired(ctx context.Context, now time.Time) ([]*entities.Challenge, error) {
	query := `
		SELECT ` + challengeColumns + `
		FROM challenges
		WHERE status = 'open' AND closes_at <= $1
		ORDER BY closes_at ASC
	`

	return r.queryChallenges(ctx, query, now)
}

func (r *ChallengeRepository) queryChallenges(ctx context.Context, query string, args ...any) ([]*entities.Challenge, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query challenges: %w", err)
	}
	defer rows.Close()

	var challenges []*entities.Challenge
	for rows.Next() {
		challenge, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, challenge)
	}

	return challenges, rows.Err()
}

// Update persists challenge state transitions
func (r *ChallengeRepository) Update(ctx context.Context, challenge *entities.Challenge) error {
	query := `
		UPDATE challenges
		SET status = $2, settled_at = $3
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, challenge.ID, challenge.Status, challenge.SettledAt)
	if err != nil {
		return fmt.Errorf("failed to update challenge %d: %w", challenge.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("challenge %d not found", challenge.ID)
	}

	return nil
}

// Count returns the total number of challenges
func (r *ChallengeRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM challenges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count challenges: %w", err)
	}
	return count, nil
}
