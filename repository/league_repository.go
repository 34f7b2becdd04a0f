package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"

	"github.com/jackc/pgx/v5"
)

// LeagueRepository implements the LeagueRepository interface
type LeagueRepository struct {
	q Queryable
}

// NewLeagueRepository creates a new league repository
func NewLeagueRepository(db *database.DB) *LeagueRepository {
	return &LeagueRepository{q: db.Pool}
}

func newLeagueRepositoryWithTx(tx Queryable) *LeagueRepository {
	return &LeagueRepository{q: tx}
}

const leagueColumns = `id, name, owner_id, plan_id, invite_code, is_private, is_active,
	current_competition_id, competition_changed_at, created_at, updated_at`

func scanLeague(row pgx.Row) (*entities.League, error) {
	var league entities.League
	err := row.Scan(
		&league.ID,
		&league.Name,
		&league.OwnerID,
		&league.PlanID,
		&league.InviteCode,
		&league.IsPrivate,
		&league.IsActive,
		&league.CurrentCompetitionID,
		&league.CompetitionChangedAt,
		&league.CreatedAt,
		&league.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &league, nil
}

// Create creates a new league
func (r *LeagueRepository) Create(ctx context.Context, league *entities.League) error {
	query := `
		INSERT INTO leagues (name, owner_id, plan_id, invite_code, is_private, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		league.Name,
		league.OwnerID,
		league.PlanID,
		league.InviteCode,
		league.IsPrivate,
		league.IsActive,
	).Scan(&league.ID, &league.CreatedAt, &league.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create league: %w", err)
	}

	return nil
}

// GetByID retrieves a league by ID
func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (*entities.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`

	league, err := scanLeague(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league by ID %d: %w", id, err)
	}

	return league, nil
}

// GetByInviteCode retrieves an active league by its invite code
func (r *LeagueRepository) GetByInviteCode(ctx context.Context, code string) (*entities.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE invite_code = $1 AND is_active = true`

	league, err := scanLeague(r.q.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league by invite code: %w", err)
	}

	return league, nil
}

// Update persists mutable league fields
func (r *LeagueRepository) Update(ctx context.Context, league *entities.League) error {
	query := `
		UPDATE leagues
		SET name = $2, plan_id = $3, invite_code = $4, is_private = $5, is_active = $6,
		    owner_id = $7, current_competition_id = $8, competition_changed_at = $9,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		league.ID,
		league.Name,
		league.PlanID,
		league.InviteCode,
		league.IsPrivate,
		league.IsActive,
		league.OwnerID,
		league.CurrentCompetitionID,
		league.CompetitionChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update league %d: %w", league.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("league %d not found", league.ID)
	}

	return nil
}

// Count returns total and active league counts
func (r *LeagueRepository) Count(ctx context.Context) (int, int, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM leagues`

	var total, active int
	if err := r.q.QueryRow(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("failed to count leagues: %w", err)
	}
	return total, active, nil
}
