package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"

	"github.com/jackc/pgx/v5"
)

// LeagueMemberRepository implements the LeagueMemberRepository interface
type LeagueMemberRepository struct {
	q Queryable
}

// NewLeagueMemberRepository creates a new league member repository
func NewLeagueMemberRepository(db *database.DB) *LeagueMemberRepository {
	return &LeagueMemberRepository{q: db.Pool}
}

func newLeagueMemberRepositoryWithTx(tx Queryable) *LeagueMemberRepository {
	return &LeagueMemberRepository{q: tx}
}

// Create adds a member to a league
func (r *LeagueMemberRepository) Create(ctx context.Context, member *entities.LeagueMember) error {
	query := `
		INSERT INTO league_members (league_id, user_id, role, points)
		VALUES ($1, $2, $3, $4)
		RETURNING id, joined_at
	`

	err := r.q.QueryRow(ctx, query,
		member.LeagueID,
		member.UserID,
		member.Role,
		member.Points,
	).Scan(&member.ID, &member.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to create league member: %w", err)
	}

	return nil
}

// Get retrieves a membership by league and user
func (r *LeagueMemberRepository) Get(ctx context.Context, leagueID, userID int64) (*entities.LeagueMember, error) {
	query := `
		SELECT id, league_id, user_id, role, points, joined_at
		FROM league_members
		WHERE league_id = $1 AND user_id = $2
	`

	var member entities.LeagueMember
	err := r.q.QueryRow(ctx, query, leagueID, userID).Scan(
		&member.ID,
		&member.LeagueID,
		&member.UserID,
		&member.Role,
		&member.Points,
		&member.JoinedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member %d of league %d: %w", userID, leagueID, err)
	}

	return &member, nil
}

// GetByLeague returns all members of a league ordered by points descending
func (r *LeagueMemberRepository) GetByLeague(ctx context.Context, leagueID int64) ([]*entities.LeagueMember, error) {
	query := `
		SELECT id, league_id, user_id, role, points, joined_at
		FROM league_members
		WHERE league_id = $1
		ORDER BY points DESC, joined_at ASC
	`

	rows, err := r.q.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members of league %d: %w", leagueID, err)
	}
	defer rows.Close()

	var members []*entities.LeagueMember
	for rows.Next() {
		var member entities.LeagueMember
		err := rows.Scan(
			&member.ID,
			&member.LeagueID,
			&member.UserID,
			&member.Role,
			&member.Points,
			&member.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league member: %w", err)
		}
		members = append(members, &member)
	}

	return members, rows.Err()
}

// CountByLeague returns the number of members in a league
func (r *LeagueMemberRepository) CountByLeague(ctx context.Context, leagueID int64) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM league_members WHERE league_id = $1`, leagueID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members of league %d: %w", leagueID, err)
	}
	return count, nil
}

// AddPoints atomically adjusts a member's points by delta
func (r *LeagueMemberRepository) AddPoints(ctx context.Context, leagueID, userID int64, delta int64) error {
	query := `
		UPDATE league_members
		SET points = points + $3
		WHERE league_id = $1 AND user_id = $2
	`

	tag, err := r.q.Exec(ctx, query, leagueID, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust points for member %d of league %d: %w", userID, leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %d of league %d not found", userID, leagueID)
	}

	return nil
}

// UpdateRole changes a member's role
func (r *LeagueMemberRepository) UpdateRole(ctx context.Context, leagueID, userID int64, role entities.MemberRole) error {
	query := `
		UPDATE league_members
		SET role = $3
		WHERE league_id = $1 AND user_id = $2
	`

	tag, err := r.q.Exec(ctx, query, leagueID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to update role for member %d of league %d: %w", userID, leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %d of league %d not found", userID, leagueID)
	}

	return nil
}

// Delete removes a membership
func (r *LeagueMemberRepository) Delete(ctx context.Context, leagueID, userID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM league_members WHERE league_id = $1 AND user_id = $2`, leagueID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete member %d of league %d: %w", userID, leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %d of league %d not found", userID, leagueID)
	}

	return nil
}
