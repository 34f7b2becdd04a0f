package repository

import (
	"context"
	"fmt"
	"time"

	"matchday/database"
	"matchday/domain/entities"

	"github.com/jackc/pgx/v5"
)

// MatchRepository implements the MatchRepository interface. Matches and
// competitions are written by the fixture ingest and read everywhere else.
type MatchRepository struct {
	q Queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{q: db.Pool}
}

func newMatchRepositoryWithTx(tx Queryable) *MatchRepository {
	return &MatchRepository{q: tx}
}

const matchColumns = `id, competition_id, home_team, away_team, kickoff_at, status,
	home_score, away_score, home_odds, draw_odds, away_odds, updated_at`

func scanMatch(row pgx.Row) (*entities.Match, error) {
	var match entities.Match
	err := row.Scan(
		&match.ID,
		&match.CompetitionID,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.KickoffAt,
		&match.Status,
		&match.HomeScore,
		&match.AwayScore,
		&match.HomeOdds,
		&match.DrawOdds,
		&match.AwayOdds,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match by ID %d: %w", id, err)
	}

	return match, nil
}

// GetUpcomingByCompetition returns scheduled matches for a competition
// kicking off after now, soonest first
func (r *MatchRepository) GetUpcomingByCompetition(ctx context.Context, competitionID int64, now time.Time, limit int) ([]*entities.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE competition_id = $1 AND status = 'scheduled' AND kickoff_at > $2
		ORDER BY kickoff_at ASC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, competitionID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming matches for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	var matches []*entities.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

// GetCompetition retrieves a competition by ID
func (r *MatchRepository) GetCompetition(ctx context.Context, id int64) (*entities.Competition, error) {
	query := `SELECT id, name, sport, season, is_active, created_at FROM competitions WHERE id = $1`

	var competition entities.Competition
	err := r.q.QueryRow(ctx, query, id).Scan(
		&competition.ID,
		&competition.Name,
		&competition.Sport,
		&competition.Season,
		&competition.IsActive,
		&competition.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get competition by ID %d: %w", id, err)
	}

	return &competition, nil
}

// CreateCompetition persists a new competition
func (r *MatchRepository) CreateCompetition(ctx context.Context, competition *entities.Competition) error {
	query := `
		INSERT INTO competitions (name, sport, season, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		competition.Name,
		competition.Sport,
		competition.Season,
		competition.IsActive,
	).Scan(&competition.ID, &competition.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}

	return nil
}

// CreateMatch persists a new match
func (r *MatchRepository) CreateMatch(ctx context.Context, match *entities.Match) error {
	query := `
		INSERT INTO matches (competition_id, home_team, away_team, kickoff_at, status,
			home_odds, draw_odds, away_odds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		match.CompetitionID,
		match.HomeTeam,
		match.AwayTeam,
		match.KickoffAt,
		match.Status,
		match.HomeOdds,
		match.DrawOdds,
		match.AwayOdds,
	).Scan(&match.ID, &match.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// RecordResult stores the final score and status for a match
func (r *MatchRepository) RecordResult(ctx context.Context, matchID int64, homeScore, awayScore int, status entities.MatchStatus) error {
	query := `
		UPDATE matches
		SET home_score = $2, away_score = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, matchID, homeScore, awayScore, status)
	if err != nil {
		return fmt.Errorf("failed to record result for match %d: %w", matchID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %d not found", matchID)
	}

	return nil
}

// ListCompetitions returns all active competitions
func (r *MatchRepository) ListCompetitions(ctx context.Context) ([]*entities.Competition, error) {
	query := `SELECT id, name, sport, season, is_active, created_at FROM competitions WHERE is_active = true ORDER BY name ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	var competitions []*entities.Competition
	for rows.Next() {
		var c entities.Competition
		err := rows.Scan(&c.ID, &c.Name, &c.Sport, &c.Season, &c.IsActive, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competition: %w", err)
		}
		competitions = append(competitions, &c)
	}

	return competitions, rows.Err()
}
