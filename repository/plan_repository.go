package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PlanRepository implements the PlanRepository interface. Plans are
// seeded by migration and read-only at runtime.
type PlanRepository struct {
	q Queryable
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *database.DB) *PlanRepository {
	return &PlanRepository{q: db.Pool}
}

func newPlanRepositoryWithTx(tx Queryable) *PlanRepository {
	return &PlanRepository{q: tx}
}

// GetByID retrieves a plan by its stable key
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*entities.Plan, error) {
	query := `
		SELECT id, name, max_members, max_competitions, max_changes_week,
		       monthly_price_cents, features, created_at
		FROM plans
		WHERE id = $1
	`

	plan, err := scanPlan(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %s: %w", id, err)
	}

	return plan, nil
}

// List returns all plans ordered by ascending monthly price
func (r *PlanRepository) List(ctx context.Context) ([]*entities.Plan, error) {
	query := `
		SELECT id, name, max_members, max_competitions, max_changes_week,
		       monthly_price_cents, features, created_at
		FROM plans
		ORDER BY monthly_price_cents ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []*entities.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func scanPlan(row pgx.Row) (*entities.Plan, error) {
	var plan entities.Plan
	var features []byte
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.MaxMembers,
		&plan.MaxCompetitions,
		&plan.MaxChangesWeek,
		&plan.MonthlyPriceCents,
		&features,
		&plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(features) > 0 {
		if err := json.Unmarshal(features, &plan.Features); err != nil {
			return nil, fmt.Errorf("failed to decode plan features: %w", err)
		}
	}

	return &plan, nil
}
