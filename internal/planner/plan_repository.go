package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// StoredPlan is a persisted week plan with its creation timestamp.
type StoredPlan struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Plan      WeekPlan  `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanRepository is a database-backed repository for generated week plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a new week plan and returns its database id.
func (r *PlanRepository) Save(ctx context.Context, userID string, plan *WeekPlan) (int64, error) {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal week plan: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO meal_plans (user_id, plan_data, created_at)
		VALUES (?, ?, ?)`,
		userID, string(planJSON), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert meal plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read meal plan id: %w", err)
	}
	return id, nil
}

// Latest retrieves the most recent plan for a user. Returns nil when none exists.
func (r *PlanRepository) Latest(ctx context.Context, userID string) (*StoredPlan, error) {
	var (
		stored   StoredPlan
		planData string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, plan_data, created_at FROM meal_plans
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID).Scan(&stored.ID, &stored.UserID, &planData, &stored.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest meal plan: %w", err)
	}

	if err := json.Unmarshal([]byte(planData), &stored.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal week plan: %w", err)
	}
	return &stored, nil
}
