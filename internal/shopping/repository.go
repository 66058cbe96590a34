package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository persists aggregated shopping lists, keyed by the meal plan they
// were generated from.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save stores the list for a user and meal plan, returning the row id.
func (r *Repository) Save(ctx context.Context, userID string, mealPlanID int64, list ShoppingList) (int64, error) {
	itemsJSON, err := json.Marshal(list)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO shopping_lists (user_id, meal_plan_id, items, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, mealPlanID, string(itemsJSON), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read shopping list id: %w", err)
	}
	return id, nil
}

// GetByMealPlan loads the most recent list stored for a meal plan. Returns
// nil when none exists.
func (r *Repository) GetByMealPlan(ctx context.Context, mealPlanID int64) (*ShoppingList, error) {
	var itemsJSON string
	err := r.db.QueryRowContext(ctx, `
		SELECT items FROM shopping_lists
		WHERE meal_plan_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, mealPlanID).Scan(&itemsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}

	var list ShoppingList
	if err := json.Unmarshal([]byte(itemsJSON), &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list: %w", err)
	}
	return &list, nil
}
