package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of user profiles.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new profile repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Upsert inserts or replaces the profile for its user id.
func (r *Repository) Upsert(ctx context.Context, p Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("profile has no user id")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.UserID, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// Get retrieves the profile for a user. Returns nil when none is stored.
func (r *Repository) Get(ctx context.Context, userID string) (*Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM profiles WHERE user_id = ?`, userID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}
	return &p, nil
}
