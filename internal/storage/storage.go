package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nutriplan/internal/planner"
)

// PlanCache provides file-based storage of the latest generated plan per
// user, used as a fallback when the database is unavailable.
type PlanCache struct {
	basePath string
}

// NewPlanCache creates a new PlanCache and ensures the base directory exists.
func NewPlanCache(basePath string) (*PlanCache, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", basePath, err)
	}
	return &PlanCache{basePath: basePath}, nil
}

// sanitizeUserID makes a user id safe for filenames.
func sanitizeUserID(userID string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "..", "-")
	return replacer.Replace(userID)
}

func (c *PlanCache) path(userID string) string {
	return filepath.Join(c.basePath, sanitizeUserID(userID)+".json")
}

// Save writes the plan as the user's cached copy, replacing any previous one.
func (c *PlanCache) Save(userID string, plan *planner.WeekPlan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(c.path(userID), data, 0644); err != nil {
		return fmt.Errorf("failed to write plan cache file: %w", err)
	}
	return nil
}

// Load retrieves the user's cached plan.
func (c *PlanCache) Load(userID string) (*planner.WeekPlan, error) {
	data, err := os.ReadFile(c.path(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan cache file: %w", err)
	}

	var plan planner.WeekPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached plan: %w", err)
	}
	return &plan, nil
}

// Exists checks whether a cached plan is present for the user.
func (c *PlanCache) Exists(userID string) bool {
	_, err := os.Stat(c.path(userID))
	return !os.IsNotExist(err)
}

// Remove deletes the user's cached plan if present.
func (c *PlanCache) Remove(userID string) error {
	err := os.Remove(c.path(userID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove plan cache file: %w", err)
	}
	return nil
}
