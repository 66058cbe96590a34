package planner

import "math"

// RepeatPolicy controls what happens when every recipe in a slot's pool has
// already been used this week.
type RepeatPolicy int

const (
	// RepeatLenient falls back to the full pool on exhaustion, so a slot is
	// never left empty while any candidate exists.
	RepeatLenient RepeatPolicy = iota
	// RepeatStrict returns no candidate on exhaustion.
	RepeatStrict
)

// warningPenalty is the score added per warning finding on a candidate.
const warningPenalty = 50.0

// findBestRecipe picks the lowest-scoring candidate from the pool, preferring
// recipes not yet used this week. Score is the relative calorie distance from
// the target, plus a protein-density shortfall penalty, plus a flat penalty
// per health/medication warning. Ties keep the earliest candidate, so a fixed
// pool yields a deterministic pick.
//
// Returns nil on an empty pool, or on an exhausted pool under RepeatStrict.
func findBestRecipe(pool []Candidate, calorieTarget float64, used map[string]bool, policy RepeatPolicy, targetProteinRatio float64) *Candidate {
	if len(pool) == 0 {
		return nil
	}

	available := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if !used[c.Recipe.ID] {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		if policy == RepeatStrict {
			return nil
		}
		available = pool
	}

	bestIdx := 0
	bestScore := scoreCandidate(available[0], calorieTarget, targetProteinRatio)
	for i := 1; i < len(available); i++ {
		score := scoreCandidate(available[i], calorieTarget, targetProteinRatio)
		if score < bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	best := available[bestIdx]
	return &best
}

func scoreCandidate(c Candidate, calorieTarget float64, targetProteinRatio float64) float64 {
	score := math.Abs(c.Recipe.Calories-calorieTarget) / calorieTarget

	if targetProteinRatio > 0 && c.Recipe.Calories > 0 {
		ratio := c.Recipe.Protein * 4 / c.Recipe.Calories
		if ratio < targetProteinRatio {
			// Penalize only falling short of the density target, not exceeding it.
			score += 5 * (targetProteinRatio - ratio)
		}
	}

	score += warningPenalty * float64(len(c.Warnings))
	return score
}
