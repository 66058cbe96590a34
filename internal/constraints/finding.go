package constraints

// Severity classifies how a finding affects recipe selection.
type Severity string

const (
	// SeverityBlock excludes a recipe outright. Only allergy findings block.
	SeverityBlock Severity = "block"
	// SeverityWarn deprioritizes a recipe during scoring but never excludes it.
	SeverityWarn Severity = "warn"
)

// Finding is a single constraint evaluation result for a recipe/profile pair.
type Finding struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}
