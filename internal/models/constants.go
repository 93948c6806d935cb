package models

// ============================================================================
// PRIORITY CONSTANTS
// ============================================================================

// Priority constants
const (
	PriorityTrivial  = 1
	PriorityLow      = 2
	PriorityMedium   = 3
	PriorityHigh     = 4
	PriorityCritical = 5
)

// DefaultPriority is used when a create request leaves the priority unset
const DefaultPriority = PriorityMedium

// Priorities lists the seeded priority rows in ID order
var Priorities = []Priority{
	{ID: PriorityTrivial, Description: "trivial", Color: "#3B82F6"},
	{ID: PriorityLow, Description: "low", Color: "#22C55E"},
	{ID: PriorityMedium, Description: "medium", Color: "#EAB308"},
	{ID: PriorityHigh, Description: "high", Color: "#F97316"},
	{ID: PriorityCritical, Description: "critical", Color: "#EF4444"},
}

// PriorityByID returns the priority with the given ID, or the default one.
func PriorityByID(id int) Priority {
	for _, p := range Priorities {
		if p.ID == id {
			return p
		}
	}
	return Priorities[DefaultPriority-1]
}
