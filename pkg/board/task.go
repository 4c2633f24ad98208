package board

import "github.com/mesh-intelligence/corkboard/pkg/resource"

// Task statuses. Canonical symbols are upper case; inputs match
// case-insensitively and coerce to the canonical form.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// StatusSymbols lists the canonical status symbols.
var StatusSymbols = []string{StatusTodo, StatusInProgress, StatusDone}

// Task priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// PrioritySymbols lists the canonical priority symbols.
var PrioritySymbols = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Task represents one tracked work item. The embedded Entity contributes
// id, createdAt, and updatedAt.
type Task struct {
	resource.Entity

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
}
