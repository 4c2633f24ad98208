package board

import "github.com/mesh-intelligence/corkboard/pkg/resource"

// Schema returns the declared field table for Task. The store's patch
// applier and the schema validator consult this table by field name; no
// per-field merge code exists anywhere else.
func Schema() *resource.Schema[*Task] {
	return resource.NewSchema(func() *Task { return &Task{} }, map[string]resource.Field[*Task]{
		"title": {
			Kind: resource.KindText,
			Get:  func(t *Task) any { return t.Title },
			Set:  func(t *Task, v any) { t.Title = asString(v) },
		},
		"description": {
			Kind: resource.KindText,
			Get:  func(t *Task) any { return t.Description },
			Set:  func(t *Task, v any) { t.Description = asString(v) },
		},
		"status": {
			Kind:    resource.KindEnum,
			Symbols: StatusSymbols,
			Get:     func(t *Task) any { return t.Status },
			Set:     func(t *Task, v any) { t.Status = asString(v) },
		},
		"priority": {
			Kind:    resource.KindEnum,
			Symbols: PrioritySymbols,
			Get:     func(t *Task) any { return t.Priority },
			Set:     func(t *Task, v any) { t.Priority = asString(v) },
		},
	})
}

// canonSchema backs Canonicalize so callers do not rebuild the table.
var canonSchema = Schema()

// Canonicalize rewrites the task's enum fields to their canonical
// symbols. Run after validation, before storing.
func Canonicalize(t *Task) error {
	return canonSchema.Canonicalize(t)
}

// asString unwraps a coerced text or enum value; nil clears the field.
func asString(v any) string {
	if v == nil {
		return ""
	}
	return v.(string)
}
