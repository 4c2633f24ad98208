package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/corkboard/pkg/resource"
)

func validTask() *Task {
	return &Task{
		Title:    "Plan launch",
		Status:   StatusTodo,
		Priority: PriorityHigh,
	}
}

func TestValidateRecord(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		mutate     func(*Task)
		wantFields []string
	}{
		{
			name:   "valid task passes",
			mutate: func(*Task) {},
		},
		{
			name:       "missing title",
			mutate:     func(task *Task) { task.Title = "" },
			wantFields: []string{"title"},
		},
		{
			name:       "missing status",
			mutate:     func(task *Task) { task.Status = "" },
			wantFields: []string{"status"},
		},
		{
			name:       "missing priority",
			mutate:     func(task *Task) { task.Priority = "" },
			wantFields: []string{"priority"},
		},
		{
			name: "all required fields missing accumulate",
			mutate: func(task *Task) {
				task.Title = ""
				task.Status = ""
				task.Priority = ""
			},
			wantFields: []string{"title", "status", "priority"},
		},
		{
			name:       "title over limit",
			mutate:     func(task *Task) { task.Title = strings.Repeat("a", MaxTitleLength+1) },
			wantFields: []string{"title"},
		},
		{
			name:       "description over limit",
			mutate:     func(task *Task) { task.Description = strings.Repeat("d", MaxDescriptionLength+1) },
			wantFields: []string{"description"},
		},
		{
			name:   "title exactly at limit passes",
			mutate: func(task *Task) { task.Title = strings.Repeat("a", MaxTitleLength) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(task)

			err := v.ValidateRecord(task)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			errs, ok := resource.AsValidationError(err)
			require.True(t, ok, "expected a ValidationError, got %v", err)
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateRecordSchemaFailureShortCircuits(t *testing.T) {
	v := NewValidator()

	task := validTask()
	task.Status = "NOT_A_STATUS"
	task.Title = "" // would also fail the business check

	err := v.ValidateRecord(task)
	errs, ok := resource.AsValidationError(err)
	require.True(t, ok)

	// Only the schema error surfaces; business rules never ran.
	assert.Contains(t, errs, "status")
	assert.NotContains(t, errs, "title")
}

func TestValidatePatch(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		patch      map[string]any
		wantFields []string
	}{
		{
			name:  "partial patch passes without required fields",
			patch: map[string]any{"description": "more detail"},
		},
		{
			name:  "empty patch passes",
			patch: map[string]any{},
		},
		{
			name:  "case-insensitive enum passes",
			patch: map[string]any{"status": "in_progress", "priority": "low"},
		},
		{
			name:       "unknown field reports that exact key",
			patch:      map[string]any{"status": "done", "unknown": "x"},
			wantFields: []string{"unknown"},
		},
		{
			name:       "invalid enum symbol",
			patch:      map[string]any{"status": "someday"},
			wantFields: []string{"status"},
		},
		{
			name:       "title over limit",
			patch:      map[string]any{"title": strings.Repeat("a", MaxTitleLength+1)},
			wantFields: []string{"title"},
		},
		{
			name:       "non-string title",
			patch:      map[string]any{"title": float64(5)},
			wantFields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePatch(tt.patch)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			errs, ok := resource.AsValidationError(err)
			require.True(t, ok, "expected a ValidationError, got %v", err)
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}
