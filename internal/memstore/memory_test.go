package memstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/corkboard/pkg/board"
	"github.com/mesh-intelligence/corkboard/pkg/resource"
)

func newTaskStore() *Store[*board.Task] {
	return New(board.Schema(), nil)
}

func newTask(title, status, priority string) *board.Task {
	return &board.Task{Title: title, Status: status, Priority: priority}
}

func TestCreateMintsIDAndTimestamps(t *testing.T) {
	s := newTaskStore()

	created := s.Create(newTask("Plan launch", board.StatusTodo, board.PriorityHigh))

	assert.NotEmpty(t, created.ID, "an unset id gets minted")
	assert.NotZero(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt, "fresh records have equal timestamps")

	got, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestCreateKeepsCallerSuppliedFields(t *testing.T) {
	s := newTaskStore()

	task := newTask("Keep my id", board.StatusTodo, board.PriorityLow)
	task.ID = "task-42"
	task.CreatedAt = 1234

	created := s.Create(task)

	assert.Equal(t, "task-42", created.ID)
	assert.Equal(t, int64(1234), created.CreatedAt, "a supplied createdAt is kept")
	assert.NotEqual(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateMintsUniqueIDs(t *testing.T) {
	s := newTaskStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.Create(newTask("t", board.StatusTodo, board.PriorityLow)).ID
		assert.False(t, seen[id], "duplicate minted id %s", id)
		seen[id] = true
	}
}

func TestGetMissing(t *testing.T) {
	s := newTaskStore()
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestBatchGetPartitionsEveryKey(t *testing.T) {
	s := newTaskStore()
	a := s.Create(newTask("a", board.StatusTodo, board.PriorityLow))
	b := s.Create(newTask("b", board.StatusDone, board.PriorityHigh))

	ids := []string{a.ID, "missing-1", b.ID, "missing-2"}
	c := s.BatchGet(ids)

	assert.Len(t, c.Results, 2)
	assert.Len(t, c.Errors, 2)
	assert.Equal(t, len(ids), len(c.Results)+len(c.Errors))

	for _, id := range ids {
		_, inResults := c.Results[id]
		_, inErrors := c.Errors[id]
		assert.True(t, inResults != inErrors, "id %s must be in exactly one map", id)
	}

	assert.Equal(t, a, c.Results[a.ID])
	assert.Equal(t, resource.CodeNotFound, c.Errors["missing-1"])
	assert.Equal(t, resource.CodeNotFound, c.Errors["missing-2"])
}

func TestBatchGetEmpty(t *testing.T) {
	s := newTaskStore()
	c := s.BatchGet(nil)
	assert.Empty(t, c.Results)
	assert.Empty(t, c.Errors)
}

func TestListAllFilters(t *testing.T) {
	s := newTaskStore()
	s.Create(newTask("Write spec", board.StatusTodo, board.PriorityHigh))
	s.Create(newTask("Review spec", board.StatusTodo, board.PriorityLow))
	s.Create(newTask("Ship it", board.StatusDone, board.PriorityHigh))

	tests := []struct {
		name    string
		filters map[string]string
		want    int
	}{
		{name: "no filters returns all", filters: nil, want: 3},
		{name: "empty filters returns all", filters: map[string]string{}, want: 3},
		{name: "status equality", filters: map[string]string{"status": "todo"}, want: 2},
		{name: "status canonical case", filters: map[string]string{"status": "DONE"}, want: 1},
		{name: "priority equality", filters: map[string]string{"priority": "high"}, want: 2},
		{name: "combined filters", filters: map[string]string{"status": "todo", "priority": "high"}, want: 1},
		{name: "title substring", filters: map[string]string{"title": "spec"}, want: 2},
		{name: "title substring case-insensitive", filters: map[string]string{"title": "SHIP"}, want: 1},
		{name: "no matches", filters: map[string]string{"status": "in_progress"}, want: 0},
		{name: "unknown filter key ignored", filters: map[string]string{"owner": "me"}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, s.ListAll(tt.filters), tt.want)
		})
	}
}

func TestUpdateReplacesButDoesNotCreate(t *testing.T) {
	s := newTaskStore()
	created := s.Create(newTask("original", board.StatusTodo, board.PriorityLow))

	replacement := newTask("replaced", board.StatusDone, board.PriorityHigh)
	updated, ok := s.Update(created.ID, replacement)

	require.True(t, ok)
	assert.Equal(t, created.ID, updated.ID, "the key is forced onto the replacement")
	assert.Equal(t, "replaced", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "createdAt carries over when unset")
	assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)

	_, ok = s.Update("missing", newTask("x", board.StatusTodo, board.PriorityLow))
	assert.False(t, ok, "update never creates")
	assert.False(t, s.Exists("missing"))
}

func TestDelete(t *testing.T) {
	s := newTaskStore()
	created := s.Create(newTask("doomed", board.StatusTodo, board.PriorityLow))

	assert.True(t, s.Delete(created.ID))
	_, ok := s.Get(created.ID)
	assert.False(t, ok, "get after delete is not found")

	assert.False(t, s.Delete(created.ID), "second delete removes nothing")
	assert.False(t, s.Delete("never-existed"))
}

func TestExists(t *testing.T) {
	s := newTaskStore()
	created := s.Create(newTask("here", board.StatusTodo, board.PriorityLow))

	assert.True(t, s.Exists(created.ID))
	assert.False(t, s.Exists("elsewhere"))
}

func TestPatchAppliesFieldsAndCoercesEnums(t *testing.T) {
	s := newTaskStore()
	created := s.Create(newTask("Plan launch", board.StatusTodo, board.PriorityHigh))

	patched, found, err := s.Patch(created.ID, map[string]any{
		"status":      "done",
		"description": "wrapped up",
	})

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, board.StatusDone, patched.Status, "status coerced to the canonical symbol")
	assert.Equal(t, "wrapped up", patched.Description)
	assert.Equal(t, "Plan launch", patched.Title, "untouched fields survive")

	stored, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, board.StatusDone, stored.Status)
}

func TestPatchEmptyMapRefreshesUpdatedAtOnly(t *testing.T) {
	s := newTaskStore()
	created := s.Create(newTask("steady", board.StatusTodo, board.PriorityLow))
	before := *created

	// Advance the clock so the refresh is observable.
	base := time.Now()
	s.now = func() time.Time { return base.Add(time.Second) }

	patched, found, err := s.Patch(created.ID, map[string]any{})

	require.NoError(t, err)
	require.True(t, found)
	assert.Greater(t, patched.UpdatedAt, before.UpdatedAt)
	assert.Equal(t, before.ID, patched.ID)
	assert.Equal(t, before.CreatedAt, patched.CreatedAt)
	assert.Equal(t, before.Title, patched.Title)
	assert.Equal(t, before.Status, patched.Status)
	assert.Equal(t, before.Priority, patched.Priority)
}

func TestPatchProtectedFieldsAreNoOps(t *testing.T) {
	s := newTaskStore()
	created := s.Create(newTask("immutable bits", board.StatusTodo, board.PriorityLow))
	id, createdAt := created.ID, created.CreatedAt

	patched, found, err := s.Patch(id, map[string]any{
		"id":        "hijacked",
		"createdAt": float64(1),
	})

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id, patched.ID)
	assert.Equal(t, createdAt, patched.CreatedAt)

	assert.True(t, s.Exists(id))
	assert.False(t, s.Exists("hijacked"))
}

func TestPatchMissingKey(t *testing.T) {
	s := newTaskStore()
	_, found, err := s.Patch("ghost", map[string]any{"title": "boo"})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestPatchCoercionContractViolation(t *testing.T) {
	s := newTaskStore()
	created := s.Create(newTask("typed", board.StatusTodo, board.PriorityLow))

	// A patch that skipped schema validation: the applier must refuse it
	// rather than store a half-coerced record.
	_, found, err := s.Patch(created.ID, map[string]any{"status": "bogus"})

	assert.True(t, found)
	assert.ErrorIs(t, err, resource.ErrTypeMismatch)

	stored, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, board.StatusTodo, stored.Status)
}

func TestConcurrentOperationsDoNotCorruptTheStore(t *testing.T) {
	s := newTaskStore()
	seed := s.Create(newTask("shared", board.StatusTodo, board.PriorityLow))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				switch j % 5 {
				case 0:
					s.Create(newTask(fmt.Sprintf("w%d-%d", n, j), board.StatusTodo, board.PriorityLow))
				case 1:
					s.Get(seed.ID)
				case 2:
					s.ListAll(map[string]string{"status": "todo"})
				case 3:
					_, _, _ = s.Patch(seed.ID, map[string]any{"description": fmt.Sprintf("w%d-%d", n, j)})
				case 4:
					s.BatchGet([]string{seed.ID, "missing"})
				}
			}
		}(i)
	}
	wg.Wait()

	// The seed record survived every racing patch with a valid shape.
	got, ok := s.Get(seed.ID)
	require.True(t, ok)
	assert.Equal(t, seed.ID, got.ID)
	assert.Equal(t, board.StatusTodo, got.Status)
}
