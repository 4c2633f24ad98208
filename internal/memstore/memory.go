package memstore

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/mesh-intelligence/corkboard/pkg/resource"
)

// Compile-time interface check: Store must implement resource.Store.
var _ resource.Store[*resource.Entity] = (*Store[*resource.Entity])(nil)

// Store is a thread-safe in-memory resource.Store. Every operation is
// individually atomic with respect to the map; Patch is the documented
// exception, a read-modify-write with no cross-step lock.
type Store[T resource.Record] struct {
	mu     sync.RWMutex
	items  map[string]T
	schema *resource.Schema[T]
	logger *slog.Logger
	now    func() time.Time
}

// New returns an empty Store for the entity type described by schema.
func New[T resource.Record](schema *resource.Schema[T], logger *slog.Logger) *Store[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[T]{
		items:  make(map[string]T),
		schema: schema,
		logger: logger,
		now:    time.Now,
	}
}

// Create inserts the item. An unset ID gets a freshly minted random UUID;
// createdAt is stamped only when unset, updatedAt always. Validation is
// the caller's responsibility and has already happened by this point.
func (s *Store[T]) Create(item T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.RecordID() == "" {
		item.SetRecordID(uuid.NewString())
	}

	now := s.now().UnixMilli()
	if item.CreatedAtMillis() == 0 {
		item.SetCreatedAtMillis(now)
	}
	item.SetUpdatedAtMillis(now)

	s.items[item.RecordID()] = item
	return item
}

// Get retrieves the item with the given ID.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// BatchGet resolves every requested ID independently: hits land in the
// envelope's results map, misses in its errors map with a not-found
// code. One missing ID never fails the batch.
func (s *Store[T]) BatchGet(ids []string) *resource.Collection[string, T] {
	collection := resource.NewCollection[string, T]()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			collection.AddResult(id, item)
		} else {
			collection.AddError(id, resource.CodeNotFound)
		}
	}
	return collection
}

// ListAll returns every stored item when filters is empty, otherwise the
// items satisfying all filter predicates. Enum fields match their
// symbols case-insensitively, text fields match by case-insensitive
// substring, other kinds by exact string form. Unknown filter keys are
// ignored so generic callers can pass query parameters through.
func (s *Store[T]) ListAll(filters map[string]string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if s.matchesFilters(item, filters) {
			result = append(result, item)
		}
	}
	return result
}

// Update replaces the stored item entirely, forcing the key and
// refreshing updatedAt. The stored createdAt carries over when the
// replacement leaves it unset, keeping the creation timestamp immutable.
// Missing keys are not created.
func (s *Store[T]) Update(id string, item T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}

	item.SetRecordID(id)
	if item.CreatedAtMillis() == 0 {
		item.SetCreatedAtMillis(existing.CreatedAtMillis())
	}
	item.SetUpdatedAtMillis(s.now().UnixMilli())

	s.items[id] = item
	return item, true
}

// Delete removes the item and reports whether anything was removed.
// Deleting an absent key is not an error.
func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Exists reports whether an item is stored under the ID.
func (s *Store[T]) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// Patch merges the sparse field map into a clone of the stored item and
// persists the clone via Update. The read and the write take the lock
// separately, so concurrent patches to the same key race and the later
// write wins on the whole record; readers only ever see fully applied
// states. A coercion failure here means the patch map bypassed schema
// validation; the operation aborts and the failure is logged for
// investigation, never swallowed.
func (s *Store[T]) Patch(id string, patch map[string]any) (T, bool, error) {
	existing, ok := s.Get(id)
	if !ok {
		var zero T
		return zero, false, nil
	}

	item := s.schema.Clone(existing)
	if err := s.schema.ApplyPatch(item, patch, s.now().UnixMilli()); err != nil {
		s.logger.Error("patch coercion failed after schema validation",
			"id", id,
			"error", err,
		)
		var zero T
		return zero, true, err
	}

	return s.persistPatched(id, item)
}

// persistPatched writes the patched item back. The item can disappear
// between the read and this write; that surfaces as not found.
func (s *Store[T]) persistPatched(id string, item T) (T, bool, error) {
	updated, ok := s.Update(id, item)
	if !ok {
		var zero T
		return zero, false, nil
	}
	return updated, true, nil
}

// matchesFilters reports whether the item satisfies every filter entry.
func (s *Store[T]) matchesFilters(item T, filters map[string]string) bool {
	for name, want := range filters {
		f, ok := s.schema.Field(name)
		if !ok {
			continue
		}
		got := f.Get(item)

		switch f.Kind {
		case resource.KindEnum:
			if !strings.EqualFold(cast.ToString(got), want) {
				return false
			}
		case resource.KindText:
			if !strings.Contains(strings.ToLower(cast.ToString(got)), strings.ToLower(want)) {
				return false
			}
		default:
			if cast.ToString(got) != want {
				return false
			}
		}
	}
	return true
}
