package resource

// Store provides uniform CRUD and batch-get operations for a single
// entity type. Implementations must make each operation safe for
// concurrent callers; Patch alone is a documented read-modify-write
// whose two steps are not atomic end to end.
//
// Absence is reported through boolean results, never through errors:
// the transport layer decides the externally visible status.
type Store[T Record] interface {
	// Create inserts the item, minting an ID when unset and stamping
	// timestamps (createdAt only if unset, updatedAt always). No
	// validation happens here; callers validate first.
	Create(item T) T

	// Get retrieves the item with the given ID.
	Get(id string) (T, bool)

	// BatchGet attempts Get for each ID independently and returns the
	// collection envelope. A missing ID never fails the whole batch.
	BatchGet(ids []string) *Collection[string, T]

	// ListAll returns every stored item, or the items satisfying all
	// filter predicates. Unknown filter keys are ignored.
	ListAll(filters map[string]string) []T

	// Update replaces the stored item entirely, forcing the key and
	// refreshing updatedAt. It does not create missing keys.
	Update(id string, item T) (T, bool)

	// Delete removes the item and reports whether anything was removed.
	Delete(id string) bool

	// Exists reports whether an item is stored under the ID.
	Exists(id string) bool

	// Patch merges the sparse field map into the stored item and
	// persists the result. Concurrent patches to the same key are
	// last-writer-wins on the whole record. The error is non-nil only
	// for coercion contract violations between the validation stages.
	Patch(id string, patch map[string]any) (T, bool, error)
}

// Validator checks records before they reach the store. ValidateRecord
// applies create semantics (schema types plus required-ness and limits);
// ValidatePatch applies the same field rules to the keys present in a
// patch map, with no required-ness check. Both return a ValidationError
// carrying the complete field error set on failure.
type Validator[T Record] interface {
	ValidateRecord(item T) error
	ValidatePatch(patch map[string]any) error
}
