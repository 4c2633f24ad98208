package resource

// CodeNotFound is the per-key error code recorded for batch-get misses.
const CodeNotFound = 404

// Collection is the batch-get envelope: successfully retrieved items
// keyed by ID, and per-key error codes for the IDs that failed. Every
// requested key lands in exactly one of the two maps.
type Collection[K comparable, T any] struct {
	Results map[K]T   `json:"results"`
	Errors  map[K]int `json:"errors"`
}

// NewCollection returns an empty Collection with both maps initialized,
// so the envelope always serializes as two sibling objects.
func NewCollection[K comparable, T any]() *Collection[K, T] {
	return &Collection[K, T]{
		Results: make(map[K]T),
		Errors:  make(map[K]int),
	}
}

// AddResult records a successful retrieval.
func (c *Collection[K, T]) AddResult(key K, item T) {
	c.Results[key] = item
}

// AddError records a failed retrieval with its error code.
func (c *Collection[K, T]) AddError(key K, code int) {
	c.Errors[key] = code
}
