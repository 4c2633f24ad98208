package resource

import "fmt"

// ApplyPatch merges a sparse field-to-value map into the record. Protected
// fields (id, createdAt, updatedAt) and undeclared fields are skipped
// silently; undeclared keys are expected to have been rejected by schema
// validation upstream, so the skip is defense in depth rather than a
// second error channel. Declared fields are coerced to their kind and
// assigned. updatedAt is refreshed to nowMillis even when the map is
// empty or nothing changed.
//
// A coercion failure means schema validation was bypassed or disagrees
// with the schema table; it aborts the patch and is returned for the
// caller to surface.
func (s *Schema[T]) ApplyPatch(r T, patch map[string]any, nowMillis int64) error {
	for name, value := range patch {
		f, ok := s.fields[name]
		if !ok || f.Protected {
			continue
		}
		coerced, err := CoerceValue(value, f)
		if err != nil {
			return fmt.Errorf("patching field %q: %w", name, err)
		}
		f.Set(r, coerced)
	}
	r.SetUpdatedAtMillis(nowMillis)
	return nil
}
