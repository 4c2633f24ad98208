package resource

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Field kinds determine what values a declared field accepts.
const (
	KindText      = "text"
	KindEnum      = "enum"
	KindInteger   = "integer"
	KindBoolean   = "boolean"
	KindTimestamp = "timestamp"
)

// Field describes one declared field of a record schema: its kind, the
// canonical symbols for enum kinds, and typed accessors on the record.
// Protected fields (the Entity base fields) are declared so that schema
// validation recognizes them, but the patch applier never writes them.
type Field[T Record] struct {
	Kind      string
	Symbols   []string // canonical enum symbols; KindEnum only
	Protected bool
	Get       func(T) any
	Set       func(T, any) // receives a value already coerced for Kind
}

// Schema is the statically declared field table for one entity type:
// field name to Field descriptor. Declared once per entity; the patch
// applier and schema validator consult it by name instead of inspecting
// record types at runtime.
type Schema[T Record] struct {
	fields    map[string]Field[T]
	newRecord func() T
}

// NewSchema builds a Schema from a record factory and the entity-specific
// fields, and adds the Entity base fields (id, createdAt, updatedAt) as
// protected entries.
func NewSchema[T Record](newRecord func() T, fields map[string]Field[T]) *Schema[T] {
	all := make(map[string]Field[T], len(fields)+3)
	for name, f := range fields {
		all[name] = f
	}
	all["id"] = Field[T]{
		Kind:      KindText,
		Protected: true,
		Get:       func(r T) any { return r.RecordID() },
	}
	all["createdAt"] = Field[T]{
		Kind:      KindTimestamp,
		Protected: true,
		Get:       func(r T) any { return r.CreatedAtMillis() },
	}
	all["updatedAt"] = Field[T]{
		Kind:      KindTimestamp,
		Protected: true,
		Get:       func(r T) any { return r.UpdatedAtMillis() },
	}
	return &Schema[T]{fields: all, newRecord: newRecord}
}

// Clone returns a fresh record carrying the same base and declared field
// values. The store patches clones, never the stored item itself, so
// readers holding a reference never observe a half-applied patch.
func (s *Schema[T]) Clone(r T) T {
	out := s.newRecord()
	out.SetRecordID(r.RecordID())
	out.SetCreatedAtMillis(r.CreatedAtMillis())
	out.SetUpdatedAtMillis(r.UpdatedAtMillis())
	for _, f := range s.fields {
		if f.Protected || f.Set == nil {
			continue
		}
		f.Set(out, f.Get(r))
	}
	return out
}

// Field returns the descriptor declared under name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Names returns all declared field names in sorted order.
func (s *Schema[T]) Names() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flatten converts a record to a field name to value map via the schema
// getters. Unset values (nil, empty strings, zero timestamps) are
// omitted, so absence and presence are distinguishable downstream.
func (s *Schema[T]) Flatten(r T) map[string]any {
	values := make(map[string]any, len(s.fields))
	for name, f := range s.fields {
		v := f.Get(r)
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok && str == "" {
			continue
		}
		if f.Kind == KindTimestamp {
			if ms, ok := v.(int64); ok && ms == 0 {
				continue
			}
		}
		values[name] = v
	}
	return values
}

// Canonicalize rewrites enum fields to their canonical symbols, using
// the same coercion as the patch applier. Decoded records carry enum
// values exactly as the caller spelled them; validation accepts any
// casing, so the transport normalizes records here before storing them.
// An error means the record was never validated.
func (s *Schema[T]) Canonicalize(r T) error {
	for name, f := range s.fields {
		if f.Protected || f.Kind != KindEnum || f.Set == nil {
			continue
		}
		v, ok := f.Get(r).(string)
		if !ok || v == "" {
			continue
		}
		coerced, err := CoerceValue(v, f)
		if err != nil {
			return fmt.Errorf("canonicalizing field %q: %w", name, err)
		}
		f.Set(r, coerced)
	}
	return nil
}

// CoerceValue converts a dynamic value (as decoded from JSON: string,
// number, boolean, or nil) to the canonical form for the field's kind.
// nil passes through for every kind. Enum strings match the declared
// symbols case-insensitively and coerce to the canonical symbol. Numbers
// normalize to int64 for integer and timestamp kinds. Anything else is a
// type mismatch.
func CoerceValue[T Record](value any, f Field[T]) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch f.Kind {
	case KindText:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("%w: expected text, got %T", ErrTypeMismatch, value)
	case KindEnum:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected one of %s, got %T",
				ErrTypeMismatch, strings.Join(f.Symbols, ", "), value)
		}
		for _, symbol := range f.Symbols {
			if strings.EqualFold(s, symbol) {
				return symbol, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not one of %s",
			ErrTypeMismatch, s, strings.Join(f.Symbols, ", "))
	case KindInteger, KindTimestamp:
		switch n := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return cast.ToInt64E(n)
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%w: %v is not an integer", ErrTypeMismatch, n)
			}
			return cast.ToInt64E(n)
		case float32:
			if float64(n) != math.Trunc(float64(n)) {
				return nil, fmt.Errorf("%w: %v is not an integer", ErrTypeMismatch, n)
			}
			return cast.ToInt64E(n)
		default:
			return nil, fmt.Errorf("%w: expected integer, got %T", ErrTypeMismatch, value)
		}
	case KindBoolean:
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("%w: expected boolean, got %T", ErrTypeMismatch, value)
	default:
		return nil, fmt.Errorf("%w: unknown field kind %q", ErrInvalidData, f.Kind)
	}
}
