package resource

// SchemaValidator performs type validation of full records and sparse
// patch maps against a declared schema. It checks types only, never
// required-ness; required-ness is a business rule and belongs to the
// entity validator layered on top.
type SchemaValidator[T Record] struct {
	schema *Schema[T]
}

// NewSchemaValidator returns a SchemaValidator over the given schema.
func NewSchemaValidator[T Record](schema *Schema[T]) *SchemaValidator[T] {
	return &SchemaValidator[T]{schema: schema}
}

// ValidateRecord flattens the record to a field-to-value map and runs the
// same rule engine as patch validation.
func (v *SchemaValidator[T]) ValidateRecord(r T) error {
	return v.validateValues(v.schema.Flatten(r))
}

// ValidatePatch checks every key present in the patch map: undeclared
// keys fail with an unknown-field error, declared keys fail on type
// incompatibility. nil values are compatible with any kind. All field
// errors accumulate into one ValidationError.
func (v *SchemaValidator[T]) ValidatePatch(patch map[string]any) error {
	return v.validateValues(patch)
}

func (v *SchemaValidator[T]) validateValues(values map[string]any) error {
	errs := ErrorSet{}
	for name, value := range values {
		f, ok := v.schema.Field(name)
		if !ok {
			errs[name] = "unknown field, not part of the record schema"
			continue
		}
		if value == nil {
			continue
		}
		if _, err := CoerceValue(value, f); err != nil {
			errs[name] = err.Error()
		}
	}
	if len(errs) > 0 {
		return NewValidationError(errs)
	}
	return nil
}
