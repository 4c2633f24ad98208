package board

import (
	"fmt"

	"github.com/mesh-intelligence/corkboard/pkg/resource"
)

// Business rule limits for Task fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Compile-time interface check: Validator must implement resource.Validator.
var _ resource.Validator[*Task] = (*Validator)(nil)

// Validator enforces Task business rules on top of schema validation.
// Schema failures short-circuit: business rules never run against values
// whose types are already wrong.
type Validator struct {
	schema *resource.SchemaValidator[*Task]
	table  *resource.Schema[*Task]
}

// NewValidator returns a Validator backed by the Task schema.
func NewValidator() *Validator {
	table := Schema()
	return &Validator{
		schema: resource.NewSchemaValidator(table),
		table:  table,
	}
}

// ValidateRecord validates a full task with create semantics: schema
// types first, then required fields and per-field limits. All business
// failures accumulate into one error set.
func (v *Validator) ValidateRecord(t *Task) error {
	if err := v.schema.ValidateRecord(t); err != nil {
		return err
	}

	errs := resource.ErrorSet{}
	fields := v.table.Flatten(t)

	if fields["title"] == nil {
		errs["title"] = "Title is required"
	}
	if fields["status"] == nil {
		errs["status"] = "Status is required"
	}
	if fields["priority"] == nil {
		errs["priority"] = "Priority is required"
	}

	for name, value := range fields {
		validateField(name, value, errs)
	}

	if len(errs) > 0 {
		return resource.NewValidationError(errs)
	}
	return nil
}

// ValidatePatch validates a sparse patch map: schema types first, then
// the same per-field rules for the fields actually present. Absence is
// legal in a patch, so there is no required-ness check.
func (v *Validator) ValidatePatch(patch map[string]any) error {
	if err := v.schema.ValidatePatch(patch); err != nil {
		return err
	}

	errs := resource.ErrorSet{}
	for name, value := range patch {
		validateField(name, value, errs)
	}

	if len(errs) > 0 {
		return resource.NewValidationError(errs)
	}
	return nil
}

// validateField applies the business rule for a single field. The same
// rule runs for create and patch; required-ness is handled separately.
func validateField(name string, value any, errs resource.ErrorSet) {
	s, ok := value.(string)
	if !ok {
		return
	}
	switch name {
	case "title":
		if len(s) > MaxTitleLength {
			errs["title"] = fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength)
		}
	case "description":
		if len(s) > MaxDescriptionLength {
			errs["description"] = fmt.Sprintf("Description cannot exceed %d characters", MaxDescriptionLength)
		}
	}
}
