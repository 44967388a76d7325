// Package validation holds the schema rules applied to resource field maps.
// The store treats it as an opaque collaborator: any failure surfaces as a
// ValidationError, never as a store-internal condition.
package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"

	"resource-catalog-api/internal/apierr"
	"resource-catalog-api/internal/store"
)

// fieldNameRe constrains user-supplied field names.
var fieldNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// CreatePayload wraps the field map of a create request so struct-level
// validation can be registered for it.
type CreatePayload struct {
	Fields map[string]any
}

// New returns a configured validator with the resource field rules
// registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(createPayloadValidation, CreatePayload{})
	return v
}

// createPayloadValidation enforces that a create carries at least one field
// and that every field name is legal.
func createPayloadValidation(sl validatorv10.StructLevel) {
	p := sl.Current().Interface().(CreatePayload)
	if len(p.Fields) == 0 {
		sl.ReportError(p.Fields, "fields", "Fields", "fields_required", "")
		return
	}
	for name := range p.Fields {
		if Fields(map[string]any{name: nil}) != nil {
			sl.ReportError(p.Fields, "fields", "Fields", "field_name", name)
		}
	}
}

// ValidateCreate runs the create rules and converts failures to the typed
// ValidationError the boundary expects.
func ValidateCreate(v *validatorv10.Validate, fields map[string]any) error {
	if err := v.Struct(CreatePayload{Fields: fields}); err != nil {
		return apierr.Validation("invalid resource fields: %v", err)
	}
	return nil
}

// Fields is the schema collaborator handed to the store. It checks every
// field name against the reserved keys and the name pattern; empty maps pass
// (create-time emptiness is rejected at the request boundary, and an empty
// update is a timestamp-only touch).
func Fields(fields map[string]any) error {
	for name := range fields {
		switch name {
		case store.KeyID, store.KeyCreatedAt, store.KeyUpdatedAt:
			return apierr.Validation("field name %q is reserved", name)
		}
		if !fieldNameRe.MatchString(name) {
			return apierr.Validation("field name %q is not allowed", name)
		}
	}
	return nil
}

// Ensure Fields satisfies the store's collaborator contract.
var _ store.FieldValidator = Fields
