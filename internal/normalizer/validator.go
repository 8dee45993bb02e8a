package normalizer

import (
	"errors"
	"fmt"

	"safetynorm/internal/models"
	"safetynorm/internal/registry"
)

// ErrMalformedMapping marks a mapping that points at columns the raw rows do not have.
var ErrMalformedMapping = errors.New("malformed mapping")

// MalformedMappingError names the mapped column missing from a raw table's schema.
type MalformedMappingError struct {
	Entity string
	Field  string
	Column string
}

func (e *MalformedMappingError) Error() string {
	return fmt.Sprintf("%s: %s.%s references column %q which is not in the %s rows",
		ErrMalformedMapping, e.Entity, e.Field, e.Column, e.Entity)
}

// Unwrap lets errors.Is match ErrMalformedMapping.
func (e *MalformedMappingError) Unwrap() error {
	return ErrMalformedMapping
}

// Validator checks a mapping against the schema of the raw tables.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns a *MalformedMappingError for the first mapped column
// missing from its table. Tables with neither columns nor rows are not checked.
func (v *Validator) Validate(m registry.ClientFieldMapping, b Batch) error {
	checks := []struct {
		entity string
		fields []registry.FieldRef
		table  models.Table
	}{
		{models.EntityIncident, m.Incident.Fields(), b.Incidents},
		{models.EntityFactor, m.Factor.Fields(), b.Factors},
		{models.EntityAction, m.Action.Fields(), b.Actions},
	}

	for _, c := range checks {
		if c.table.IsEmpty() {
			continue
		}

		schema := c.table.Schema()

		for _, f := range c.fields {
			col, ok := f.Column.Name()
			if !ok {
				continue
			}

			if _, found := schema[col]; !found {
				return &MalformedMappingError{Entity: c.entity, Field: f.Key, Column: col}
			}
		}
	}

	return nil
}
