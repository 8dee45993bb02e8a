// Package normalizer turns one client's raw spreadsheet rows into canonical
// incident, factor and action records.
package normalizer

import (
	"safetynorm/internal/models"
	"safetynorm/internal/registry"
)

// Batch groups the raw incident, factor and action tables of one client.
type Batch struct {
	Incidents models.Table
	Factors   models.Table
	Actions   models.Table
}

// Normalize validates the mapping against the tables and builds the canonical records.
// Only configuration errors are returned; row-level problems go to the diagnostics.
// It has no side effects and is safe for concurrent use.
func Normalize(m registry.ClientFieldMapping, incidents, factors, actions models.Table) (*models.Result, error) {
	return NormalizeBatch(m, Batch{Incidents: incidents, Factors: factors, Actions: actions})
}

// NormalizeBatch is Normalize over a Batch.
func NormalizeBatch(m registry.ClientFieldMapping, b Batch) (*models.Result, error) {
	if err := NewValidator().Validate(m, b); err != nil {
		return nil, err
	}

	return NewTransformer().Transform(m, b), nil
}
