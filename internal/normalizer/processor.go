package normalizer

import (
	"fmt"
	"sort"

	"safetynorm/internal/logger"
	"safetynorm/internal/models"
	"safetynorm/internal/registry"
)

// Processor resolves a client's mapping by name and normalizes its batch.
type Processor struct {
	registry    *registry.Registry
	log         *logger.Logger
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a processor over the given registry. A nil logger discards output.
func NewProcessor(reg *registry.Registry, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		registry:    reg,
		log:         log,
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Check resolves the client and validates its mapping against the batch schema.
func (p *Processor) Check(client string, b Batch) (registry.Entry, error) {
	entry, err := p.registry.Entry(client)
	if err != nil {
		return registry.Entry{}, err
	}

	if err := p.validator.Validate(entry.Mapping, b); err != nil {
		return registry.Entry{}, fmt.Errorf("client %s: %w", entry.Name, err)
	}

	return entry, nil
}

// Process normalizes one client's batch and logs a summary of the diagnostics.
func (p *Processor) Process(client string, b Batch) (*models.Result, error) {
	entry, err := p.Check(client, b)
	if err != nil {
		return nil, err
	}

	log := p.log.With("client", entry.Name)

	if excluded, reason := entry.Excluded(); excluded {
		log.Warn("client is excluded from modelling", "reason", reason)
	}

	result := p.transformer.Transform(entry.Mapping, b)
	d := result.Diagnostics

	log.Info("normalized batch",
		"incidents", len(result.Incidents),
		"factors", len(result.Factors),
		"actions", len(result.Actions),
		"rejected", d.RejectedRows,
		"orphanFactors", d.OrphanFactors,
		"unlinkedActions", d.UnlinkedActions,
	)

	if d.LinkageUnavailable {
		log.Warn("action linkage unavailable", "capabilities", entry.Capabilities().String())
	}

	for _, r := range d.Rejections {
		log.Debug("row rejected", "entity", r.Entity, "row", r.Row, "field", r.Field, "reason", string(r.Reason))
	}

	entities := make([]string, 0, len(d.Skipped))
	for entity := range d.Skipped {
		entities = append(entities, entity)
	}

	sort.Strings(entities)

	for _, entity := range entities {
		log.Warn("rows skipped, identity column unmapped", "entity", entity, "rows", d.Skipped[entity])
	}

	return result, nil
}
