// Package registry holds the per-client column mappings and the capability
// assessment derived from them.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Registry errors.
var (
	ErrUnknownClient   = errors.New("unknown client")
	ErrDuplicateClient = errors.New("duplicate client")
	ErrEmptyClientName = errors.New("client name is required")
)

// Annotation is metadata about a client that never alters its mapping.
type Annotation struct {
	// ExcludeFromModelling marks a client the modelling stage should skip.
	ExcludeFromModelling bool
	Reason               string
}

// Entry is one registered client.
type Entry struct {
	Name        string
	Mapping     ClientFieldMapping
	Annotations []Annotation
}

// Capabilities assesses the entry's mapping.
func (e Entry) Capabilities() CapabilitySet {
	return AssessCapability(e.Mapping)
}

// Excluded reports whether any annotation excludes the client from modelling.
func (e Entry) Excluded() (bool, string) {
	for _, a := range e.Annotations {
		if a.ExcludeFromModelling {
			return true, a.Reason
		}
	}

	return false, ""
}

// Registry maps client names to their field mappings.
// Registration takes the write lock; lookups only read.
type Registry struct {
	entries map[string]*Entry
	mu      sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Register adds a client. Names are compared case-insensitively.
func (r *Registry) Register(name string, mapping ClientFieldMapping) error {
	key := foldName(name)
	if key == "" {
		return ErrEmptyClientName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %q conflicts with %q", ErrDuplicateClient, name, existing.Name)
	}

	r.entries[key] = &Entry{Name: strings.TrimSpace(name), Mapping: mapping}

	return nil
}

// MustRegister is Register that panics, for static definitions.
func (r *Registry) MustRegister(name string, mapping ClientFieldMapping) {
	if err := r.Register(name, mapping); err != nil {
		panic(err)
	}
}

// Annotate attaches metadata to a registered client.
func (r *Registry) Annotate(name string, a Annotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[foldName(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClient, name)
	}

	e.Annotations = append(e.Annotations, a)

	return nil
}

// Get returns the mapping registered for name.
func (r *Registry) Get(name string) (ClientFieldMapping, error) {
	e, err := r.Entry(name)
	if err != nil {
		return ClientFieldMapping{}, err
	}

	return e.Mapping, nil
}

// Entry returns a copy of the registered entry for name.
func (r *Registry) Entry(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[foldName(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownClient, name)
	}

	return copyEntry(e), nil
}

// Clients returns all entries sorted by name.
func (r *Registry) Clients() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, copyEntry(e))
	}

	sort.Slice(out, func(i, j int) bool {
		return foldName(out[i].Name) < foldName(out[j].Name)
	})

	return out
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Merge registers every entry of other, annotations included.
func (r *Registry) Merge(other *Registry) error {
	for _, e := range other.Clients() {
		if err := r.Register(e.Name, e.Mapping); err != nil {
			return err
		}

		for _, a := range e.Annotations {
			if err := r.Annotate(e.Name, a); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyEntry(e *Entry) Entry {
	out := *e
	if e.Annotations != nil {
		out.Annotations = append([]Annotation(nil), e.Annotations...)
	}

	return out
}
