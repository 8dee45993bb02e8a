package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidMappingDocument is returned for mapping files that break the fixed key schema.
var ErrInvalidMappingDocument = errors.New("invalid mapping document")

// Document is the YAML form of a set of client mappings.
//
//	version: "1"
//	clients:
//	  - name: Border
//	    incident_mapping: {id: A, location: C, description: H, injury_severity: K, incident_type: E}
//	    factor_mapping: {id: A, factor_level: D, factor_text: F}
//	    action_mapping: {id: ~, action_id: A}
//	    exclude_from_modelling: actions are not linked to incidents
//	    annotations:
//	      - {exclude_from_modelling: false, reason: linkage checked by hand}
//
// A null value marks a field as unmapped; "" maps it to a column with an empty label.
type Document struct {
	Version string           `yaml:"version"`
	Clients []ClientDocument `yaml:"clients"`
}

// ClientDocument is one client entry of a Document.
type ClientDocument struct {
	Incident             map[string]*string   `yaml:"incident_mapping"`
	Factor               map[string]*string   `yaml:"factor_mapping"`
	Action               map[string]*string   `yaml:"action_mapping"`
	Name                 string               `yaml:"name"`
	ExcludeFromModelling string               `yaml:"exclude_from_modelling,omitempty"`
	Notes                []string             `yaml:"notes,omitempty"`
	Annotations          []AnnotationDocument `yaml:"annotations,omitempty"`
}

// AnnotationDocument is the YAML form of an Annotation. Unlike the
// exclude_from_modelling shorthand it keeps the flag when the reason is empty.
type AnnotationDocument struct {
	Reason               string `yaml:"reason,omitempty"`
	ExcludeFromModelling bool   `yaml:"exclude_from_modelling"`
}

// LoadFile reads a mapping document and builds a registry from it.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a mapping document and builds a registry from it.
func Parse(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidMappingDocument)
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidMappingDocument, err)
	}

	return doc.Build()
}

// Build validates every client entry and registers it.
func (d *Document) Build() (*Registry, error) {
	if d.Version != "" && d.Version != "1" {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrInvalidMappingDocument, d.Version)
	}

	r := New()

	for i, c := range d.Clients {
		mapping, err := c.mapping()
		if err != nil {
			return nil, fmt.Errorf("clients[%d] %q: %w", i, c.Name, err)
		}

		if err := r.Register(c.Name, mapping); err != nil {
			return nil, fmt.Errorf("clients[%d]: %w", i, err)
		}

		if c.ExcludeFromModelling != "" {
			_ = r.Annotate(c.Name, Annotation{ExcludeFromModelling: true, Reason: c.ExcludeFromModelling})
		}

		for _, note := range c.Notes {
			_ = r.Annotate(c.Name, Annotation{Reason: note})
		}

		for _, a := range c.Annotations {
			_ = r.Annotate(c.Name, Annotation{ExcludeFromModelling: a.ExcludeFromModelling, Reason: a.Reason})
		}
	}

	return r, nil
}

func (c ClientDocument) mapping() (ClientFieldMapping, error) {
	incident, err := resolve("incident_mapping", c.Incident, IncidentKeys)
	if err != nil {
		return ClientFieldMapping{}, err
	}

	factor, err := resolve("factor_mapping", c.Factor, FactorKeys)
	if err != nil {
		return ClientFieldMapping{}, err
	}

	action, err := resolve("action_mapping", c.Action, ActionKeys)
	if err != nil {
		return ClientFieldMapping{}, err
	}

	return ClientFieldMapping{
		Incident: IncidentMapping{
			ID:             incident[KeyID],
			Location:       incident[KeyLocation],
			Description:    incident[KeyDescription],
			InjurySeverity: incident[KeyInjurySeverity],
			IncidentType:   incident[KeyIncidentType],
		},
		Factor: FactorMapping{
			ID:          factor[KeyID],
			FactorLevel: factor[KeyFactorLevel],
			FactorText:  factor[KeyFactorText],
		},
		Action: ActionMapping{
			ID:       action[KeyID],
			ActionID: action[KeyActionID],
		},
	}, nil
}

// resolve checks that raw has exactly the expected keys.
// Hyphenated keys ("injury-severity") are accepted as aliases.
func resolve(section string, raw map[string]*string, keys []string) (map[string]ColumnRef, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: %s is missing", ErrInvalidMappingDocument, section)
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	out := make(map[string]ColumnRef, len(keys))

	var extra []string

	for k, v := range raw {
		key := strings.ReplaceAll(strings.TrimSpace(k), "-", "_")
		if !want[key] {
			extra = append(extra, k)
			continue
		}

		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: %s.%s is declared twice", ErrInvalidMappingDocument, section, key)
		}

		if v == nil {
			out[key] = Unmapped
		} else {
			out[key] = Column(strings.TrimSpace(*v))
		}
	}

	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, fmt.Errorf("%w: %s has unknown keys %v", ErrInvalidMappingDocument, section, extra)
	}

	var missing []string

	for _, k := range keys {
		if _, ok := out[k]; !ok {
			missing = append(missing, k)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s is missing keys %v", ErrInvalidMappingDocument, section, missing)
	}

	return out, nil
}

// Export converts the registry back into its document form.
func (r *Registry) Export() *Document {
	doc := &Document{Version: "1"}

	for _, e := range r.Clients() {
		c := ClientDocument{
			Name:     e.Name,
			Incident: export(e.Mapping.Incident.Fields()),
			Factor:   export(e.Mapping.Factor.Fields()),
			Action:   export(e.Mapping.Action.Fields()),
		}

		for _, a := range e.Annotations {
			c.Annotations = append(c.Annotations, AnnotationDocument{
				Reason:               a.Reason,
				ExcludeFromModelling: a.ExcludeFromModelling,
			})
		}

		doc.Clients = append(doc.Clients, c)
	}

	return doc
}

func export(fields []FieldRef) map[string]*string {
	out := make(map[string]*string, len(fields))

	for _, f := range fields {
		if name, ok := f.Column.Name(); ok {
			out[f.Key] = &name
		} else {
			out[f.Key] = nil
		}
	}

	return out
}

// Marshal serializes a document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// WriteFile writes the registry as a mapping document.
func (r *Registry) WriteFile(path string) error {
	data, err := Marshal(r.Export())
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
