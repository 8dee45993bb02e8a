package registry

import "strings"

// Capability is a canonical relation derivable from a client's mapping.
type Capability uint8

// Capabilities, in report order.
const (
	IncidentsDerivable Capability = 1 << iota
	FactorsDerivable
	ActionsDerivable
	ActionLinkageDerivable
)

var allCapabilities = []Capability{
	IncidentsDerivable,
	FactorsDerivable,
	ActionsDerivable,
	ActionLinkageDerivable,
}

// AllCapabilities returns every capability in report order.
func AllCapabilities() []Capability {
	out := make([]Capability, len(allCapabilities))
	copy(out, allCapabilities)

	return out
}

func (c Capability) String() string {
	switch c {
	case IncidentsDerivable:
		return "IncidentsDerivable"
	case FactorsDerivable:
		return "FactorsDerivable"
	case ActionsDerivable:
		return "ActionsDerivable"
	case ActionLinkageDerivable:
		return "ActionLinkageDerivable"
	default:
		return "Unknown"
	}
}

// CapabilitySet is a set of capabilities.
type CapabilitySet uint8

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

// With returns the set plus c.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	return s | CapabilitySet(c)
}

// List returns the members in report order.
func (s CapabilitySet) List() []Capability {
	var out []Capability

	for _, c := range allCapabilities {
		if s.Has(c) {
			out = append(out, c)
		}
	}

	return out
}

// Names returns the member names in report order.
func (s CapabilitySet) Names() []string {
	list := s.List()
	names := make([]string, 0, len(list))

	for _, c := range list {
		names = append(names, c.String())
	}

	return names
}

func (s CapabilitySet) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

// AssessCapability reports which canonical relations the mapping can derive.
// It looks only at which fields are mapped, never at row data.
func AssessCapability(m ClientFieldMapping) CapabilitySet {
	var set CapabilitySet

	if complete(m.Incident.Fields()) {
		set = set.With(IncidentsDerivable)
	}

	if complete(m.Factor.Fields()) {
		set = set.With(FactorsDerivable)
	}

	if complete(m.Action.Fields()) {
		set = set.With(ActionsDerivable)
	}

	// Linkage hinges on action.id, but action_id carries the incident
	// reference, so without it nothing could ever link.
	if m.Action.ID.IsMapped() && m.Action.ActionID.IsMapped() {
		set = set.With(ActionLinkageDerivable)
	}

	return set
}
