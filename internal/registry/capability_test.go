package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnRef(t *testing.T) {
	assert.False(t, Unmapped.IsMapped())
	assert.False(t, ColumnRef{}.IsMapped())

	empty := Column("")
	assert.True(t, empty.IsMapped(), "a column with an empty label is still mapped")
	assert.NotEqual(t, Unmapped, empty)

	name, ok := Column("J").Name()
	assert.True(t, ok)
	assert.Equal(t, "J", name)
	assert.Equal(t, "-", Unmapped.String())
}

func TestAssessCapability(t *testing.T) {
	tests := []struct {
		name    string
		mapping ClientFieldMapping
		want    []Capability
	}{
		{
			name:    "Geotec fully mapped",
			mapping: GeotecMapping,
			want:    []Capability{IncidentsDerivable, FactorsDerivable, ActionsDerivable, ActionLinkageDerivable},
		},
		{
			name:    "Border without action id",
			mapping: BorderMapping,
			want:    []Capability{IncidentsDerivable, FactorsDerivable},
		},
		{
			name:    "Warak fully mapped",
			mapping: WarakMapping,
			want:    []Capability{IncidentsDerivable, FactorsDerivable, ActionsDerivable, ActionLinkageDerivable},
		},
		{
			name:    "nothing mapped",
			mapping: ClientFieldMapping{},
			want:    nil,
		},
		{
			name: "action id without action_id cannot link",
			mapping: func() ClientFieldMapping {
				m := GeotecMapping
				m.Action.ActionID = Unmapped
				return m
			}(),
			want: []Capability{IncidentsDerivable, FactorsDerivable},
		},
		{
			name: "one missing incident field",
			mapping: func() ClientFieldMapping {
				m := GeotecMapping
				m.Incident.Location = Unmapped
				return m
			}(),
			want: []Capability{FactorsDerivable, ActionsDerivable, ActionLinkageDerivable},
		},
		{
			name: "empty labels count as mapped",
			mapping: func() ClientFieldMapping {
				m := GeotecMapping
				m.Factor.FactorText = Column("")
				return m
			}(),
			want: []Capability{IncidentsDerivable, FactorsDerivable, ActionsDerivable, ActionLinkageDerivable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessCapability(tt.mapping)
			assert.Equal(t, tt.want, got.List())

			// Same presence pattern, same answer.
			assert.Equal(t, got, AssessCapability(tt.mapping))
		})
	}
}

func TestAssessCapability_DependsOnPresenceOnly(t *testing.T) {
	relabelled := ClientFieldMapping{
		Incident: IncidentMapping{Column("Z"), Column("Y"), Column("X"), Column("W"), Column("V")},
		Factor:   FactorMapping{Column("Z"), Column("U"), Column("T")},
		Action:   ActionMapping{Unmapped, Column("Z")},
	}

	assert.Equal(t, AssessCapability(BorderMapping), AssessCapability(relabelled))
}

func TestCapabilitySet(t *testing.T) {
	var s CapabilitySet
	assert.Empty(t, s.List())
	assert.Equal(t, "{}", s.String())

	s = s.With(ActionLinkageDerivable).With(IncidentsDerivable)
	assert.True(t, s.Has(IncidentsDerivable))
	assert.False(t, s.Has(FactorsDerivable))
	assert.Equal(t, []string{"IncidentsDerivable", "ActionLinkageDerivable"}, s.Names())
	assert.Len(t, AllCapabilities(), 4)
}
