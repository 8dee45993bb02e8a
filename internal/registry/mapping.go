package registry

// Canonical field keys. The key set of each sub-mapping is fixed.
const (
	KeyID             = "id"
	KeyLocation       = "location"
	KeyDescription    = "description"
	KeyInjurySeverity = "injury_severity"
	KeyIncidentType   = "incident_type"
	KeyFactorLevel    = "factor_level"
	KeyFactorText     = "factor_text"
	KeyActionID       = "action_id"
)

// Key sets per sub-mapping, identity key first.
var (
	IncidentKeys = []string{KeyID, KeyLocation, KeyDescription, KeyInjurySeverity, KeyIncidentType}
	FactorKeys   = []string{KeyID, KeyFactorLevel, KeyFactorText}
	ActionKeys   = []string{KeyID, KeyActionID}
)

// FieldRef pairs a canonical key with its source column.
type FieldRef struct {
	Key    string
	Column ColumnRef
}

// IncidentMapping maps incident fields to source columns.
type IncidentMapping struct {
	ID             ColumnRef
	Location       ColumnRef
	Description    ColumnRef
	InjurySeverity ColumnRef
	IncidentType   ColumnRef
}

// Fields returns the mapping in canonical key order.
func (m IncidentMapping) Fields() []FieldRef {
	return []FieldRef{
		{KeyID, m.ID},
		{KeyLocation, m.Location},
		{KeyDescription, m.Description},
		{KeyInjurySeverity, m.InjurySeverity},
		{KeyIncidentType, m.IncidentType},
	}
}

// FactorMapping maps factor fields to source columns.
type FactorMapping struct {
	ID          ColumnRef
	FactorLevel ColumnRef
	FactorText  ColumnRef
}

// Fields returns the mapping in canonical key order.
func (m FactorMapping) Fields() []FieldRef {
	return []FieldRef{
		{KeyID, m.ID},
		{KeyFactorLevel, m.FactorLevel},
		{KeyFactorText, m.FactorText},
	}
}

// ActionMapping maps action fields to source columns.
type ActionMapping struct {
	ID       ColumnRef
	ActionID ColumnRef
}

// Fields returns the mapping in canonical key order.
func (m ActionMapping) Fields() []FieldRef {
	return []FieldRef{
		{KeyID, m.ID},
		{KeyActionID, m.ActionID},
	}
}

// ClientFieldMapping is the full column layout of one client.
type ClientFieldMapping struct {
	Incident IncidentMapping
	Factor   FactorMapping
	Action   ActionMapping
}

func complete(fields []FieldRef) bool {
	for _, f := range fields {
		if !f.Column.IsMapped() {
			return false
		}
	}

	return true
}
