package models

// Incident is one reported safety event.
type Incident struct {
	ID             string `json:"id"`
	Location       Field  `json:"location"`
	Description    Field  `json:"description"`
	InjurySeverity Field  `json:"injurySeverity"`
	IncidentType   Field  `json:"incidentType"`
	SourceRow      int    `json:"sourceRow"`
}

// Factor is a contributing factor observed for an incident.
// ID is the owning incident's identifier and is not unique across factors.
type Factor struct {
	ID        string `json:"id"`
	Level     Field  `json:"factorLevel"`
	Text      Field  `json:"factorText"`
	Orphan    bool   `json:"orphan"`
	SourceRow int    `json:"sourceRow"`
}

// Action is a corrective action.
// IncidentID is present only when the action was linked to a normalized incident.
type Action struct {
	ID         Field `json:"id"`
	ActionID   Field `json:"actionId"`
	IncidentID Field `json:"incidentId"`
	SourceRow  int   `json:"sourceRow"`
}

// Linked reports whether the action was associated with an incident.
func (a Action) Linked() bool {
	return !a.IncidentID.IsAbsent()
}
