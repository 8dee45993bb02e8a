package models

// Entity names used in diagnostics.
const (
	EntityIncident = "incident"
	EntityFactor   = "factor"
	EntityAction   = "action"
)

// Reason classifies why a raw row did not produce a canonical record.
type Reason string

// Rejection reasons.
const (
	ReasonMissingRequiredField Reason = "MissingRequiredField"
	ReasonDuplicateIncidentID  Reason = "DuplicateIncidentID"
)

// Rejection records one raw row excluded from an entity's output.
type Rejection struct {
	Entity string `json:"entity"`
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
}

// Diagnostics summarizes data-quality findings for one normalization run.
type Diagnostics struct {
	Rejections         []Rejection    `json:"rejections"`
	Skipped            map[string]int `json:"skipped,omitempty"`
	RejectedRows       int            `json:"rejectedRows"`
	OrphanFactors      int            `json:"orphanFactors"`
	UnlinkedActions    int            `json:"unlinkedActions"`
	LinkageUnavailable bool           `json:"linkageUnavailable"`
}

// Reject appends a rejection and bumps the counter.
func (d *Diagnostics) Reject(entity string, row int, field string, reason Reason) {
	d.Rejections = append(d.Rejections, Rejection{
		Entity: entity,
		Row:    row,
		Field:  field,
		Reason: reason,
	})
	d.RejectedRows++
}

// Skip records rows of an entity that could not be extracted at all.
func (d *Diagnostics) Skip(entity string, rows int) {
	if rows == 0 {
		return
	}

	if d.Skipped == nil {
		d.Skipped = make(map[string]int)
	}

	d.Skipped[entity] += rows
}

// CountReason returns how many rejections carry the given reason.
func (d *Diagnostics) CountReason(reason Reason) int {
	n := 0

	for _, r := range d.Rejections {
		if r.Reason == reason {
			n++
		}
	}

	return n
}

// Result is the canonical output of one normalization run.
type Result struct {
	Incidents    []Incident  `json:"incidents"`
	Factors      []Factor    `json:"factors"`
	Actions      []Action    `json:"actions"`
	Capabilities []string    `json:"capabilities"`
	Diagnostics  Diagnostics `json:"diagnostics"`
}

// LinkageUnavailable reports whether action-incident relations are unknown for this batch.
func (r *Result) LinkageUnavailable() bool {
	return r.Diagnostics.LinkageUnavailable
}
