package normalizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"safetynorm/internal/models"
	"safetynorm/internal/registry"
)

// Transformer applies a client mapping to raw rows.
type Transformer struct {
	form norm.Form
}

// NewTransformer creates a transformer that NFC-normalizes cell text.
func NewTransformer() *Transformer {
	return &Transformer{form: norm.NFC}
}

// Transform builds the canonical record sets. Incidents are finalized
// before factors are checked for orphans and before actions are linked.
func (t *Transformer) Transform(m registry.ClientFieldMapping, b Batch) *models.Result {
	caps := registry.AssessCapability(m)

	res := &models.Result{Capabilities: caps.Names()}
	diag := &res.Diagnostics

	res.Incidents = t.incidents(m.Incident, b.Incidents, diag)

	ids := make(map[string]struct{}, len(res.Incidents))
	for _, inc := range res.Incidents {
		ids[inc.ID] = struct{}{}
	}

	res.Factors = t.factors(m.Factor, b.Factors, ids, diag)
	res.Actions = t.actions(m.Action, caps.Has(registry.ActionLinkageDerivable), b.Actions, ids, diag)

	return res
}

func (t *Transformer) incidents(m registry.IncidentMapping, table models.Table, diag *models.Diagnostics) []models.Incident {
	rows := table.Rows
	out := make([]models.Incident, 0, len(rows))

	if !m.ID.IsMapped() {
		diag.Skip(models.EntityIncident, len(rows))
		return out
	}

	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		id, ok := t.identity(row, m.ID)
		if !ok {
			diag.Reject(models.EntityIncident, table.RowNumber(i), registry.KeyID, models.ReasonMissingRequiredField)
			continue
		}

		if _, dup := seen[id]; dup {
			diag.Reject(models.EntityIncident, table.RowNumber(i), registry.KeyID, models.ReasonDuplicateIncidentID)
			continue
		}

		seen[id] = struct{}{}

		out = append(out, models.Incident{
			ID:             id,
			Location:       t.cell(row, m.Location),
			Description:    t.cell(row, m.Description),
			InjurySeverity: t.cell(row, m.InjurySeverity),
			IncidentType:   t.cell(row, m.IncidentType),
			SourceRow:      table.RowNumber(i),
		})
	}

	return out
}

func (t *Transformer) factors(m registry.FactorMapping, table models.Table, incidents map[string]struct{}, diag *models.Diagnostics) []models.Factor {
	rows := table.Rows
	out := make([]models.Factor, 0, len(rows))

	if !m.ID.IsMapped() {
		diag.Skip(models.EntityFactor, len(rows))
		return out
	}

	for i, row := range rows {
		id, ok := t.identity(row, m.ID)
		if !ok {
			diag.Reject(models.EntityFactor, table.RowNumber(i), registry.KeyID, models.ReasonMissingRequiredField)
			continue
		}

		_, known := incidents[id]
		if !known {
			diag.OrphanFactors++
		}

		out = append(out, models.Factor{
			ID:        id,
			Level:     t.cell(row, m.FactorLevel),
			Text:      t.cell(row, m.FactorText),
			Orphan:    !known,
			SourceRow: table.RowNumber(i),
		})
	}

	return out
}

// actions keys rows by action id. Without an id column the rows are still
// enumerated by action_id, but none of them can be linked.
func (t *Transformer) actions(m registry.ActionMapping, linkage bool, table models.Table, incidents map[string]struct{}, diag *models.Diagnostics) []models.Action {
	rows := table.Rows
	out := make([]models.Action, 0, len(rows))

	diag.LinkageUnavailable = !linkage

	key, ref := registry.KeyID, m.ID
	if !ref.IsMapped() {
		key, ref = registry.KeyActionID, m.ActionID
	}

	if !ref.IsMapped() {
		diag.Skip(models.EntityAction, len(rows))
		return out
	}

	for i, row := range rows {
		if _, ok := t.identity(row, ref); !ok {
			diag.Reject(models.EntityAction, table.RowNumber(i), key, models.ReasonMissingRequiredField)
			continue
		}

		a := models.Action{
			ID:         t.cell(row, m.ID),
			ActionID:   t.cell(row, m.ActionID),
			IncidentID: models.Absent(),
			SourceRow:  table.RowNumber(i),
		}

		if linkage {
			if target, ok := a.ActionID.Get(); ok {
				if _, found := incidents[target]; found {
					a.IncidentID = models.Present(target)
				}
			}

			if !a.Linked() {
				diag.UnlinkedActions++
			}
		}

		out = append(out, a)
	}

	return out
}

// cell reads one mapped field. Unmapped fields and cells missing from the
// row are absent; an empty cell is present with an empty value.
func (t *Transformer) cell(row models.Row, ref registry.ColumnRef) models.Field {
	col, ok := ref.Name()
	if !ok {
		return models.Absent()
	}

	v, ok := row[col]
	if !ok {
		return models.Absent()
	}

	return models.Present(t.form.String(strings.TrimSpace(v)))
}

// identity reads a required key; blank values count as missing.
func (t *Transformer) identity(row models.Row, ref registry.ColumnRef) (string, bool) {
	v, ok := t.cell(row, ref).Get()
	if !ok || v == "" {
		return "", false
	}

	return v, true
}
