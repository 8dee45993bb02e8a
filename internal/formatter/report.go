package formatter

import (
	"fmt"
	"sort"
	"strings"

	"safetynorm/internal/models"
	"safetynorm/internal/registry"
)

func mark(ok bool) string {
	if ok {
		return "yes"
	}

	return "no"
}

// CapabilityMatrix renders one row per client with its capabilities and exclusion note.
func CapabilityMatrix(entries []registry.Entry) string {
	header := []string{"Client"}
	for _, c := range registry.AllCapabilities() {
		header = append(header, strings.TrimSuffix(c.String(), "Derivable"))
	}

	header = append(header, "Excluded")

	rows := make([][]string, 0, len(entries))

	for _, e := range entries {
		caps := e.Capabilities()
		row := []string{e.Name}

		for _, c := range registry.AllCapabilities() {
			row = append(row, mark(caps.Has(c)))
		}

		excluded := ""
		if ok, reason := e.Excluded(); ok {
			excluded = reason
		}

		rows = append(rows, append(row, excluded))
	}

	return RenderTable(header, rows)
}

// MappingTable renders a client's mapping as canonical key -> source column.
func MappingTable(m registry.ClientFieldMapping) string {
	var rows [][]string

	add := func(entity string, fields []registry.FieldRef) {
		for _, f := range fields {
			col := "(unmapped)"
			if name, ok := f.Column.Name(); ok {
				col = name
			}

			rows = append(rows, []string{entity, f.Key, col})
		}
	}

	add(models.EntityIncident, m.Incident.Fields())
	add(models.EntityFactor, m.Factor.Fields())
	add(models.EntityAction, m.Action.Fields())

	return RenderTable([]string{"Entity", "Field", "Column"}, rows)
}

// ReportOptions controls ResultReport.
type ReportOptions struct {
	ShowRejections bool
	// MaxRejections caps the listed rejections; 0 lists all.
	MaxRejections int
}

// ResultReport summarizes one normalization result.
func ResultReport(client string, res *models.Result, opts ReportOptions) string {
	d := res.Diagnostics

	var sb strings.Builder

	fmt.Fprintf(&sb, "Client: %s\n", client)
	fmt.Fprintf(&sb, "Capabilities: %s\n\n", strings.Join(res.Capabilities, ", "))

	linkage := "available"
	if d.LinkageUnavailable {
		linkage = "UNAVAILABLE"
	}

	summary := [][]string{
		{"Incidents", fmt.Sprint(len(res.Incidents))},
		{"Factors", fmt.Sprint(len(res.Factors))},
		{"Actions", fmt.Sprint(len(res.Actions))},
		{"Rejected rows", fmt.Sprint(d.RejectedRows)},
		{"Orphan factors", fmt.Sprint(d.OrphanFactors)},
		{"Unlinked actions", fmt.Sprint(d.UnlinkedActions)},
		{"Action linkage", linkage},
	}

	entities := make([]string, 0, len(d.Skipped))
	for e := range d.Skipped {
		entities = append(entities, e)
	}

	sort.Strings(entities)

	for _, e := range entities {
		summary = append(summary, []string{"Skipped " + e + " rows", fmt.Sprint(d.Skipped[e])})
	}

	sb.WriteString(RenderTable([]string{"Metric", "Value"}, summary))

	if opts.ShowRejections && len(d.Rejections) > 0 {
		rejections := d.Rejections
		if opts.MaxRejections > 0 && len(rejections) > opts.MaxRejections {
			rejections = rejections[:opts.MaxRejections]
		}

		rows := make([][]string, 0, len(rejections))
		for _, r := range rejections {
			rows = append(rows, []string{r.Entity, fmt.Sprint(r.Row), r.Field, string(r.Reason)})
		}

		sb.WriteString("\n")
		sb.WriteString(RenderTable([]string{"Entity", "Row", "Field", "Reason"}, rows))

		if hidden := len(d.Rejections) - len(rejections); hidden > 0 {
			fmt.Fprintf(&sb, "... %d more\n", hidden)
		}
	}

	return sb.String()
}
