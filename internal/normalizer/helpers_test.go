package normalizer

import "safetynorm/internal/models"

var (
	geotecIncidentCols = []string{"A", "C", "G", "K", "S"}
	geotecFactorCols   = []string{"A", "B", "C"}
	geotecActionCols   = []string{"A", "J"}
)

func incidentRow(id, location string) models.Row {
	return models.Row{"A": id, "C": location, "G": "slip on wet floor", "K": "near miss", "S": "minor"}
}

func factorRow(id, level, text string) models.Row {
	return models.Row{"A": id, "B": level, "C": text}
}

func actionRow(actionID, id string) models.Row {
	return models.Row{"A": actionID, "J": id}
}

func geotecBatch(incidents, factors, actions []models.Row) Batch {
	return Batch{
		Incidents: models.NewTable(geotecIncidentCols, incidents...),
		Factors:   models.NewTable(geotecFactorCols, factors...),
		Actions:   models.NewTable(geotecActionCols, actions...),
	}
}
