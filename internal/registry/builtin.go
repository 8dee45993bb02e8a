package registry

// Known client names.
const (
	ClientGeotec = "Geotec"
	ClientBorder = "Border"
	ClientWarak  = "Warak"
)

// GeotecMapping links actions to incidents through column J.
var GeotecMapping = ClientFieldMapping{
	Incident: IncidentMapping{
		ID:             Column("A"),
		Location:       Column("C"),
		Description:    Column("G"),
		InjurySeverity: Column("S"),
		IncidentType:   Column("K"),
	},
	Factor: FactorMapping{
		ID:          Column("A"),
		FactorLevel: Column("B"),
		FactorText:  Column("C"),
	},
	Action: ActionMapping{
		ID:       Column("J"),
		ActionID: Column("A"),
	},
}

// BorderMapping has no action id column, so actions cannot be linked.
var BorderMapping = ClientFieldMapping{
	Incident: IncidentMapping{
		ID:             Column("A"),
		Location:       Column("C"),
		Description:    Column("H"),
		InjurySeverity: Column("K"),
		IncidentType:   Column("E"),
	},
	Factor: FactorMapping{
		ID:          Column("A"),
		FactorLevel: Column("D"),
		FactorText:  Column("F"),
	},
	Action: ActionMapping{
		ID:       Unmapped,
		ActionID: Column("A"),
	},
}

// WarakMapping is fully mapped.
var WarakMapping = ClientFieldMapping{
	Incident: IncidentMapping{
		ID:             Column("A"),
		Location:       Column("D"),
		Description:    Column("H"),
		InjurySeverity: Column("T"),
		IncidentType:   Column("L"),
	},
	Factor: FactorMapping{
		ID:          Column("A"),
		FactorLevel: Column("E"),
		FactorText:  Column("F"),
	},
	Action: ActionMapping{
		ID:       Column("H"),
		ActionID: Column("A"),
	},
}

// Builtin returns a registry holding the known clients.
func Builtin() *Registry {
	r := New()
	r.MustRegister(ClientGeotec, GeotecMapping)
	r.MustRegister(ClientBorder, BorderMapping)
	r.MustRegister(ClientWarak, WarakMapping)

	_ = r.Annotate(ClientBorder, Annotation{
		ExcludeFromModelling: true,
		Reason:               "actions are not linked to incidents",
	})
	_ = r.Annotate(ClientWarak, Annotation{
		ExcludeFromModelling: true,
		Reason:               "dataset insufficient for modelling",
	})

	return r
}
