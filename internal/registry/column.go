package registry

import "fmt"

// ColumnRef identifies the source column a canonical field is read from.
// The zero value is Unmapped; Column("") is a column with an empty label.
type ColumnRef struct {
	name   string
	mapped bool
}

// Unmapped is the explicit "no column" state.
var Unmapped = ColumnRef{}

// Column returns a reference to the named source column.
func Column(name string) ColumnRef {
	return ColumnRef{name: name, mapped: true}
}

// IsMapped reports whether a source column is assigned.
func (c ColumnRef) IsMapped() bool {
	return c.mapped
}

// Name returns the column identifier and whether one is mapped.
func (c ColumnRef) Name() (string, bool) {
	return c.name, c.mapped
}

// String renders unmapped references as "-".
func (c ColumnRef) String() string {
	if !c.mapped {
		return "-"
	}

	return fmt.Sprintf("%q", c.name)
}
