package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	r := Builtin()

	m, err := r.Get(ClientGeotec)
	require.NoError(t, err)
	assert.Equal(t, GeotecMapping, m)

	// Names are case-insensitive.
	m, err = r.Get("border")
	require.NoError(t, err)
	assert.Equal(t, BorderMapping, m)
}

func TestRegistry_Get_UnknownClient(t *testing.T) {
	r := Builtin()

	_, err := r.Get("Acme")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownClient)
	assert.Contains(t, err.Error(), "Acme")
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Geotec", GeotecMapping))

	err := r.Register("GEOTEC", WarakMapping)
	require.ErrorIs(t, err, ErrDuplicateClient)

	// The original registration is untouched.
	m, err := r.Get("geotec")
	require.NoError(t, err)
	assert.Equal(t, GeotecMapping, m)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Register_EmptyName(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.Register("  ", GeotecMapping), ErrEmptyClientName)
}

func TestRegistry_Annotate(t *testing.T) {
	r := Builtin()

	e, err := r.Entry(ClientWarak)
	require.NoError(t, err)

	excluded, reason := e.Excluded()
	assert.True(t, excluded)
	assert.Equal(t, "dataset insufficient for modelling", reason)

	// Exclusion never changes mapping values or capabilities.
	assert.Equal(t, WarakMapping, e.Mapping)
	assert.Equal(t, AssessCapability(WarakMapping), e.Capabilities())

	e, err = r.Entry(ClientGeotec)
	require.NoError(t, err)

	excluded, _ = e.Excluded()
	assert.False(t, excluded)

	assert.ErrorIs(t, r.Annotate("nobody", Annotation{Reason: "x"}), ErrUnknownClient)
}

func TestRegistry_Entry_ReturnsCopy(t *testing.T) {
	r := Builtin()

	e, err := r.Entry(ClientBorder)
	require.NoError(t, err)

	e.Annotations[0].Reason = "changed"

	again, err := r.Entry(ClientBorder)
	require.NoError(t, err)
	assert.Equal(t, "actions are not linked to incidents", again.Annotations[0].Reason)
}

func TestRegistry_Clients_Sorted(t *testing.T) {
	r := Builtin()

	var names []string
	for _, e := range r.Clients() {
		names = append(names, e.Name)
	}

	assert.Equal(t, []string{"Border", "Geotec", "Warak"}, names)
}

func TestRegistry_Merge(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Acme", GeotecMapping))
	require.NoError(t, r.Merge(Builtin()))
	assert.Equal(t, 4, r.Len())

	e, err := r.Entry(ClientWarak)
	require.NoError(t, err)
	assert.Len(t, e.Annotations, 1)

	assert.ErrorIs(t, r.Merge(Builtin()), ErrDuplicateClient)
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := Builtin()

	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				name := []string{ClientGeotec, ClientBorder, ClientWarak}[(i+j)%3]
				if _, err := r.Get(name); err != nil {
					t.Errorf("Get(%s): %v", name, err)
					return
				}
			}
		}(i)
	}

	wg.Wait()
}

func ExampleAssessCapability() {
	fmt.Println(AssessCapability(GeotecMapping))
	fmt.Println(AssessCapability(BorderMapping))
	// Output:
	// {IncidentsDerivable, FactorsDerivable, ActionsDerivable, ActionLinkageDerivable}
	// {IncidentsDerivable, FactorsDerivable}
}
