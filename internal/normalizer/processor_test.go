package normalizer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetynorm/internal/logger"
	"safetynorm/internal/models"
	"safetynorm/internal/registry"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(registry.Builtin(), nil)
	require.NotNil(t, p)
}

func TestProcessor_Process(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Options{Output: &buf, Level: "debug"})
	p := NewProcessor(registry.Builtin(), log)

	b := geotecBatch(
		[]models.Row{incidentRow("1", "Yard"), incidentRow("", "Roof")},
		[]models.Row{factorRow("1", "1", "a")},
		[]models.Row{actionRow("1", "9")},
	)

	res, err := p.Process("geotec", b)
	require.NoError(t, err)
	assert.Len(t, res.Incidents, 1)
	assert.Equal(t, 1, res.Diagnostics.RejectedRows)

	out := buf.String()
	assert.Contains(t, out, "normalized batch")
	assert.Contains(t, out, "client=Geotec")
	assert.Contains(t, out, "row rejected")
	assert.NotContains(t, out, "excluded from modelling")
}

func TestProcessor_Process_WarnsForBorder(t *testing.T) {
	var buf bytes.Buffer

	p := NewProcessor(registry.Builtin(), logger.New(logger.Options{Output: &buf, Level: "warn"}))

	b := Batch{Actions: models.NewTable([]string{"A"}, models.Row{"A": "1"})}

	res, err := p.Process("Border", b)
	require.NoError(t, err)
	assert.True(t, res.LinkageUnavailable())

	out := buf.String()
	assert.Contains(t, out, "action linkage unavailable")
	assert.Contains(t, out, "client is excluded from modelling")
}

func TestProcessor_Process_Errors(t *testing.T) {
	p := NewProcessor(registry.Builtin(), nil)

	res, err := p.Process("Acme", Batch{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, registry.ErrUnknownClient)

	b := Batch{Incidents: models.NewTable([]string{"A"})}

	res, err = p.Process("Geotec", b)
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrMalformedMapping)
	assert.Contains(t, err.Error(), "client Geotec")
}

func TestProcessor_Check(t *testing.T) {
	p := NewProcessor(registry.Builtin(), nil)

	entry, err := p.Check("warak", Batch{})
	require.NoError(t, err)
	assert.Equal(t, "Warak", entry.Name)
	excluded, _ := entry.Excluded()
	assert.True(t, excluded)

	_, err = p.Check("Acme", Batch{})
	assert.ErrorIs(t, err, registry.ErrUnknownClient)

	_, err = p.Check("Geotec", Batch{Factors: models.NewTable([]string{"A"})})
	var mErr *MalformedMappingError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, models.EntityFactor, mErr.Entity)
}

func TestProcessor_Process_SkipWarningsSorted(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("Blank", registry.ClientFieldMapping{}))

	b := Batch{
		Incidents: models.NewTable(nil, models.Row{"A": "1"}),
		Factors:   models.NewTable(nil, models.Row{"A": "1"}),
		Actions:   models.NewTable(nil, models.Row{"A": "1"}),
	}

	for i := 0; i < 5; i++ {
		var buf bytes.Buffer

		p := NewProcessor(reg, logger.New(logger.Options{Output: &buf, Level: "warn"}))

		_, err := p.Process("Blank", b)
		require.NoError(t, err)

		out := buf.String()
		action := strings.Index(out, "entity=action")
		factor := strings.Index(out, "entity=factor")
		incident := strings.Index(out, "entity=incident")

		require.True(t, action >= 0 && factor >= 0 && incident >= 0, out)
		assert.True(t, action < factor && factor < incident, "skip warnings out of order:\n%s", out)
	}
}
