package edep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsFill(t *testing.T) {
	event := neutronEvent(0, 20)
	forest := buildEventForest(t, &event)

	d := NewDiagnostics(0.1)
	d.Fill(&event, forest)

	assert.Equal(t, int64(2), d.DEdx.Entries())
	assert.Equal(t, int64(2), d.Dx.Entries())
	// 2 MeV over 0.1 cm
	assert.InDelta(t, 20.0, d.DEdx.XMean(), 1e-9)
	assert.Equal(t, int64(2), d.TrackLength.Entries())
	assert.Equal(t, 1, d.NeutronEvents)
	assert.Equal(t, int64(1), d.CosTheta.Entries())
}

func TestDiagnosticsChargeThreshold(t *testing.T) {
	event := neutronEvent(0)
	forest := buildEventForest(t, &event)

	d := NewDiagnostics(10)
	d.Fill(&event, forest)
	assert.Equal(t, int64(0), d.DEdx.Entries())
	assert.Equal(t, int64(2), d.TrackLength.Entries())
}

func TestDiagnosticsHistograms(t *testing.T) {
	d := NewDiagnostics(0)
	histograms := d.Histograms()
	require.Len(t, histograms, 4)
	for name, h := range histograms {
		assert.Equal(t, name, h.Name())
	}
}
