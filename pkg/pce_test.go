package edep

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

func TestNewPCEDistributionErrors(t *testing.T) {
	_, err := NewPCEDistribution(nil)
	assert.Error(t, err)

	_, err = NewPCEDistribution(hbook.NewH1D(10, 0, 0.05))
	assert.ErrorContains(t, err, "no entries")

	negative := hbook.NewH1D(10, -0.01, 0.04)
	negative.Fill(0.02, 1)
	_, err = NewPCEDistribution(negative)
	assert.ErrorContains(t, err, "negative")
}

func TestPCEDistributionSample(t *testing.T) {
	h := hbook.NewH1D(10, 0, 0.05)
	h.Fill(0.0225, 1)
	d, err := NewPCEDistribution(h)
	require.NoError(t, err)
	assert.InDelta(t, 0.0225, d.Mean(), 1e-12)

	src := rand.NewPCG(1, 2)
	for i := 0; i < 100; i++ {
		pce := d.Sample(src)
		assert.GreaterOrEqual(t, pce, 0.02-1e-12)
		assert.LessOrEqual(t, pce, 0.025+1e-12)
	}
}

func TestLightTablesWithDistribution(t *testing.T) {
	h := hbook.NewH1D(10, 0, 0.05)
	h.Fill(0.0225, 1)
	d, err := NewPCEDistribution(h)
	require.NoError(t, err)

	defaults := DefaultLightTables()
	tables := defaults.WithDistribution(d)
	for m := range tables {
		require.Len(t, tables[m], len(defaults[m]))
		for k := range tables[m] {
			assert.Same(t, d, tables[m][k].Distribution)
			assert.Equal(t, defaults[m][k].Name, tables[m][k].Name)
			assert.Nil(t, defaults[m][k].Distribution)
		}
	}

	detected, err := tables[BirksLaw][0].Detect(1, rand.NewPCG(3, 4))
	require.NoError(t, err)
	assert.Greater(t, detected, 0.0)
}
