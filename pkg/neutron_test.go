package edep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"
)

// neutronEvent has a primary neutron flying along +z which knocks out a
// proton. Deposits are placed at the given z positions (mm).
func neutronEvent(zs ...float64) EventType {
	event := EventType{
		Trajectories: []Trajectory{
			{TrackID: 0, ParentID: -1, PDG: PDGNeutron, Momentum: fmom.NewPxPyPzE(0, 0, 50, 941)},
			{TrackID: 1, ParentID: 0, PDG: PDGProton, Momentum: fmom.NewPxPyPzE(0, 0, 100, 944)},
		},
		Vertices: []Vertex{{Position: [4]float64{0, 0, 100, 0}}},
	}
	for _, z := range zs {
		event.Deposits = append(event.Deposits, Deposit{
			TrackID: 1,
			Energy:  2,
			Length:  1,
			Start:   [4]float64{0, 0, z - 0.5, 0},
			Stop:    [4]float64{0, 0, z + 0.5, 0},
		})
	}
	return event
}

func buildEventForest(t *testing.T, event *EventType) *Forest {
	t.Helper()
	forest, err := NewSummarizer(1, DefaultLightTables()).BuildForest(event)
	require.NoError(t, err)
	return forest
}

func TestNeutronRoot(t *testing.T) {
	event := neutronEvent(0)
	forest := buildEventForest(t, &event)
	root, ok := NeutronRoot(forest)
	require.True(t, ok)
	assert.Equal(t, 0, root)

	// two primary neutrons: undefined
	event.Trajectories = append(event.Trajectories,
		Trajectory{TrackID: 2, ParentID: -1, PDG: PDGNeutron, Momentum: fmom.NewPxPyPzE(1, 0, 0, 940)})
	forest = buildEventForest(t, &event)
	_, ok = NeutronRoot(forest)
	assert.False(t, ok)
}

func TestNeutronDirections(t *testing.T) {
	// deposits upstream of the vertex
	event := neutronEvent(0, 20)
	forest := buildEventForest(t, &event)

	reco, ok := ReconstructedNeutronDirection(&event, forest, 0)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, reco, 1e-12)

	truth, ok := TrueNeutronDirection(forest, 0)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, truth, 1e-12)

	cosTheta, ok := NeutronCosTheta(&event, forest)
	require.True(t, ok)
	assert.InDelta(t, 1.0, cosTheta, 1e-12)
}

func TestNeutronDirectionIgnoresSmallDeposits(t *testing.T) {
	event := neutronEvent(0)
	event.Deposits[0].Energy = NeutronDepositCut / 2
	forest := buildEventForest(t, &event)

	_, ok := ReconstructedNeutronDirection(&event, forest, 0)
	assert.False(t, ok)
	_, ok = NeutronCosTheta(&event, forest)
	assert.False(t, ok)
}
