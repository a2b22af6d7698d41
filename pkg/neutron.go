package edep

import (
	"gonum.org/v1/gonum/floats"
)

// Minimum deposit energy used for the direction estimate.
const NeutronDepositCut = 0.5 // MeV

// NeutronRoot returns the primary neutron of the event. It is only
// defined when exactly one root trajectory is a neutron.
func NeutronRoot(forest *Forest) (int, bool) {
	root, count := -1, 0
	for _, id := range forest.Roots() {
		if forest.Nodes[id].PDG == PDGNeutron {
			root = id
			count++
		}
	}
	if count != 1 {
		return -1, false
	}
	return root, true
}

// ReconstructedNeutronDirection estimates the neutron direction from the
// energy-weighted positions (relative to the vertex) of the deposits of
// the tracks it originated.
func ReconstructedNeutronDirection(event *EventType, forest *Forest, root int) ([]float64, bool) {
	var origin [3]float64
	if len(event.Vertices) == 1 {
		for i := 0; i < 3; i++ {
			origin[i] = event.Vertices[0].Position[i] * MM2CM
		}
	}

	direction := make([]float64, 3)
	for i := range forest.Nodes {
		node := &forest.Nodes[i]
		if node.Ancestor != root {
			continue
		}
		for _, di := range node.Deposits {
			if di < 0 || di >= len(event.Deposits) {
				continue
			}
			deposit := &event.Deposits[di]
			if deposit.Energy < NeutronDepositCut {
				continue
			}
			mid := deposit.Midpoint()
			for k := 0; k < 3; k++ {
				direction[k] -= (mid[k] - origin[k]) * deposit.Energy
			}
		}
	}
	norm := floats.Norm(direction, 2)
	if norm == 0 {
		return nil, false
	}
	floats.Scale(1/norm, direction)
	return direction, true
}

func TrueNeutronDirection(forest *Forest, root int) ([]float64, bool) {
	p4 := &forest.Nodes[root].Momentum
	direction := []float64{p4.Px(), p4.Py(), p4.Pz()}
	norm := floats.Norm(direction, 2)
	if norm == 0 {
		return nil, false
	}
	floats.Scale(1/norm, direction)
	return direction, true
}

// NeutronCosTheta returns the cosine between the reconstructed and the
// true direction of the primary neutron, false when either is undefined.
func NeutronCosTheta(event *EventType, forest *Forest) (float64, bool) {
	root, ok := NeutronRoot(forest)
	if !ok {
		return 0, false
	}
	reco, ok := ReconstructedNeutronDirection(event, forest, root)
	if !ok {
		return 0, false
	}
	truth, ok := TrueNeutronDirection(forest, root)
	if !ok {
		return 0, false
	}
	return floats.Dot(reco, truth), true
}
