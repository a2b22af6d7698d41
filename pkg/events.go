package edep

import (
	"go-hep.org/x/hep/fmom"
)

const MM2CM = 0.1

type EventType struct {
	EventID      int
	Trajectories []Trajectory
	Deposits     []Deposit
	// Edep-sim stores one primary vertex per neutrino interaction.
	// More than one (or none) means the event is not usable
	Vertices  []Vertex
	Generator GeneratorInfo
}

type Trajectory struct {
	TrackID  int
	ParentID int
	PDG      int
	Momentum fmom.PxPyPzE
}

func (t *Trajectory) Mass() float64 {
	return t.Momentum.M()
}

func (t *Trajectory) KineticEnergy() float64 {
	return t.Momentum.E() - t.Momentum.M()
}

// Deposit is a single energy-loss segment. Only the first contributor
// is used to attribute it to a trajectory.
type Deposit struct {
	TrackID int
	Energy  float64 // MeV
	Length  float64 // mm
	Start   [4]float64
	Stop    [4]float64
}

// LengthCM returns the step length in cm.
func (d *Deposit) LengthCM() float64 {
	return d.Length * MM2CM
}

// Midpoint returns the (x, y, z, t) center of the segment in cm and ns.
func (d *Deposit) Midpoint() [4]float64 {
	var mid [4]float64
	for i := 0; i < 3; i++ {
		mid[i] = (d.Start[i] + d.Stop[i]) / 2 * MM2CM
	}
	mid[3] = (d.Start[3] + d.Stop[3]) / 2
	return mid
}

type Vertex struct {
	PDG          int
	CrossSection float64
	Reaction     string
	Position     [4]float64 // mm, ns
	Particles    []VertexParticle
}

type VertexParticle struct {
	// Negative track IDs are particles not tracked by Geant4
	// (e.g. the final nucleus before de-excitation in Marley events)
	TrackID  int
	PDG      int
	Momentum fmom.PxPyPzE
}

func (p *VertexParticle) Mass() float64 {
	return p.Momentum.M()
}

func (p *VertexParticle) KineticEnergy() float64 {
	return p.Momentum.E() - p.Momentum.M()
}

// GeneratorInfo carries the neutrino truth that is not part of the
// edep-sim vertex: from the GENIE pass-through tree or the Marley file name.
type GeneratorInfo struct {
	NuPDG int
	ENu   float64 // MeV
}
