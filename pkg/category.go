package edep

type Category int

// The order is the slot order of every category vector in the output.
const (
	Lepton Category = iota
	Proton
	Neutron
	ChargedPion
	NeutralPion
	Gamma
	Alpha
	Other
	NumCategories
)

var categoryNames = [NumCategories]string{
	"lepton",
	"proton",
	"neutron",
	"charged-pion",
	"neutral-pion",
	"gamma",
	"alpha",
	"other",
}

func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

const (
	PDGElectron = 11
	PDGMuon     = 13
	PDGPion     = 211
	PDGPi0      = 111
	PDGGamma    = 22
	PDGProton   = 2212
	PDGNeutron  = 2112
	PDGAlpha    = 1000020040
)

func Classify(pdg int) Category {
	switch pdg {
	case PDGElectron, -PDGElectron, PDGMuon, -PDGMuon:
		return Lepton
	case PDGProton:
		return Proton
	case PDGNeutron:
		return Neutron
	case PDGPion, -PDGPion:
		return ChargedPion
	case PDGPi0:
		return NeutralPion
	case PDGGamma:
		return Gamma
	case PDGAlpha:
		return Alpha
	default:
		return Other
	}
}

// CountsRestMass tells whether the rest mass is part of the available
// energy of the category. Nucleons, nuclei and others only count their KE.
func (c Category) CountsRestMass() bool {
	switch c {
	case Lepton, ChargedPion, NeutralPion, Gamma:
		return true
	default:
		return false
	}
}

// AvailableEnergy is the contribution of a vertex particle to E_avail.
func AvailableEnergy(c Category, kineticEnergy, mass float64) float64 {
	if c.CountsRestMass() {
		return kineticEnergy + mass
	}
	return kineticEnergy
}

type CategoryVector [NumCategories]float64

func (v CategoryVector) Sum() float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total
}
