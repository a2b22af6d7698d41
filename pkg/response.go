package edep

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Liquid argon response constants at 500 V/cm.
const (
	// Ionization fraction of the deposited energy (excitation takes the rest)
	IonizationFraction = 0.83
	LArDensity         = 1.4 // g/cm3

	// PHYS. REV. D 99, 036009 (2019)
	BirksA  = 0.8
	BirksKQ = 0.0972 // g/(MeV cm2)

	// https://lar.bnl.gov/properties/pass.html
	BoxA = 0.930
	BoxB = 0.424 // g/(MeV cm2)

	// Mean energy per scintillation photon
	Wph = 19.5 // eV
)

type ChargeModel int

const (
	BirksLaw ChargeModel = iota
	ModifiedBox
	NumChargeModels
)

var ChargeModels = []ChargeModel{BirksLaw, ModifiedBox}

func (m ChargeModel) String() string {
	switch m {
	case BirksLaw:
		return "Birks"
	case ModifiedBox:
		return "MBox"
	default:
		return "Unknown"
	}
}

// Suffix is the tag used in the output column names.
func (m ChargeModel) Suffix() string {
	if m == ModifiedBox {
		return "_MBox"
	}
	return ""
}

func (m ChargeModel) Charge(energy, length float64) (float64, error) {
	switch m {
	case ModifiedBox:
		return ChargeModifiedBoxModel(energy, length)
	default:
		return ChargeBirksLaw(energy, length)
	}
}

type Threshold struct {
	Name  string
	Value float64 // MeV
}

const NumThresholds = 2

// A charge enters every threshold bucket it strictly exceeds.
var ChargeThresholds = [NumThresholds]Threshold{
	{Name: "th_75keV", Value: 0.075},
	{Name: "th_500keV", Value: 0.5},
}

// Index of the low threshold used for blips.
const DotsThreshold = 0

func checkChargeDomain(model string, energy, length float64) error {
	if length <= 0 || math.IsNaN(length) {
		return &DomainError{Model: model, Energy: energy, Length: length, Reason: "non-positive path length"}
	}
	if energy < 0 || math.IsNaN(energy) {
		return &DomainError{Model: model, Energy: energy, Length: length, Reason: "negative energy"}
	}
	return nil
}

// ChargeBirksLaw returns the collected charge (MeV equivalent) for a
// deposit of energy (MeV) over length (cm).
// R = dQ/dE = A / (1 + kQ dE/dx / rho)
func ChargeBirksLaw(energy, length float64) (float64, error) {
	if err := checkChargeDomain("Birks", energy, length); err != nil {
		return 0, err
	}
	dEdx := energy / length
	return IonizationFraction * energy * BirksA / (1 + BirksKQ*dEdx/LArDensity), nil
}

// ChargeModifiedBoxModel returns the collected charge (MeV equivalent).
// R = ln(A + B dE/dx / rho) / (B dE/dx / rho)
// Below dE/dx ~ 0.23 MeV/cm the logarithm is negative; the charge is clamped at 0.
func ChargeModifiedBoxModel(energy, length float64) (float64, error) {
	if err := checkChargeDomain("MBox", energy, length); err != nil {
		return 0, err
	}
	if energy == 0 {
		return 0, nil
	}
	xi := BoxB * energy / length / LArDensity
	charge := IonizationFraction * energy * math.Log(BoxA+xi) / xi
	if charge < 0 {
		return 0, nil
	}
	return charge, nil
}

// SampleLightDetection draws the detected photoelectrons for a mean of
// meanPE with a Poisson-like Normal(mean, sqrt(mean)).
func SampleLightDetection(meanPE float64, src rand.Source) (float64, error) {
	if meanPE < 0 || math.IsNaN(meanPE) {
		return 0, &DomainError{Model: "light", Energy: meanPE, Reason: "negative mean photoelectrons"}
	}
	if meanPE == 0 {
		return 0, nil
	}
	normal := distuv.Normal{Mu: meanPE, Sigma: math.Sqrt(meanPE), Src: src}
	return normal.Rand(), nil
}

// OperatingPoint is one photon collection efficiency setting of the
// photon detection system. When Distribution is set the efficiency is
// drawn from it for every deposit and PCE is ignored.
type OperatingPoint struct {
	Name         string
	PCE          float64
	Distribution *PCEDistribution
}

func (op OperatingPoint) efficiency(src rand.Source) float64 {
	if op.Distribution != nil {
		return op.Distribution.Sample(src)
	}
	return op.PCE
}

// Detect converts a light energy (MeV) into the detected light energy:
// the mean photoelectron count goes through the counting noise and is
// converted back with the same efficiency.
func (op OperatingPoint) Detect(lightEnergy float64, src rand.Source) (float64, error) {
	pce := op.efficiency(src)
	if pce <= 0 {
		return 0, &DomainError{Model: "light " + op.Name, Energy: lightEnergy, Reason: "non-positive collection efficiency"}
	}
	nPE := lightEnergy * 1e6 / Wph * pce
	detected, err := SampleLightDetection(nPE, src)
	if err != nil {
		return 0, err
	}
	return detected * Wph / 1e6 / pce, nil
}

// PCEFromYield converts a light yield in PE/MeV into a collection efficiency.
func PCEFromYield(pePerMeV float64) float64 {
	return pePerMeV * Wph / 1e6
}

type LightTables [NumChargeModels][]OperatingPoint

// DefaultLightTables returns the five legacy operating points of each
// charge model. The Birks points are defined by their efficiency
// (220/21622 ~ 1.0%, ...), the box model points by their yield in PE/MeV.
func DefaultLightTables() LightTables {
	var tables LightTables
	tables[BirksLaw] = []OperatingPoint{
		{Name: "220PEpMeV", PCE: 0.01},
		{Name: "180PEpMeV", PCE: 0.0083},
		{Name: "140PEpMeV", PCE: 0.0065},
		{Name: "100PEpMeV", PCE: 0.0046},
		{Name: "35PEpMeV", PCE: 0.0016},
	}
	tables[ModifiedBox] = []OperatingPoint{
		{Name: "220PEpMeV", PCE: PCEFromYield(220)},
		{Name: "180PEpMeV", PCE: PCEFromYield(180)},
		{Name: "140PEpMeV", PCE: PCEFromYield(140)},
		{Name: "100PEpMeV", PCE: PCEFromYield(100)},
		{Name: "35PEpMeV", PCE: PCEFromYield(35)},
	}
	return tables
}

// Response bundles what the forest needs to convert deposits.
type Response struct {
	Light LightTables
	Src   rand.Source
}
