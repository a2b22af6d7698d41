package edep

import (
	"go-hep.org/x/hep/hbook"
)

// Diagnostics accumulates per-run distributions of the deposits that
// pass the charge threshold of the detector.
type Diagnostics struct {
	// Deposits with a Birks charge at or below this value are not filled
	ChargeThreshold float64

	DEdx        *hbook.H1D
	Dx          *hbook.H1D
	TrackLength *hbook.H1D
	CosTheta    *hbook.H1D

	NeutronEvents int
}

func NewDiagnostics(chargeThreshold float64) *Diagnostics {
	d := &Diagnostics{
		ChargeThreshold: chargeThreshold,
		// edep length is below 0.5 cm for low energy events (5 mm step limit)
		DEdx:        hbook.NewH1D(500, 0, 30),
		Dx:          hbook.NewH1D(100, 0, 4),
		TrackLength: hbook.NewH1D(100, 0, 6),
		CosTheta:    hbook.NewH1D(100, -1, 1),
	}
	d.DEdx.Annotation()["name"] = "dE_dx"
	d.DEdx.Annotation()["title"] = "dE/dx [MeV/cm]"
	d.Dx.Annotation()["name"] = "single_edep_dx"
	d.Dx.Annotation()["title"] = "dx [cm]"
	d.TrackLength.Annotation()["name"] = "track_length"
	d.TrackLength.Annotation()["title"] = "track length [cm]"
	d.CosTheta.Annotation()["name"] = "neutron_cos_theta"
	d.CosTheta.Annotation()["title"] = "cos(reco, true neutron direction)"
	return d
}

func (d *Diagnostics) Fill(event *EventType, forest *Forest) {
	for i := range event.Deposits {
		deposit := &event.Deposits[i]
		length := deposit.LengthCM()
		charge, err := ChargeBirksLaw(deposit.Energy, length)
		if err != nil || charge <= d.ChargeThreshold {
			continue
		}
		d.DEdx.Fill(deposit.Energy/length, 1)
		d.Dx.Fill(length, 1)
	}
	for i := range forest.Nodes {
		d.TrackLength.Fill(forest.Nodes[i].Self.Length, 1)
	}

	cosTheta, ok := NeutronCosTheta(event, forest)
	if ok {
		d.NeutronEvents++
		d.CosTheta.Fill(cosTheta, 1)
	}
}

// Histograms returns the filled histograms keyed by their output name.
func (d *Diagnostics) Histograms() map[string]*hbook.H1D {
	return map[string]*hbook.H1D{
		"dE_dx":             d.DEdx,
		"single_edep_dx":    d.Dx,
		"track_length":      d.TrackLength,
		"neutron_cos_theta": d.CosTheta,
	}
}
