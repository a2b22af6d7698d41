package rootio

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"

	edep "github.com/lartpc/edep_go/pkg"
)

// ReadH1D reads the 1D histogram name from a ROOT file.
func ReadH1D(filename, name string) (*hbook.H1D, error) {
	f, err := groot.Open(filename)
	if err != nil {
		return nil, &edep.ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	obj, err := f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("error reading %s from %s: %w", name, filename, err)
	}
	h, ok := obj.(rhist.H1)
	if !ok {
		return nil, fmt.Errorf("%s in %s is a %T, not a 1D histogram", name, filename, obj)
	}
	return rootcnv.H1D(h), nil
}

// LoadPCEDistribution reads a photon collection efficiency histogram.
func LoadPCEDistribution(filename, name string) (*edep.PCEDistribution, error) {
	h, err := ReadH1D(filename, name)
	if err != nil {
		return nil, err
	}
	return edep.NewPCEDistribution(h)
}
