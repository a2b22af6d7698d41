package edep

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

type Generator string

const (
	Genie  Generator = "Genie"
	Marley Generator = "Marley"
)

func ParseGenerator(name string) (Generator, error) {
	switch strings.ToLower(name) {
	case "genie":
		return Genie, nil
	case "marley":
		return Marley, nil
	default:
		return "", fmt.Errorf("unknown event generator: %q", name)
	}
}

var marleyFlavours = map[string]int{
	"nue":   12,
	"numu":  14,
	"anue":  -12,
	"anumu": -14,
}

// MarleyInfoFromFileName reads the neutrino flavour and energy of a
// Marley sample from its name, e.g. "edep_nue_80.0MeV_1kevts.root".
// Unknown flavours default to nue, Marley samples being mostly nue.
func MarleyInfoFromFileName(path string) (GeneratorInfo, error) {
	info := GeneratorInfo{NuPDG: 12}
	fields := strings.Split(filepath.Base(path), "_")
	if len(fields) < 3 {
		return info, fmt.Errorf("file name %q does not follow <prefix>_<flavour>_<E>MeV_<n>evts", path)
	}
	if pdg, ok := marleyFlavours[fields[len(fields)-3]]; ok {
		info.NuPDG = pdg
	}
	energy := strings.ReplaceAll(fields[len(fields)-2], "MeV", "")
	enu, err := strconv.ParseFloat(energy, 64)
	if err != nil {
		return info, fmt.Errorf("error parsing neutrino energy from %q: %w", path, err)
	}
	info.ENu = enu
	return info, nil
}
