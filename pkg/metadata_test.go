package edep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerator(t *testing.T) {
	for name, want := range map[string]Generator{"genie": Genie, "GENIE": Genie, "Marley": Marley} {
		got, err := ParseGenerator(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseGenerator("nuwro")
	assert.Error(t, err)
}

func TestMarleyInfoFromFileName(t *testing.T) {
	testCases := []struct {
		path string
		pdg  int
		enu  float64
	}{
		{"edep_nue_80.0MeV_1kevts.root", 12, 80},
		{"/data/marley/edep_anumu_30.5MeV_10evts.h5", -14, 30.5},
		{"run2_edep_numu_15MeV_1kevts.h5", 14, 15},
		{"edep_nux_10MeV_1kevts.h5", 12, 10},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			info, err := MarleyInfoFromFileName(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.pdg, info.NuPDG)
			assert.Equal(t, tc.enu, info.ENu)
		})
	}

	_, err := MarleyInfoFromFileName("events.h5")
	assert.Error(t, err)
	_, err = MarleyInfoFromFileName("edep_nue_hot_1kevts.h5")
	assert.Error(t, err)
}
