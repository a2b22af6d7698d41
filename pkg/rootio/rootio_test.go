package rootio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rbase"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook"

	edep "github.com/lartpc/edep_go/pkg"
)

func TestWriterTree(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "summary.root")
	tables := edep.DefaultLightTables()
	run := edep.NewRunInfo(3, edep.Marley, 7, "edep_nue_10.0MeV_5evts.root", tables)

	w, err := NewWriter(filename, run)
	require.NoError(t, err)

	summary := edep.NewEventSummary(11, tables)
	summary.ENu = 10
	summary.EDepo.Total = 4
	summary.EDepo.List[edep.Lepton] = 3
	summary.EDepo.List[edep.Proton] = 1
	require.NoError(t, w.WriteSummary(&summary))

	skipped := edep.NewEventSummary(12, tables)
	skipped.Skipped = true
	require.NoError(t, w.WriteSummary(&skipped))

	h := hbook.NewH1D(10, 0, 1)
	h.Fill(0.5, 2)
	require.NoError(t, w.WriteHistograms(map[string]*hbook.H1D{"track_length": h}))
	require.NoError(t, w.Close())
	assert.Equal(t, 2, w.EvtCounter)

	f, err := groot.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	obj, err := f.Get("run_id")
	require.NoError(t, err)
	assert.Equal(t, run.RunID.String(), obj.(*rbase.ObjString).String())

	obj, err = f.Get(TreeName)
	require.NoError(t, err)
	tree := obj.(rtree.Tree)
	assert.Equal(t, int64(2), tree.Entries())

	var (
		eventID float64
		eDepo   [edep.NumCategories]float64
		skip    bool
	)
	r, err := rtree.NewReader(tree, []rtree.ReadVar{
		{Name: "Event_ID", Value: &eventID},
		{Name: "E_depoList", Value: &eDepo},
		{Name: "skipped", Value: &skip},
	})
	require.NoError(t, err)
	defer r.Close()

	var ids []float64
	var skips []bool
	err = r.Read(func(ctx rtree.RCtx) error {
		ids = append(ids, eventID)
		skips = append(skips, skip)
		if ctx.Entry == 0 {
			assert.Equal(t, 3.0, eDepo[edep.Lepton])
			assert.Equal(t, 1.0, eDepo[edep.Proton])
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 12}, ids)
	assert.Equal(t, []bool{false, true}, skips)

	hist, err := ReadH1D(filename, "track_length")
	require.NoError(t, err)
	assert.Equal(t, 2.0, hist.SumW())
}

func TestLoadPCEDistribution(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "pce.root")
	h := hbook.NewH1D(2, 0.01, 0.03)
	h.Fill(0.015, 1)
	h.Fill(0.025, 3)

	f, err := groot.Create(filename)
	require.NoError(t, err)
	require.NoError(t, f.Put("pce", rhist.NewH1DFrom(h)))
	require.NoError(t, f.Close())

	d, err := LoadPCEDistribution(filename, "pce")
	require.NoError(t, err)
	// (1*0.015 + 3*0.025) / 4
	assert.InDelta(t, 0.0225, d.Mean(), 1e-12)

	_, err = LoadPCEDistribution(filename, "missing")
	assert.Error(t, err)
	_, err = LoadPCEDistribution(filepath.Join(t.TempDir(), "none.root"), "pce")
	assert.Error(t, err)
}
