package h5

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/hdf5"

	edep "github.com/lartpc/edep_go/pkg"
)

func sampleEvent(id int) edep.EventType {
	return edep.EventType{
		EventID: id,
		Trajectories: []edep.Trajectory{
			{TrackID: 0, ParentID: -1, PDG: 13, Momentum: fmom.NewPxPyPzE(0, 0, 300, 317.8)},
			{TrackID: 1, ParentID: 0, PDG: 11, Momentum: fmom.NewPxPyPzE(1, 0, 0, 1.1)},
		},
		Deposits: []edep.Deposit{
			{TrackID: 0, Energy: 2.0, Length: 10, Start: [4]float64{0, 0, 0, 0}, Stop: [4]float64{0, 0, 10, 1}},
			{TrackID: 1, Energy: 1.0, Length: 5, Start: [4]float64{0, 0, 10, 1}, Stop: [4]float64{5, 0, 10, 2}},
		},
		Vertices: []edep.Vertex{{
			PDG:          14,
			CrossSection: 1.5e-38,
			Reaction:     "nu:14;tgt:1000180400;N:2112;proc:Weak[CC],QES;",
			Position:     [4]float64{1, 2, 3, 4},
			Particles: []edep.VertexParticle{
				{TrackID: 0, PDG: 13, Momentum: fmom.NewPxPyPzE(0, 0, 300, 317.8)},
				{TrackID: -1, PDG: 1000180400, Momentum: fmom.NewPxPyPzE(0, 0, 0, 37000)},
			},
		}},
		Generator: edep.GeneratorInfo{NuPDG: 14, ENu: 2500},
	}
}

func writeSample(t *testing.T, filename string, events ...edep.EventType) {
	t.Helper()
	w, err := NewMCWriter(filename, 0)
	require.NoError(t, err)
	for i := range events {
		require.NoError(t, w.WriteEvent(&events[i]))
	}
	require.NoError(t, w.Close())
}

func TestReaderRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.h5")
	writeSample(t, filename, sampleEvent(3), sampleEvent(7))

	r, err := NewReader(filename, edep.Genie)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 2, r.NEntries())
	assert.Equal(t, []int{3, 7}, r.EventIDs())

	event, err := r.Jump(1)
	require.NoError(t, err)
	want := sampleEvent(7)
	assert.Equal(t, 7, event.EventID)
	require.Len(t, event.Trajectories, 2)
	assert.Equal(t, want.Trajectories[1].ParentID, event.Trajectories[1].ParentID)
	assert.InDelta(t, 317.8, event.Trajectories[0].Momentum.E(), 1e-9)
	assert.Equal(t, want.Deposits, event.Deposits)
	require.Len(t, event.Vertices, 1)
	assert.Equal(t, want.Vertices[0].Reaction, event.Vertices[0].Reaction)
	assert.Equal(t, want.Vertices[0].Position, event.Vertices[0].Position)
	require.Len(t, event.Vertices[0].Particles, 2)
	assert.Equal(t, -1, event.Vertices[0].Particles[1].TrackID)
	assert.Equal(t, 14, event.Generator.NuPDG)
	assert.InDelta(t, 2500, event.Generator.ENu, 1e-9)

	_, err = r.Jump(2)
	assert.Error(t, err)
}

func TestReaderNavigation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.h5")
	writeSample(t, filename, sampleEvent(0), sampleEvent(1), sampleEvent(2))

	r, err := NewReader(filename, edep.Genie)
	require.NoError(t, err)
	defer r.Close()

	nav := edep.NewNavigator(r)
	event, err := nav.Prev()
	require.NoError(t, err)
	assert.Equal(t, 2, event.EventID)
	event, err = nav.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, event.EventID)
}

func TestReaderGenieMismatch(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.h5")
	w, err := NewMCWriter(filename, 0)
	require.NoError(t, err)
	event := sampleEvent(0)
	require.NoError(t, w.WriteEvent(&event))
	require.NoError(t, writeEntryToTable(w.GenieTable, genieHDF5{event_id: 1, nu_pdg: 12}, w.EvtCounter))
	require.NoError(t, w.Close())

	_, err = NewReader(filename, edep.Genie)
	var mismatch *edep.StreamMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.Count1)
	assert.Equal(t, 2, mismatch.Count2)
}

func TestReaderMarleyMetadata(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "edep_anumu_30.5MeV_10evts.h5")
	writeSample(t, filename, sampleEvent(0))

	r, err := NewReader(filename, edep.Marley)
	require.NoError(t, err)
	defer r.Close()

	event, err := r.Jump(0)
	require.NoError(t, err)
	assert.Equal(t, -14, event.Generator.NuPDG)
	assert.InDelta(t, 30.5, event.Generator.ENu, 1e-12)
}

func TestReaderBadTrackIDs(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.h5")
	event := sampleEvent(0)
	event.Trajectories[1].TrackID = 5
	writeSample(t, filename, event)

	_, err := NewReader(filename, edep.Genie)
	var indexErr *edep.TrackIndexError
	require.True(t, errors.As(err, &indexErr))
	assert.Equal(t, 5, indexErr.Index)
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.h5"), edep.Genie)
	var openErr *edep.ErrOpenFile
	assert.True(t, errors.As(err, &openErr))
}

func TestWriterSummaries(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "summary.h5")
	tables := edep.DefaultLightTables()
	run := edep.NewRunInfo(12, edep.Genie, 42, "in.h5", tables)

	w, err := NewWriter(filename, run, 4)
	require.NoError(t, err)

	summarizer := edep.NewSummarizer(42, tables)
	event := sampleEvent(5)
	summary, err := summarizer.Summarize(&event)
	require.NoError(t, err)
	require.NoError(t, w.WriteSummary(&summary))
	skipped := edep.NewEventSummary(6, tables)
	skipped.Skipped = true
	require.NoError(t, w.WriteSummary(&skipped))
	require.NoError(t, w.Close())

	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	require.NoError(t, err)
	defer file.Close()

	events, err := readTable[summaryEventHDF5](file, "/Summary/events")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int32(5), events[0].event_id)
	assert.Equal(t, int32(1), events[1].skipped)

	names, err := readTable[columnNameHDF5](file, "/Summary/scalar_names")
	require.NoError(t, err)
	assert.Equal(t, "Event_ID", convertFromHdf5String(names[0].name[:]))

	info, err := readTable[runInfoHDF5](file, "/Run/runInfo")
	require.NoError(t, err)
	require.Len(t, info, 1)
	assert.Equal(t, run.RunID.String(), convertFromHdf5String(info[0].run_id[:]))
	assert.Equal(t, uint64(42), info[0].seed)

	points, err := readTable[operatingPointHDF5](file, "/Run/operating_points")
	require.NoError(t, err)
	assert.Len(t, points, len(tables[edep.BirksLaw])+len(tables[edep.ModifiedBox]))

	dset, err := file.OpenDataset("/Summary/lists")
	require.NoError(t, err)
	defer dset.Close()
	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	require.NoError(t, err)
	assert.Equal(t, uint(2), dims[0])
	assert.Equal(t, uint(edep.NumCategories), dims[2])
}
