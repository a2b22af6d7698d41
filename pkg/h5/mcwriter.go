package h5

import (
	"errors"
	"fmt"

	"gonum.org/v1/hdf5"

	edep "github.com/lartpc/edep_go/pkg"
)

// MCWriter writes events in the layout read by Reader. It is used to
// export filtered or hand-made samples.
type MCWriter struct {
	File                  *hdf5.File
	Filename              string
	MCGroup               *hdf5.Group
	GeneratorGroup        *hdf5.Group
	EventTable            *hdf5.Dataset
	TrajectoryTable       *hdf5.Dataset
	DepositTable          *hdf5.Dataset
	VertexTable           *hdf5.Dataset
	VertexParticleTable   *hdf5.Dataset
	GenieTable            *hdf5.Dataset
	EvtCounter            int
	trajectoryCounter     int
	depositCounter        int
	vertexCounter         int
	vertexParticleCounter int
}

func NewMCWriter(filename string, compression int) (*MCWriter, error) {
	var err error
	w := &MCWriter{Filename: filename}
	if w.File, err = createFile(filename); err != nil {
		return nil, err
	}
	if w.MCGroup, err = createGroup(w.File, "MC"); err != nil {
		return nil, errors.Join(err, w.Close())
	}
	if w.GeneratorGroup, err = createGroup(w.File, "Generator"); err != nil {
		return nil, errors.Join(err, w.Close())
	}

	tables := []struct {
		dset     **hdf5.Dataset
		group    *hdf5.Group
		name     string
		datatype interface{}
	}{
		{&w.EventTable, w.MCGroup, "events", eventHDF5{}},
		{&w.TrajectoryTable, w.MCGroup, "trajectories", trajectoryHDF5{}},
		{&w.DepositTable, w.MCGroup, "deposits", depositHDF5{}},
		{&w.VertexTable, w.MCGroup, "vertices", vertexHDF5{}},
		{&w.VertexParticleTable, w.MCGroup, "vertex_particles", vertexParticleHDF5{}},
		{&w.GenieTable, w.GeneratorGroup, "genie", genieHDF5{}},
	}
	for _, table := range tables {
		if *table.dset, err = createTable(table.group, table.name, table.datatype, compression); err != nil {
			return nil, errors.Join(err, w.Close())
		}
	}
	return w, nil
}

func (w *MCWriter) WriteEvent(event *edep.EventType) error {
	id := int32(event.EventID)
	if err := writeEntryToTable(w.EventTable, eventHDF5{event_id: id}, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing event %d: %w", event.EventID, err)
	}

	trajectories := make([]trajectoryHDF5, len(event.Trajectories))
	for i, t := range event.Trajectories {
		trajectories[i] = trajectoryHDF5{
			event_id:  id,
			track_id:  int32(t.TrackID),
			parent_id: int32(t.ParentID),
			pdg:       int32(t.PDG),
			px:        t.Momentum.Px(),
			py:        t.Momentum.Py(),
			pz:        t.Momentum.Pz(),
			e:         t.Momentum.E(),
		}
	}
	if err := writeArrayToTable(w.TrajectoryTable, &trajectories, w.trajectoryCounter); err != nil {
		return fmt.Errorf("error writing trajectories of event %d: %w", event.EventID, err)
	}
	w.trajectoryCounter += len(trajectories)

	deposits := make([]depositHDF5, len(event.Deposits))
	for i, d := range event.Deposits {
		deposits[i] = depositHDF5{
			event_id: id,
			track_id: int32(d.TrackID),
			energy:   d.Energy,
			length:   d.Length,
			start_x:  d.Start[0],
			start_y:  d.Start[1],
			start_z:  d.Start[2],
			start_t:  d.Start[3],
			stop_x:   d.Stop[0],
			stop_y:   d.Stop[1],
			stop_z:   d.Stop[2],
			stop_t:   d.Stop[3],
		}
	}
	if err := writeArrayToTable(w.DepositTable, &deposits, w.depositCounter); err != nil {
		return fmt.Errorf("error writing deposits of event %d: %w", event.EventID, err)
	}
	w.depositCounter += len(deposits)

	vertices := make([]vertexHDF5, len(event.Vertices))
	particles := make([]vertexParticleHDF5, 0)
	for i, v := range event.Vertices {
		var reaction [REACTIONLEN]byte
		copy(reaction[:], v.Reaction)
		vertices[i] = vertexHDF5{
			event_id:      id,
			vertex_id:     int32(i),
			pdg:           int32(v.PDG),
			cross_section: v.CrossSection,
			reaction:      reaction,
			x:             v.Position[0],
			y:             v.Position[1],
			z:             v.Position[2],
			t:             v.Position[3],
		}
		for _, p := range v.Particles {
			particles = append(particles, vertexParticleHDF5{
				event_id:  id,
				vertex_id: int32(i),
				track_id:  int32(p.TrackID),
				pdg:       int32(p.PDG),
				px:        p.Momentum.Px(),
				py:        p.Momentum.Py(),
				pz:        p.Momentum.Pz(),
				e:         p.Momentum.E(),
			})
		}
	}
	if err := writeArrayToTable(w.VertexTable, &vertices, w.vertexCounter); err != nil {
		return fmt.Errorf("error writing vertices of event %d: %w", event.EventID, err)
	}
	w.vertexCounter += len(vertices)
	if err := writeArrayToTable(w.VertexParticleTable, &particles, w.vertexParticleCounter); err != nil {
		return fmt.Errorf("error writing vertex particles of event %d: %w", event.EventID, err)
	}
	w.vertexParticleCounter += len(particles)

	genie := genieHDF5{
		event_id: id,
		nu_pdg:   int32(event.Generator.NuPDG),
		nu_p4:    [4]float64{0, 0, event.Generator.ENu / 1000, event.Generator.ENu / 1000},
	}
	if err := writeEntryToTable(w.GenieTable, genie, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing generator record of event %d: %w", event.EventID, err)
	}

	w.EvtCounter++
	return nil
}

func (w *MCWriter) Close() error {
	var errs []error
	for _, dset := range []*hdf5.Dataset{w.EventTable, w.TrajectoryTable, w.DepositTable,
		w.VertexTable, w.VertexParticleTable, w.GenieTable} {
		if dset == nil {
			continue
		}
		if err := dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing dataset: %w", err))
		}
	}
	for _, group := range []*hdf5.Group{w.MCGroup, w.GeneratorGroup} {
		if group == nil {
			continue
		}
		if err := group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}
	return errors.Join(errs...)
}
