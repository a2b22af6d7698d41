package h5

import (
	"fmt"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/hdf5"

	edep "github.com/lartpc/edep_go/pkg"
)

// Reader loads the Monte Carlo tables of one file and serves them as
// events, in the order of the events table.
type Reader struct {
	File     *hdf5.File
	Filename string
	EvGen    edep.Generator
	eventIDs []int
	events   map[int]*edep.EventType
}

func NewReader(filename string, evgen edep.Generator) (*Reader, error) {
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &edep.ErrOpenFile{Filename: filename, Err: err}
	}
	r := &Reader{
		File:     file,
		Filename: filename,
		EvGen:    evgen,
		events:   make(map[int]*edep.EventType),
	}
	if err := r.load(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) NEntries() int {
	return len(r.eventIDs)
}

func (r *Reader) EventIDs() []int {
	return r.eventIDs
}

func (r *Reader) Jump(entry int) (*edep.EventType, error) {
	if entry < 0 || entry >= len(r.eventIDs) {
		return nil, fmt.Errorf("entry %d out of range [0, %d)", entry, len(r.eventIDs))
	}
	return r.events[r.eventIDs[entry]], nil
}

func (r *Reader) Close() error {
	return r.File.Close()
}

func (r *Reader) load() error {
	events, err := readTable[eventHDF5](r.File, eventsPath)
	if err != nil {
		return err
	}
	for _, row := range events {
		id := int(row.event_id)
		if _, ok := r.events[id]; ok {
			return fmt.Errorf("%s: duplicated event %d", eventsPath, id)
		}
		r.eventIDs = append(r.eventIDs, id)
		r.events[id] = &edep.EventType{EventID: id}
	}

	if err := r.loadTrajectories(); err != nil {
		return err
	}
	if err := r.loadDeposits(); err != nil {
		return err
	}
	if err := r.loadVertices(); err != nil {
		return err
	}
	return r.loadGenerator()
}

func (r *Reader) event(path string, id int32) (*edep.EventType, error) {
	event, ok := r.events[int(id)]
	if !ok {
		return nil, fmt.Errorf("%s: row of unknown event %d", path, id)
	}
	return event, nil
}

func (r *Reader) loadTrajectories() error {
	rows, err := readTable[trajectoryHDF5](r.File, trajectoriesPath)
	if err != nil {
		return err
	}
	for _, row := range rows {
		event, err := r.event(trajectoriesPath, row.event_id)
		if err != nil {
			return err
		}
		// Track ids are the position in the event's trajectory list
		if int(row.track_id) != len(event.Trajectories) {
			return fmt.Errorf("event %d: %w", event.EventID, &edep.TrackIndexError{
				What: "trajectory", Index: int(row.track_id), NTracks: len(event.Trajectories)})
		}
		event.Trajectories = append(event.Trajectories, edep.Trajectory{
			TrackID:  int(row.track_id),
			ParentID: int(row.parent_id),
			PDG:      int(row.pdg),
			Momentum: fmom.NewPxPyPzE(row.px, row.py, row.pz, row.e),
		})
	}
	return nil
}

func (r *Reader) loadDeposits() error {
	rows, err := readTable[depositHDF5](r.File, depositsPath)
	if err != nil {
		return err
	}
	for _, row := range rows {
		event, err := r.event(depositsPath, row.event_id)
		if err != nil {
			return err
		}
		event.Deposits = append(event.Deposits, edep.Deposit{
			TrackID: int(row.track_id),
			Energy:  row.energy,
			Length:  row.length,
			Start:   [4]float64{row.start_x, row.start_y, row.start_z, row.start_t},
			Stop:    [4]float64{row.stop_x, row.stop_y, row.stop_z, row.stop_t},
		})
	}
	return nil
}

func (r *Reader) loadVertices() error {
	rows, err := readTable[vertexHDF5](r.File, verticesPath)
	if err != nil {
		return err
	}
	type vertexKey struct{ event, vertex int32 }
	index := make(map[vertexKey]int)
	for _, row := range rows {
		event, err := r.event(verticesPath, row.event_id)
		if err != nil {
			return err
		}
		index[vertexKey{row.event_id, row.vertex_id}] = len(event.Vertices)
		event.Vertices = append(event.Vertices, edep.Vertex{
			PDG:          int(row.pdg),
			CrossSection: row.cross_section,
			Reaction:     convertFromHdf5String(row.reaction[:]),
			Position:     [4]float64{row.x, row.y, row.z, row.t},
		})
	}

	particles, err := readTable[vertexParticleHDF5](r.File, vertexParticlesPath)
	if err != nil {
		return err
	}
	for _, row := range particles {
		event, err := r.event(vertexParticlesPath, row.event_id)
		if err != nil {
			return err
		}
		vi, ok := index[vertexKey{row.event_id, row.vertex_id}]
		if !ok {
			return fmt.Errorf("%s: event %d has no vertex %d", vertexParticlesPath, row.event_id, row.vertex_id)
		}
		vertex := &event.Vertices[vi]
		vertex.Particles = append(vertex.Particles, edep.VertexParticle{
			TrackID:  int(row.track_id),
			PDG:      int(row.pdg),
			Momentum: fmom.NewPxPyPzE(row.px, row.py, row.pz, row.e),
		})
	}
	return nil
}

func (r *Reader) loadGenerator() error {
	switch r.EvGen {
	case edep.Marley:
		info, err := edep.MarleyInfoFromFileName(r.Filename)
		if err != nil {
			return err
		}
		for _, event := range r.events {
			event.Generator = info
		}
		return nil
	case edep.Genie:
		rows, err := readTable[genieHDF5](r.File, geniePath)
		if err != nil {
			return err
		}
		if len(rows) != len(r.eventIDs) {
			return &edep.StreamMismatchError{
				Stream1: "edep-sim events", Count1: len(r.eventIDs),
				Stream2: "GENIE records", Count2: len(rows),
			}
		}
		// GENIE records are aligned with the events by entry
		for i, row := range rows {
			r.events[r.eventIDs[i]].Generator = edep.GeneratorInfo{
				NuPDG: int(row.nu_pdg),
				ENu:   row.nu_p4[3] * 1000,
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown event generator: %q", r.EvGen)
	}
}
