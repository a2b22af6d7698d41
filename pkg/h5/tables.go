package h5

// Layout of the Monte Carlo tables exported from edep-sim and GENIE.
// Field names are the HDF5 column names.

type eventHDF5 struct {
	event_id int32
}

type trajectoryHDF5 struct {
	event_id  int32
	track_id  int32
	parent_id int32
	pdg       int32
	px        float64
	py        float64
	pz        float64
	e         float64
}

type depositHDF5 struct {
	event_id int32
	track_id int32
	energy   float64
	length   float64
	start_x  float64
	start_y  float64
	start_z  float64
	start_t  float64
	stop_x   float64
	stop_y   float64
	stop_z   float64
	stop_t   float64
}

type vertexHDF5 struct {
	event_id      int32
	vertex_id     int32
	pdg           int32
	cross_section float64
	reaction      [REACTIONLEN]byte
	x             float64
	y             float64
	z             float64
	t             float64
}

type vertexParticleHDF5 struct {
	event_id  int32
	vertex_id int32
	track_id  int32
	pdg       int32
	px        float64
	py        float64
	pz        float64
	e         float64
}

// GENIE pass-through record (gRooTracker), one per event.
type genieHDF5 struct {
	event_id int32
	nu_pdg   int32
	// StdHepP4 of the incoming neutrino, GeV
	nu_p4 [4]float64
}

// Output tables

type runInfoHDF5 struct {
	run_id     [STRLEN]byte
	run_number int32
	generator  [STRLEN]byte
	seed       uint64
}

type summaryEventHDF5 struct {
	event_id int32
	skipped  int32
}

type columnNameHDF5 struct {
	name [STRLEN]byte
}

type operatingPointHDF5 struct {
	model [STRLEN]byte
	name  [STRLEN]byte
	pce   float64
}

const (
	eventsPath          = "/MC/events"
	trajectoriesPath    = "/MC/trajectories"
	depositsPath        = "/MC/deposits"
	verticesPath        = "/MC/vertices"
	vertexParticlesPath = "/MC/vertex_particles"
	geniePath           = "/Generator/genie"
)
