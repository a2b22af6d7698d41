package edep

import "github.com/google/uuid"

// RunInfo identifies one processing of an input file. Both output
// writers store it so that their files can be matched.
type RunInfo struct {
	RunID     uuid.UUID
	RunNumber int
	Generator Generator
	Seed      uint64
	InputFile string
	Light     LightTables
}

func NewRunInfo(runNumber int, generator Generator, seed uint64, inputFile string, light LightTables) RunInfo {
	return RunInfo{
		RunID:     uuid.New(),
		RunNumber: runNumber,
		Generator: generator,
		Seed:      seed,
		InputFile: inputFile,
		Light:     light,
	}
}
