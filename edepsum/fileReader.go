package main

import (
	"fmt"
	"io"

	edep "github.com/lartpc/edep_go/pkg"
)

// FileReader walks the entries of an event source honouring the skip and
// max_events settings. Both count entries from the start of the file.
type FileReader struct {
	Source   edep.EventSource
	EvtCount int
}

func NewFileReader(source edep.EventSource) *FileReader {
	return &FileReader{Source: source, EvtCount: -1}
}

func (f *FileReader) getNextEvent() (*edep.EventType, error) {
	f.EvtCount++
	if f.EvtCount >= f.Source.NEntries() {
		if VerbosityLevel > 1 {
			logger.Info("End of file", "fileReader")
		}
		return nil, io.EOF
	}
	if f.EvtCount >= configuration.MaxEvents {
		if VerbosityLevel > 0 {
			logger.Info("Max events reached", "fileReader")
		}
		return nil, io.EOF
	}
	if f.EvtCount < configuration.Skip {
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Skipping entries %d to %d", f.EvtCount, configuration.Skip-1)
			logger.Info(message, "fileReader")
		}
		f.EvtCount = configuration.Skip - 1
		return f.getNextEvent()
	}
	event, err := f.Source.Jump(f.EvtCount)
	if err != nil {
		return nil, fmt.Errorf("error reading entry %d: %w", f.EvtCount, err)
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading entry %d with ID %d", f.EvtCount, event.EventID)
		logger.Info(message, "fileReader")
	}
	return event, nil
}

func numberOfEventsToProcess(fileEvtCount int, skipEvts int, maxEvtCount int) int {
	last := maxEvtCount
	if last > fileEvtCount {
		last = fileEvtCount
	}
	if last < skipEvts {
		return 0
	}
	return last - skipEvts
}
