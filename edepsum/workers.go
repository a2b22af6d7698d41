package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	edep "github.com/lartpc/edep_go/pkg"
)

type WorkerData struct {
	Entry int
	Event *edep.EventType
	Err   error
}

// SummaryWriter is implemented by the HDF5 and ROOT writers.
type SummaryWriter interface {
	WriteSummary(summary *edep.EventSummary) error
	Close() error
}

// BatchStats counts what happened to the events of the run.
type BatchStats struct {
	Processed int
	Written   int
	Skipped   []int
	Discarded []int
}

// sendEventsToWorkers reads events ahead of the summarizer. Reading stops
// at the end of the selection, on the first error or when ctx is done.
func sendEventsToWorkers(ctx context.Context, fileReader *FileReader, jobs chan<- WorkerData) {
	defer close(jobs)
	for {
		event, err := fileReader.getNextEvent()
		if errors.Is(err, io.EOF) {
			return
		}
		data := WorkerData{Entry: fileReader.EvtCount, Event: event, Err: err}
		select {
		case jobs <- data:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// summarizeEvent turns a panic while summarizing into an error so that
// the event can be discarded.
func summarizeEvent(summarizer *edep.Summarizer, event *edep.EventType) (summary edep.EventSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic on event %d: %v", event.EventID, r)
		}
	}()
	return summarizer.Summarize(event)
}

// processWorkerResults summarizes the events in reading order, so that
// the random stream is consumed in a reproducible way, and writes them.
func processWorkerResults(jobs <-chan WorkerData, summarizer *edep.Summarizer, writers []SummaryWriter) (BatchStats, error) {
	var stats BatchStats
	var totalTime time.Duration

	for data := range jobs {
		if data.Err != nil {
			return stats, data.Err
		}
		event := data.Event
		start := time.Now()

		summary, err := summarizeEvent(summarizer, event)
		if err != nil {
			if !DiscardErrors {
				return stats, err
			}
			logger.Error(err.Error())
			message := fmt.Sprintf("discarding event %d", event.EventID)
			logger.Error(message)
			stats.Discarded = append(stats.Discarded, event.EventID)
			continue
		}
		stats.Processed++
		if summary.Skipped {
			stats.Skipped = append(stats.Skipped, event.EventID)
		}

		if configuration.WriteData {
			for _, writer := range writers {
				if err := writer.WriteSummary(&summary); err != nil {
					return stats, err
				}
			}
			stats.Written++
		}

		totalTime += time.Since(start)
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Processed entry %d (event %d)", data.Entry, event.EventID)
			logger.Info(message, "workers")
		}
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Total time summarizing: %d ms", totalTime.Milliseconds())
		logger.Info(message, "workers")
	}
	return stats, nil
}

func reportBatch(stats BatchStats) {
	message := fmt.Sprintf("Events processed: %d, written: %d, skipped: %d, discarded: %d",
		stats.Processed, stats.Written, len(stats.Skipped), len(stats.Discarded))
	logger.Info(message, "main")
	if len(stats.Skipped) > 0 {
		logger.Warn(fmt.Sprintf("Skipped events: %v", stats.Skipped), "main")
	}
	if len(stats.Discarded) > 0 {
		logger.Warn(fmt.Sprintf("Discarded events: %v", stats.Discarded), "main")
	}
}
