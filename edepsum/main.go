package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	edep "github.com/lartpc/edep_go/pkg"
	"github.com/lartpc/edep_go/pkg/h5"
	"github.com/lartpc/edep_go/pkg/rootio"
)

var configuration edep.Configuration

var (
	logger         Logger
	VerbosityLevel int
	DiscardErrors  bool
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path (JSON or YAML)")
	envFilename := flag.String("env", ".env", "File with EDEP_* environment overrides")
	flag.Parse()

	if err := run(*configFilename, *envFilename); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(configFilename, envFilename string) error {
	err := godotenv.Load(envFilename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("Error reading %s: %w", envFilename, err)
	}

	configuration, err = LoadConfiguration(configFilename)
	if err != nil {
		return fmt.Errorf("Error reading configuration: %w", err)
	}
	edep.SetConfiguration(configuration)
	edep.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	DiscardErrors = configuration.Discard
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	evgen, err := edep.ParseGenerator(configuration.EvGen)
	if err != nil {
		return err
	}

	tables, err := loadLightTables(configuration)
	if err != nil {
		return err
	}

	source, err := h5.NewReader(configuration.FileIn, evgen)
	if err != nil {
		return fmt.Errorf("Error opening input: %w", err)
	}
	defer source.Close()

	evtsToRead := numberOfEventsToProcess(source.NEntries(), configuration.Skip, configuration.MaxEvents)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d, to process: %d", source.NEntries(), evtsToRead)
		logger.Info(message, "main")
	}

	runInfo := edep.NewRunInfo(configuration.RunNumber, evgen, configuration.Seed, configuration.FileIn, tables)
	writers, rootWriter, err := createWriters(configuration, runInfo)
	if err != nil {
		return err
	}

	summarizer := edep.NewSummarizer(configuration.Seed, tables)
	if configuration.Histograms {
		summarizer.Diagnostics = edep.NewDiagnostics(configuration.DQdxThreshold)
	}

	start := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs := make(chan WorkerData, 16)
	go sendEventsToWorkers(ctx, NewFileReader(source), jobs)
	stats, runErr := processWorkerResults(jobs, summarizer, writers)
	cancel()

	if runErr == nil && rootWriter != nil && summarizer.Diagnostics != nil {
		runErr = rootWriter.WriteHistograms(summarizer.Diagnostics.Histograms())
	}
	if summarizer.Diagnostics != nil && VerbosityLevel > 0 {
		message := fmt.Sprintf("Neutron events: %d", summarizer.Diagnostics.NeutronEvents)
		logger.Info(message, "main")
	}

	var closeErrs []error
	for _, writer := range writers {
		closeErrs = append(closeErrs, writer.Close())
	}

	reportBatch(stats)
	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Total time: %d ms", duration.Milliseconds()), "main")

	return errors.Join(runErr, errors.Join(closeErrs...))
}

// loadLightTables returns the photon collection operating points: the
// defaults, the conditions database unless no_db is set, and the
// efficiency histogram when one is configured.
func loadLightTables(config edep.Configuration) (edep.LightTables, error) {
	tables := edep.DefaultLightTables()
	if !config.NoDB {
		var dbConn *sqlx.DB
		var err error
		if config.DBFile != "" {
			dbConn, err = edep.ConnectToConditionsFile(config.DBFile)
		} else {
			dbConn, err = edep.ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
		}
		if err != nil {
			return tables, fmt.Errorf("Error connection to database: %w", err)
		}
		defer dbConn.Close()

		tables, err = edep.LoadLightTables(dbConn, config.RunNumber)
		if err != nil {
			return tables, err
		}
	}

	if config.PCEHistogramFile != "" {
		distribution, err := rootio.LoadPCEDistribution(config.PCEHistogramFile, config.PCEHistogramName)
		if err != nil {
			return tables, err
		}
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Sampling PCE from %s (mean %g)", config.PCEHistogramFile, distribution.Mean())
			logger.Info(message, "main")
		}
		tables = tables.WithDistribution(distribution)
	}
	return tables, nil
}

func createWriters(config edep.Configuration, run edep.RunInfo) ([]SummaryWriter, *rootio.Writer, error) {
	if !config.WriteData {
		return nil, nil, nil
	}

	writers := make([]SummaryWriter, 0, 2)
	writer, err := h5.NewWriter(config.FileOut, run, config.CompressionLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("Error creating %s: %w", config.FileOut, err)
	}
	writers = append(writers, writer)
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", config.FileOut), "main")
	}

	if !config.WriteRoot {
		return writers, nil, nil
	}
	rootWriter, err := rootio.NewWriter(config.FileOutRoot, run)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("Error creating %s: %w", config.FileOutRoot, err), writer.Close())
	}
	writers = append(writers, rootWriter)
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", config.FileOutRoot), "main")
	}
	return writers, rootWriter, nil
}
