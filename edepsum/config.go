package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	edep "github.com/lartpc/edep_go/pkg"
)

const envPrefix = "EDEP_"

func defaultConfiguration() edep.Configuration {
	var config edep.Configuration
	config.MaxEvents = 1000000000
	config.Skip = 0
	config.Verbosity = 0
	config.FileOut = "summary.h5"
	config.FileOutRoot = "summary.root"
	config.EvGen = "genie"
	config.Seed = 0
	config.NoDB = true
	config.Host = "localhost"
	config.User = "edepreader"
	config.Passwd = "readonly"
	config.DBName = "LArConditions"
	config.RunNumber = 0
	config.Discard = false
	config.WriteData = true
	config.WriteRoot = false
	config.CompressionLevel = 4
	config.Histograms = false
	config.DQdxThreshold = 0
	config.PCEHistogramName = "pce"
	return config
}

// LoadConfiguration reads the configuration file (JSON or YAML) on top of
// the defaults; EDEP_* environment variables override both. An empty
// filename only applies the environment.
func LoadConfiguration(filename string) (edep.Configuration, error) {
	config := defaultConfiguration()
	k := koanf.New(".")

	if filename != "" {
		if err := k.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return config, fmt.Errorf("error loading %s: %w", filename, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return config, fmt.Errorf("error loading environment: %w", err)
	}

	// Keys not present leave the defaults untouched
	if err := k.Unmarshal("", &config); err != nil {
		return config, err
	}
	if err := validateConfiguration(config); err != nil {
		return config, err
	}
	return config, nil
}

func validateConfiguration(config edep.Configuration) error {
	if config.FileIn == "" {
		return fmt.Errorf("file_in is not set")
	}
	if config.Skip < 0 || config.MaxEvents < 0 {
		return fmt.Errorf("skip (%d) and max_events (%d) must be non-negative", config.Skip, config.MaxEvents)
	}
	if config.CompressionLevel < 0 || config.CompressionLevel > 9 {
		return fmt.Errorf("compression_level %d out of range [0, 9]", config.CompressionLevel)
	}
	if _, err := edep.ParseGenerator(config.EvGen); err != nil {
		return err
	}
	return nil
}

func printConfiguration(config edep.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("File out ROOT: %s", config.FileOutRoot), "config")
	logger.Info(fmt.Sprintf("Event generator: %s", config.EvGen), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("DB file: %s", config.DBFile), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Discard: %t", config.Discard), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Write ROOT: %t", config.WriteRoot), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Histograms: %t", config.Histograms), "config")
	logger.Info(fmt.Sprintf("dQ/dx threshold: %g", config.DQdxThreshold), "config")
	if config.PCEHistogramFile != "" {
		logger.Info(fmt.Sprintf("PCE histogram: %s:%s", config.PCEHistogramFile, config.PCEHistogramName), "config")
	}
}
