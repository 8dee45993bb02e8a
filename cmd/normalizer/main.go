// Package main provides the normalizer command-line tool for turning one
// client's spreadsheet exports into canonical incident records.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"safetynorm/internal/config"
	"safetynorm/internal/formatter"
	"safetynorm/internal/logger"
	"safetynorm/internal/models"
	"safetynorm/internal/normalizer"
	"safetynorm/internal/registry"
	"safetynorm/internal/sheet"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML (optional)")
	client := flag.String("client", "", "Client name, e.g. Geotec")
	incidentsPath := flag.String("incidents", "", "Incident sheet exported as CSV")
	factorsPath := flag.String("factors", "", "Factor sheet exported as CSV")
	actionsPath := flag.String("actions", "", "Action sheet exported as CSV")
	outputPath := flag.String("output", "", "Output file (defaults to output.path/<client>/result.<format>)")
	checkOnly := flag.Bool("check", false, "Only validate the mapping against the sheet columns")
	flag.Parse()

	if *client == "" {
		fmt.Println("Usage: normalizer -client <name> [-incidents a.csv] [-factors b.csv] [-actions c.csv]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	log := logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	reg, err := cfg.LoadRegistry()
	if err != nil {
		log.Error("failed to load client mappings", "error", err)
		os.Exit(1)
	}

	opts := sheet.Options{
		KeyBy:     sheet.KeyBy(cfg.Input.KeyBy),
		Delimiter: cfg.Input.DelimiterRune(),
		HasHeader: cfg.Input.HasHeader,
	}

	batch, err := readBatch(opts, *incidentsPath, *factorsPath, *actionsPath)
	if err != nil {
		log.Error("failed to read sheets", "error", err)
		os.Exit(1)
	}

	processor := normalizer.NewProcessor(reg, log)

	if *checkOnly {
		entry, checkErr := processor.Check(*client, batch)
		if checkErr != nil {
			report(log, checkErr)
			os.Exit(1)
		}

		fmt.Printf("Mapping for %s matches the sheet columns\n\n", entry.Name)
		fmt.Print(formatter.MappingTable(entry.Mapping))

		return
	}

	result, err := processor.Process(*client, batch)
	if err != nil {
		report(log, err)
		os.Exit(1)
	}

	fmt.Print(formatter.ResultReport(*client, result, formatter.ReportOptions{
		ShowRejections: cfg.Report.ShowRejections,
		MaxRejections:  cfg.Report.MaxRejections,
	}))

	target := *outputPath
	if target == "" {
		target = cfg.GetOutputPath(*client)
	}

	if err := writeResult(target, cfg.Output, result); err != nil {
		log.Error("failed to write result", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nSaved to: %s\n", target)
}

func readBatch(opts sheet.Options, incidents, factors, actions string) (normalizer.Batch, error) {
	var b normalizer.Batch

	targets := []struct {
		path  string
		table *models.Table
	}{
		{incidents, &b.Incidents},
		{factors, &b.Factors},
		{actions, &b.Actions},
	}

	for _, t := range targets {
		if t.path == "" {
			continue
		}

		table, err := sheet.ReadFile(t.path, opts)
		if err != nil {
			return normalizer.Batch{}, err
		}

		*t.table = table
	}

	return b, nil
}

// report logs configuration errors with a hint about their cause.
func report(log *logger.Logger, err error) {
	var mme *normalizer.MalformedMappingError

	switch {
	case errors.Is(err, registry.ErrUnknownClient):
		log.Error("client is not registered", "error", err)
	case errors.As(err, &mme):
		log.Error("mapping does not match the sheet", "entity", mme.Entity, "field", mme.Field, "column", mme.Column)
	default:
		log.Error("normalization failed", "error", err)
	}
}

func writeResult(path string, out config.OutputConfig, result *models.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var (
		data []byte
		err  error
	)

	switch {
	case out.Format == "yaml":
		data, err = yaml.Marshal(result)
	case out.PrettyPrint:
		data, err = json.MarshalIndent(result, "", "  ")
	default:
		data, err = json.Marshal(result)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
