package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"PortfolioLens/internal/collector"
	"PortfolioLens/internal/config"
	"PortfolioLens/internal/model"
	"PortfolioLens/internal/recorder"
)

// common flags shared by every chart command.
type common struct {
	configPath string
	source     string
}

func (c *common) setFlags(f *flag.FlagSet) {
	def := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		def = v
	}
	f.StringVar(&c.configPath, "config", def, "Path to the YAML config file.")
	f.StringVar(&c.source, "source", "", "Chart document to load; overrides source.path from the config.")
}

func (c *common) load() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.source != "" {
		cfg.Source.Path = c.source
		cfg.Source.URL = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newCollector(cfg *config.Config) *collector.Collector {
	var src collector.Source
	if cfg.Source.URL != "" {
		src = collector.NewHTTPSource(cfg.Source.URL, cfg.Source.APIKey, cfg.Proxy)
	} else {
		src = &collector.FileSource{Path: cfg.Source.Path}
	}
	log.Printf("[INFO] data source: %s", src.Name())
	return collector.NewCollector(src, collector.Defaults{
		ShowTrades:    *cfg.Chart.ShowTrades,
		ShowDividends: *cfg.Chart.ShowDividends,
		Lookback:      cfg.Lookback(),
	})
}

func collect(ctx context.Context, cfg *config.Config) (*model.Inputs, error) {
	return newCollector(cfg).Collect(ctx)
}

// openRecorder returns the SQLite recorder when a path is given, else a no-op one.
func openRecorder(path string) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
