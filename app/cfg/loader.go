package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input/output paths
	SourcesDir  string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source descriptor files"`
	RulesPath   string `long:"rules" env:"RULES_PATH" default:"./rules.yml" description:"Path to the classification rule list"`
	CatalogPath string `long:"catalog" env:"CATALOG_PATH" default:"./catalog.json" description:"Path to the persisted catalog file"`

	// Run modes
	DryRun   bool `long:"dry-run" description:"Run the full pipeline and print the result without persisting"`
	CI       bool `long:"ci" description:"Enforce strict catalog validation and exit non-zero on violation"`
	MinItems int  `long:"min-items" env:"MIN_ITEMS" default:"5" description:"Minimum item count enforced under --ci"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Contest Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Asia/Shanghai" description:"Timezone for date comparisons (e.g. Asia/Shanghai, UTC)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourcesDir:  raw.SourcesDir,
		RulesPath:   raw.RulesPath,
		CatalogPath: raw.CatalogPath,
		DryRun:      raw.DryRun,
		CI:          raw.CI,
		MinItems:    raw.MinItems,
		UserAgent:   raw.UserAgent,
		Timezone:    raw.Timezone,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
