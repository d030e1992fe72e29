package handler

import (
	"github.com/JonMunkholm/inobat/internal/config"
	"github.com/JonMunkholm/inobat/internal/core"
)

// ContextCheckInterval is how often (in rows) to check for context cancellation.
var ContextCheckInterval = 100

// Options describes one conversion run.
type Options struct {
	InputPath  string
	OutputPath string
	SQLitePath string // empty disables the SQLite export
	Encoding   string
	Delimiter  rune
	Metadata   core.Metadata

	// Definitions and Keywords default to the core registry when nil.
	Definitions []core.CategoryDefinition
	Keywords    *core.OrderedMap[[]string]
}

// OptionsFromConfig maps validated configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		InputPath:  cfg.Input.Path,
		OutputPath: cfg.Output.Path,
		SQLitePath: cfg.Output.SQLitePath,
		Encoding:   cfg.Input.Encoding,
		Delimiter:  cfg.Input.DelimiterRune(),
		Metadata: core.Metadata{
			Source:        cfg.Catalog.Source,
			EffectiveDate: cfg.Catalog.EffectiveDate,
			VATRate:       cfg.Catalog.VATRate,
		},
	}
}

// Result is what a successful run produced.
type Result struct {
	Database  *core.Database
	Stats     core.Stats
	Totals    []core.CategoryTotal
	BytesRead int64
}
