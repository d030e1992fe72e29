// Package config provides centralized configuration for the converter.
// Settings come from environment variables (optionally seeded from a .env
// file), can be overridden by command-line flags, and are validated before the
// run starts so that misconfiguration fails fast.
package config

import "fmt"

// Config holds all converter configuration.
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	Catalog CatalogConfig
	Report  ReportConfig
	Logging LoggingConfig
}

// InputConfig describes the source CSV.
type InputConfig struct {
	// Path is the INOBAT CSV export to convert (default: Inobat.csv)
	Path string `env:"INOBAT_INPUT_PATH" flag:"input" default:"Inobat.csv" usage:"source CSV location"`

	// Encoding is utf-8, windows-1252 or auto (default: utf-8)
	Encoding string `env:"INOBAT_INPUT_ENCODING" flag:"encoding" default:"utf-8" usage:"input encoding: utf-8, windows-1252 or auto"`

	// Delimiter is the single-character field separator (default: ;)
	Delimiter string `env:"INOBAT_CSV_DELIMITER" flag:"delimiter" default:";" usage:"CSV field separator"`
}

// OutputConfig describes where the catalog is written.
type OutputConfig struct {
	// Path is the destination JSON file (default: inobat-complet-2026.json)
	Path string `env:"INOBAT_OUTPUT_PATH" flag:"output" default:"inobat-complet-2026.json" usage:"destination JSON location"`

	// SQLitePath enables the SQLite export when set
	SQLitePath string `env:"INOBAT_SQLITE_PATH" flag:"sqlite" usage:"optional SQLite export location"`
}

// CatalogConfig holds the metadata stamped on the generated catalog.
type CatalogConfig struct {
	Source        string  `env:"INOBAT_SOURCE" flag:"source" default:"INOBAT 2026" usage:"catalog source label"`
	EffectiveDate string  `env:"INOBAT_EFFECTIVE_DATE" flag:"effective-date" default:"2026-01-01" usage:"tariff effective date (YYYY-MM-DD)"`
	VATRate       float64 `env:"INOBAT_VAT_RATE" flag:"vat" default:"8.1" usage:"VAT rate in percent"`
}

// ReportConfig controls the console summary.
type ReportConfig struct {
	// ShowSkipped appends a per-reason breakdown of skipped rows
	ShowSkipped bool `env:"INOBAT_REPORT_SKIPPED" flag:"report-skipped" default:"false" usage:"print skipped row counts by reason"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" flag:"log-level" default:"warn" usage:"debug, info, warn or error"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" flag:"log-format" default:"text" usage:"text or json"`
}

// DelimiterRune returns the configured delimiter as a rune.
// Validate guarantees it is exactly one character.
func (c *InputConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ';'
}

// String returns a compact representation for logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Input: {Path: %q, Encoding: %q}, Output: {Path: %q, SQLite: %q}, Catalog: {Source: %q, Date: %q, VAT: %g}, Logging: {Level: %q, Format: %q}}",
		c.Input.Path, c.Input.Encoding,
		c.Output.Path, c.Output.SQLitePath,
		c.Catalog.Source, c.Catalog.EffectiveDate, c.Catalog.VATRate,
		c.Logging.Level, c.Logging.Format,
	)
}
