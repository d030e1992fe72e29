// Package handler runs a conversion end to end: read the export, fold it
// into a catalog, write the outputs.
package handler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/JonMunkholm/inobat/internal/core"
	"github.com/JonMunkholm/inobat/internal/export"
	"github.com/JonMunkholm/inobat/internal/logging"
)

/* ----------------------------------------
	Main entry for a conversion
---------------------------------------- */

// Convert reads opts.InputPath, builds the catalog, and writes it to
// opts.OutputPath (and opts.SQLitePath when set). Nothing is written unless
// the whole input was read.
func Convert(ctx context.Context, opts Options) (*Result, error) {
	log := logging.WithFields(ctx, "input", opts.InputPath)
	start := time.Now()

	if opts.Delimiter == 0 {
		opts.Delimiter = ';'
	}
	defs := opts.Definitions
	if defs == nil {
		defs = core.All()
	}
	kw := opts.Keywords
	if kw == nil {
		kw = core.Keywords()
	}

	builder := core.NewBuilder(opts.Metadata, defs, kw).WithLogger(log)

	bytesRead, err := readInput(ctx, opts, builder)
	if err != nil {
		return nil, err
	}

	catalog := builder.Database()
	stats := builder.Stats()
	log.Info("input folded",
		"rows", stats.Rows,
		"headers", stats.Headers,
		"entries", stats.Entries,
		"skipped", stats.SkippedTotal(),
		"bytes", bytesRead,
	)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("operation cancelled before output: %w", err)
	}

	// 2. Stage every output, then rename them together
	outputs, err := stageOutputs(ctx, opts, catalog)
	if err != nil {
		return nil, err
	}
	if err := export.CommitAll(outputs...); err != nil {
		return nil, err
	}

	log.Info("conversion finished",
		"output", opts.OutputPath,
		"sqlite", opts.SQLitePath,
		"entries", catalog.EntryCount(),
		"duration", time.Since(start),
	)

	return &Result{
		Database:  catalog,
		Stats:     stats,
		Totals:    core.Totals(catalog, builder.Definitions()),
		BytesRead: bytesRead,
	}, nil
}

/* ----------------------------------------
	1. Read and fold the input
---------------------------------------- */

func readInput(ctx context.Context, opts Options, builder *core.Builder) (int64, error) {
	f, err := os.Open(opts.InputPath)
	if err != nil {
		return 0, fmt.Errorf("open input %s: %w", opts.InputPath, err)
	}
	defer f.Close()

	counter := core.NewCountingReader(f)
	r, err := core.NewInputReader(counter, opts.Encoding)
	if err != nil {
		return 0, fmt.Errorf("open input %s: %w", opts.InputPath, err)
	}

	n := 0
	err = core.ReadRows(r, opts.Delimiter, func(row core.RawRow, parseErr error) error {
		// Check context periodically to allow cancellation
		if n%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("operation cancelled at line %d: %w", row.Line, err)
			}
		}
		n++

		if parseErr != nil {
			builder.SkipUnreadable(row.Line)
			return nil
		}
		builder.Apply(row)
		return nil
	})
	if err != nil {
		return counter.BytesRead, fmt.Errorf("input %s: %w", opts.InputPath, err)
	}

	return counter.BytesRead, nil
}

/* ----------------------------------------
	2. Outputs
---------------------------------------- */

// stageOutputs writes the JSON catalog and the optional SQLite copy under
// temporary names. The SQLite copy comes first so the JSON catalog is the
// last file renamed into place.
func stageOutputs(ctx context.Context, opts Options, catalog *core.Database) ([]*export.Staged, error) {
	var outputs []*export.Staged

	if opts.SQLitePath != "" {
		db, err := export.StageSQLite(ctx, opts.SQLitePath, catalog)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, db)
	}

	js, err := export.StageJSON(opts.OutputPath, catalog)
	if err != nil {
		export.DiscardAll(outputs...)
		return nil, err
	}
	return append(outputs, js), nil
}
