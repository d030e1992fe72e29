// Package report prints the console summary of a conversion.
package report

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/inobat/internal/core"
)

// Print writes the run summary: where the catalog went and how many entries
// each category holds. With showSkipped, rows left out of the catalog are
// broken down by reason.
func Print(w io.Writer, outputPath string, totals []core.CategoryTotal, stats core.Stats, showSkipped bool) error {
	p := &printer{w: w}

	p.printf("Base INOBAT créée: %s\n", outputPath)
	p.printf("\nStatistiques:\n")

	total := 0
	for _, t := range totals {
		p.printf("   - %s: %d entrées\n", t.Label, t.Entries)
		total += t.Entries
	}
	p.printf("   - TOTAL: %d entrées\n", total)

	if showSkipped {
		printSkipped(p, stats)
	}

	return p.err
}

func printSkipped(p *printer, stats core.Stats) {
	p.printf("\nLignes ignorées:\n")
	if stats.SkippedTotal() == 0 {
		p.printf("   - aucune\n")
		return
	}
	for _, reason := range core.SkipReasons {
		if n := stats.Skipped[reason]; n > 0 {
			p.printf("   - %s: %d\n", reason, n)
		}
	}
	p.printf("   - TOTAL: %d / %d lignes\n", stats.SkippedTotal(), stats.Rows)
	if stats.Replaced > 0 {
		p.printf("   - sous-catégories remplacées: %d\n", stats.Replaced)
	}
}

// printer keeps the first write error so Print can format without checking
// every line.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
