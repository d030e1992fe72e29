package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/inobat/internal/core"
)

var testTotals = []core.CategoryTotal{
	{Key: "1_piles_portables", Label: "Piles portables", Entries: 12},
	{Key: "2_piles_industrielles", Label: "Piles industrielles", Entries: 3},
	{Key: "3_batteries_vehicules", Label: "Batteries véhicules", Entries: 0},
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	stats := core.Stats{Skipped: map[core.SkipReason]int{core.SkipTitleRow: 2}}

	if err := Print(&buf, "out/inobat.json", testTotals, stats, false); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	want := "Base INOBAT créée: out/inobat.json\n" +
		"\n" +
		"Statistiques:\n" +
		"   - Piles portables: 12 entrées\n" +
		"   - Piles industrielles: 3 entrées\n" +
		"   - Batteries véhicules: 0 entrées\n" +
		"   - TOTAL: 15 entrées\n"

	if got := buf.String(); got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrint_Skipped(t *testing.T) {
	tests := []struct {
		name    string
		stats   core.Stats
		want    []string
		notWant []string
	}{
		{
			name:  "no skipped rows",
			stats: core.Stats{Rows: 5, Skipped: map[core.SkipReason]int{}},
			want:  []string{"Lignes ignorées:", "   - aucune"},
		},
		{
			name: "reasons in reporting order",
			stats: core.Stats{
				Rows:     40,
				Replaced: 1,
				Skipped: map[core.SkipReason]int{
					core.SkipOrphanDetail: 1,
					core.SkipTitleRow:     2,
					core.SkipTariffError:  4,
				},
			},
			want: []string{
				"   - title_row: 2\n   - tariff_error: 4\n   - orphan_detail: 1\n",
				"   - TOTAL: 7 / 40 lignes",
				"   - sous-catégories remplacées: 1",
			},
			notWant: []string{"short_row", "aucune"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Print(&buf, "x.json", testTotals, tt.stats, true); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q\n%s", w, out)
				}
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestPrint_WriteError(t *testing.T) {
	err := Print(failingWriter{}, "x.json", testTotals, core.Stats{}, true)
	if err == nil || err.Error() != "broken pipe" {
		t.Errorf("Print() error = %v, want broken pipe", err)
	}
}
