package core

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

var testMeta = Metadata{Source: "INOBAT 2026", EffectiveDate: "2026-01-01", VATRate: 8.1}

func subcategory(t *testing.T, db *Database, cat, key string) *Subcategory {
	t.Helper()
	c, ok := db.Categories.Get(cat)
	if !ok {
		t.Fatalf("category %s missing", cat)
	}
	s, ok := c.Subcategories.Get(key)
	if !ok {
		t.Fatalf("subcategory %s missing from %s, have %v", key, cat, c.Subcategories.Keys())
	}
	return s
}

func TestFold_EndToEnd(t *testing.T) {
	db, stats := fold(testMeta, testDefinitions(), nil, []RawRow{
		row(1, "10000", "AA", "", "", "", "", "0"),
		row(2, "10001", "AA", "", "", "", "1-24 grammes", "0.10"),
		row(3, "10002", "", "", "", "", "", "#REF!"),
	})

	sub := subcategory(t, db, "1_piles_portables", "10000_AA")
	if sub.Code != "10000" || sub.Name != "AA" {
		t.Errorf("subcategory = %+v", sub)
	}
	if len(sub.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(sub.Entries))
	}

	e := sub.Entries[0]
	if e.ArticleNo != "10001" || e.Tariff.String() != "0.1" {
		t.Errorf("entry = %s/%s", e.ArticleNo, e.Tariff.String())
	}
	if e.Remark != "1-24 grammes" || *e.WeightMin != 1 || *e.WeightMax != 24 {
		t.Errorf("remark/weights = %q %d-%d", e.Remark, *e.WeightMin, *e.WeightMax)
	}

	if db.EntryCount() != 1 || stats.Entries != 1 || stats.Headers != 1 || stats.Rows != 3 {
		t.Errorf("counts: catalog %d, stats %+v", db.EntryCount(), stats)
	}
	if stats.Skipped[SkipTariffError] != 1 {
		t.Errorf("tariff_error = %d, want 1", stats.Skipped[SkipTariffError])
	}
}

func TestBuilder_EmptyCatalog(t *testing.T) {
	db, stats := fold(testMeta, testDefinitions(), nil, nil)

	if got := db.Categories.Keys(); len(got) != 3 {
		t.Fatalf("categories = %v, want all three", got)
	}
	db.Categories.Each(func(key string, c *Category) {
		if c.Subcategories.Len() != 0 {
			t.Errorf("%s should have no subcategories", key)
		}
	})
	if db.Source != testMeta.Source || db.EffectiveDate != testMeta.EffectiveDate || db.VATRate != testMeta.VATRate {
		t.Errorf("metadata not copied: %+v", db)
	}
	if stats.SkippedTotal() != 0 {
		t.Errorf("SkippedTotal() = %d, want 0", stats.SkippedTotal())
	}
}

func TestBuilder_CategoryOrderFollowsDefinitions(t *testing.T) {
	defs := testDefinitions()
	defs[0], defs[2] = defs[2], defs[0]

	db, _ := fold(testMeta, defs, nil, nil)
	want := []string{"1_piles_portables", "2_piles_industrielles", "3_batteries_vehicules"}
	got := db.Categories.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuilder_EntryFieldsPerCategory(t *testing.T) {
	db, _ := fold(testMeta, testDefinitions(), nil, []RawRow{
		row(1, "10000", "Piles bouton", "", "", "", "", "0"),
		row(2, "10001", "Pile bouton", "LR44", "Alcaline", "LR44-IEC", "1-24 grammes", "0,10"),
		row(3, "80000", "Industriel", "", "", "", "", "0"),
		row(4, "81000", "Plomb", "ANSI-X", "Plomb", "IEC-X", "plus des 6'001 grammes", "1,50"),
	})

	portable := subcategory(t, db, "1_piles_portables", "10000_Piles_bouton").Entries[0]
	if portable.ANSI != "LR44" || portable.Designation != "Alcaline" || portable.IEC != "LR44-IEC" {
		t.Errorf("portable entry = %+v", portable)
	}

	industrial := subcategory(t, db, "2_piles_industrielles", "80000_Industriel").Entries[0]
	if industrial.ANSI != "" || industrial.Designation != "" || industrial.IEC != "" {
		t.Errorf("industrial entry should carry remark only: %+v", industrial)
	}
	if industrial.Remark == "" || *industrial.WeightMin != 6001 || *industrial.WeightMax != OpenEndedWeight {
		t.Errorf("industrial remark/weights = %+v", industrial)
	}
}

func TestBuilder_NoWeightWithoutRange(t *testing.T) {
	db, _ := fold(testMeta, testDefinitions(), nil, []RawRow{
		row(1, "90000", "Démarrage", "", "", "", "", "0"),
		row(2, "91000", "Plomb", "", "", "", "voir annexe", "3"),
		row(3, "91001", "Plomb", "", "", "", "", "4"),
	})

	for _, e := range subcategory(t, db, "3_batteries_vehicules", "90000_Démarrage").Entries {
		if e.WeightMin != nil || e.WeightMax != nil {
			t.Errorf("%s: unexpected weights", e.ArticleNo)
		}
	}
}

func TestBuilder_CursorPerCategory(t *testing.T) {
	// A detail row attaches to the last header of its own category, even
	// when a header of another category came in between.
	db, stats := fold(testMeta, testDefinitions(), nil, []RawRow{
		row(1, "10000", "AA", "", "", "", "", "0"),
		row(2, "80000", "Industriel", "", "", "", "", "0"),
		row(3, "10001", "AA", "", "", "", "", "0,10"),
		row(4, "81000", "Plomb", "", "", "", "", "1"),
	})

	if n := len(subcategory(t, db, "1_piles_portables", "10000_AA").Entries); n != 1 {
		t.Errorf("portable entries = %d, want 1", n)
	}
	if n := len(subcategory(t, db, "2_piles_industrielles", "80000_Industriel").Entries); n != 1 {
		t.Errorf("industrial entries = %d, want 1", n)
	}
	if stats.Skipped[SkipOrphanDetail] != 0 {
		t.Errorf("orphan_detail = %d, want 0", stats.Skipped[SkipOrphanDetail])
	}
}

func TestBuilder_OrphanDetail(t *testing.T) {
	b := NewBuilder(testMeta, testDefinitions(), nil)

	c := b.Apply(row(1, "10001", "AA", "", "", "", "", "0,10"))
	if c.Kind != RowSkip || c.Reason != SkipOrphanDetail {
		t.Errorf("Apply() = %s/%q, want skip/orphan_detail", c.Kind, c.Reason)
	}

	// Only a header of the same category opens a cursor.
	b.Apply(row(2, "80000", "Industriel", "", "", "", "", "0"))
	c = b.Apply(row(3, "10002", "AA", "", "", "", "", "0,10"))
	if c.Reason != SkipOrphanDetail {
		t.Errorf("detail after a foreign header: reason = %q, want orphan_detail", c.Reason)
	}

	if got := b.Stats().Skipped[SkipOrphanDetail]; got != 2 {
		t.Errorf("orphan_detail = %d, want 2", got)
	}
	if b.Database().EntryCount() != 0 {
		t.Errorf("orphans must not be stored")
	}
}

func TestBuilder_DuplicateHeaderReplaces(t *testing.T) {
	var logs bytes.Buffer
	b := NewBuilder(testMeta, testDefinitions(), nil).
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	for _, r := range []RawRow{
		row(1, "10000", "AA", "", "", "", "", "0"),
		row(2, "10001", "AA", "", "", "", "", "1"),
		row(3, "20000", "AAA", "", "", "", "", "0"),
		row(4, "20001", "AAA", "", "", "", "", "2"),
		row(5, "10000", "AA", "", "", "", "", "0"),
		row(6, "10002", "AA", "", "", "", "", "3"),
	} {
		b.Apply(r)
	}

	cat, _ := b.Database().Categories.Get("1_piles_portables")
	keys := cat.Subcategories.Keys()
	if len(keys) != 2 || keys[0] != "10000_AA" || keys[1] != "20000_AAA" {
		t.Fatalf("keys = %v, want [10000_AA 20000_AAA]", keys)
	}

	sub, _ := cat.Subcategories.Get("10000_AA")
	if len(sub.Entries) != 1 || sub.Entries[0].ArticleNo != "10002" {
		t.Errorf("replaced subcategory entries = %+v, want only 10002", sub.Entries)
	}

	stats := b.Stats()
	if stats.Replaced != 1 {
		t.Errorf("Replaced = %d, want 1", stats.Replaced)
	}
	if stats.Entries != 3 || b.Database().EntryCount() != 2 {
		t.Errorf("appended %d, stored %d", stats.Entries, b.Database().EntryCount())
	}
	if !strings.Contains(logs.String(), "duplicate subcategory header") {
		t.Errorf("expected a warning, got logs:\n%s", logs.String())
	}
}

func TestBuilder_SkipUnreadable(t *testing.T) {
	b := NewBuilder(testMeta, testDefinitions(), nil)
	b.SkipUnreadable(7)

	stats := b.Stats()
	if stats.Rows != 1 || stats.Skipped[SkipUnreadableLine] != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBuilder_StatsIsACopy(t *testing.T) {
	b := NewBuilder(testMeta, testDefinitions(), nil)
	b.Apply(row(1, "", "", "", "", "", "", ""))

	s := b.Stats()
	s.Skipped[SkipBlankArticle] = 99

	if got := b.Stats().Skipped[SkipBlankArticle]; got != 1 {
		t.Errorf("builder stats changed through a copy: %d", got)
	}
}

func TestBuilder_Keywords(t *testing.T) {
	kw := NewOrderedMap[[]string]()
	kw.Set("pile", []string{"pile", "battery"})
	kw.Set("alcaline", []string{"alcaline", "alkaline"})

	db, _ := fold(testMeta, testDefinitions(), kw, nil)

	keys := db.Keywords.Keys()
	if len(keys) != 2 || keys[0] != "pile" || keys[1] != "alcaline" {
		t.Errorf("keyword tags = %v", keys)
	}
}

func TestBuilders_Independent(t *testing.T) {
	a := NewBuilder(testMeta, testDefinitions(), nil)
	b := NewBuilder(testMeta, testDefinitions(), nil)

	a.Apply(row(1, "10000", "AA", "", "", "", "", "0"))
	c := b.Apply(row(1, "10001", "AA", "", "", "", "", "1"))

	if c.Reason != SkipOrphanDetail {
		t.Errorf("second builder saw the first builder's cursor")
	}
}

func TestTotals(t *testing.T) {
	defs := testDefinitions()
	db, stats := fold(testMeta, defs, nil, []RawRow{
		row(1, "10000", "AA", "", "", "", "", "0"),
		row(2, "10001", "AA", "", "", "", "", "1"),
		row(3, "10002", "AA", "", "", "", "", "1"),
		row(4, "90000", "Démarrage", "", "", "", "", "0"),
		row(5, "91000", "Plomb", "", "", "", "", "3"),
	})

	totals := Totals(db, defs)
	want := []CategoryTotal{
		{Key: "1_piles_portables", Label: "Piles portables", Entries: 2},
		{Key: "2_piles_industrielles", Label: "Piles industrielles", Entries: 0},
		{Key: "3_batteries_vehicules", Label: "Batteries véhicules", Entries: 1},
	}
	if len(totals) != len(want) {
		t.Fatalf("totals = %+v", totals)
	}
	sum := 0
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("totals[%d] = %+v, want %+v", i, totals[i], want[i])
		}
		sum += totals[i].Entries
	}
	if sum != db.EntryCount() || sum != stats.Entries {
		t.Errorf("sum %d, catalog %d, stats %d", sum, db.EntryCount(), stats.Entries)
	}
}

func TestTotals_FallsBackToName(t *testing.T) {
	defs := testDefinitions()
	db, _ := fold(testMeta, defs, nil, nil)

	totals := Totals(db, nil)
	if totals[0].Label != "Piles portables et piles bouton" {
		t.Errorf("Label = %q, want the category name", totals[0].Label)
	}
}
