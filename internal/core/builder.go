package core

import (
	"log/slog"

	"github.com/JonMunkholm/inobat/internal/schema"
)

// Builder folds rows, top to bottom, into a Database.
//
// A detail row is attached to the subcategory most recently opened in its own
// category. The cursor lives in the Builder, so two Builders never share
// state.
type Builder struct {
	defs   []CategoryDefinition
	db     *Database
	cursor map[string]*Subcategory
	stats  Stats
	log    *slog.Logger
}

// NewBuilder returns a Builder for an empty catalog with one (empty)
// category per definition, in definition order.
func NewBuilder(meta Metadata, defs []CategoryDefinition, kw *OrderedMap[[]string]) *Builder {
	ordered := make([]CategoryDefinition, len(defs))
	copy(ordered, defs)
	sortDefinitions(ordered)

	db := &Database{
		Source:        meta.Source,
		EffectiveDate: meta.EffectiveDate,
		VATRate:       meta.VATRate,
	}
	for _, d := range ordered {
		db.Categories.Set(d.Key, &Category{
			Name:        d.Name,
			Description: d.Description,
			Exemption:   d.Exemption,
		})
	}
	if kw != nil {
		kw.Each(func(tag string, syn []string) {
			db.Keywords.Set(tag, syn)
		})
	}

	return &Builder{
		defs:   ordered,
		db:     db,
		cursor: make(map[string]*Subcategory, len(ordered)),
		stats:  newStats(),
		log:    slog.Default(),
	}
}

// WithLogger sets the logger used for row diagnostics.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.log = l
	}
	return b
}

// Apply classifies one row and folds it into the catalog.
// The returned classification reports what happened; a detail row with no
// open subcategory comes back as RowSkip with SkipOrphanDetail.
func (b *Builder) Apply(row RawRow) Classification {
	b.stats.Rows++

	c := Classify(row, b.defs)
	switch c.Kind {
	case RowHeader:
		b.openSubcategory(c, row)
	case RowDetail:
		sub := b.cursor[c.Category.Key]
		if sub == nil {
			c.Kind = RowSkip
			c.Reason = SkipOrphanDetail
			b.skipped(row.Line, c.Reason)
			break
		}
		sub.Entries = append(sub.Entries, buildEntry(c, row))
		b.stats.Entries++
	default:
		b.skipped(row.Line, c.Reason)
	}

	return c
}

// SkipUnreadable records a line the CSV reader could not split.
func (b *Builder) SkipUnreadable(line int) {
	b.stats.Rows++
	b.skipped(line, SkipUnreadableLine)
}

// Database returns the catalog built so far.
func (b *Builder) Database() *Database {
	return b.db
}

// Stats returns a copy of the fold counters.
func (b *Builder) Stats() Stats {
	return b.stats.clone()
}

// Definitions returns the categories in output order.
func (b *Builder) Definitions() []CategoryDefinition {
	out := make([]CategoryDefinition, len(b.defs))
	copy(out, b.defs)
	return out
}

func (b *Builder) openSubcategory(c Classification, row RawRow) {
	label := row.Field(schema.ColType)
	key := SubcategoryKey(c.ArticleNo, label)
	cat, _ := b.db.Categories.Get(c.Category.Key)

	if cat.Subcategories.Has(key) {
		// Same position, fresh entries: a later header with the same code
		// and label supersedes the earlier block.
		b.stats.Replaced++
		b.log.Warn("duplicate subcategory header replaces earlier block",
			"line", row.Line, "category", c.Category.Key, "subcategory", key)
	}

	sub := &Subcategory{
		Code:    c.ArticleNo,
		Name:    label,
		Entries: []Entry{},
	}
	cat.Subcategories.Set(key, sub)
	b.cursor[c.Category.Key] = sub
	b.stats.Headers++
}

func (b *Builder) skipped(line int, reason SkipReason) {
	b.stats.Skipped[reason]++
	b.log.Debug("row skipped", "line", line, "reason", string(reason))
}

func buildEntry(c Classification, row RawRow) Entry {
	def := c.Category
	e := Entry{
		ArticleNo: c.ArticleNo,
		Tariff:    NewTariff(c.Tariff),
	}

	if def.Carries(FieldANSI) {
		e.ANSI = row.Field(schema.ColANSI)
	}
	if def.Carries(FieldIEC) {
		e.IEC = row.Field(schema.ColIEC)
	}
	if def.Carries(FieldDesignation) {
		e.Designation = row.Field(schema.ColDesignation)
	}
	if def.Carries(FieldRemark) {
		e.Remark = row.Field(schema.ColRemark)
		if w, ok := ParseWeightRange(e.Remark); ok {
			lo, hi := w.Min, w.Max
			e.WeightMin = &lo
			e.WeightMax = &hi
		}
	}

	return e
}
