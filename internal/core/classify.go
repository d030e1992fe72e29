package core

// classify.go decides what each row of the export is.
//
// The export mixes title lines, column headings, blank separators and
// formula errors into the data, so classification is a sequence of rules
// where the first failing rule skips the row:
//
//  1. fewer than 6 fields                          -> SkipShortRow
//  2. empty article number                         -> SkipBlankArticle
//  3. article starts with "Article" or "INOBAT"    -> SkipTitleRow
//  4. tariff is "#REF!"                            -> SkipTariffError
//  5. tariff is empty                              -> SkipEmptyTariff
//  6. tariff is not a number                       -> SkipInvalidTariff
//  7. no category owns the first character         -> SkipUnknownCategory
//  8. 5-character article ending in "0000"         -> RowHeader
//  9. article made of digits                       -> RowDetail
//  10. anything else                               -> SkipNonNumericArticle
//
// Whether a detail row has a subcategory to land in is known only while
// folding; see Builder.

import (
	"strings"

	"github.com/JonMunkholm/inobat/internal/schema"
	"github.com/shopspring/decimal"
)

// RowKind is the role of a row in the export.
type RowKind int

const (
	RowSkip RowKind = iota
	RowHeader
	RowDetail
)

func (k RowKind) String() string {
	switch k {
	case RowHeader:
		return "header"
	case RowDetail:
		return "detail"
	default:
		return "skip"
	}
}

// SkipReason explains why a row did not make it into the catalog.
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipShortRow          SkipReason = "short_row"
	SkipBlankArticle      SkipReason = "blank_article"
	SkipTitleRow          SkipReason = "title_row"
	SkipTariffError       SkipReason = "tariff_error"
	SkipEmptyTariff       SkipReason = "empty_tariff"
	SkipInvalidTariff     SkipReason = "invalid_tariff"
	SkipUnknownCategory   SkipReason = "unknown_category"
	SkipNonNumericArticle SkipReason = "non_numeric_article"
	SkipOrphanDetail      SkipReason = "orphan_detail"
	SkipUnreadableLine    SkipReason = "unreadable_line"
)

// SkipReasons lists every reason in reporting order.
var SkipReasons = []SkipReason{
	SkipShortRow,
	SkipBlankArticle,
	SkipTitleRow,
	SkipTariffError,
	SkipEmptyTariff,
	SkipInvalidTariff,
	SkipUnknownCategory,
	SkipNonNumericArticle,
	SkipOrphanDetail,
	SkipUnreadableLine,
}

// titlePrefixes mark the sheet title and column heading rows.
var titlePrefixes = []string{"Article", "INOBAT"}

// RawRow is one record of the export with its 1-based line number.
type RawRow struct {
	Line   int
	Fields []string
}

// Field returns the cleaned value at column i, or "" if the row is shorter.
func (r RawRow) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return CleanCell(r.Fields[i])
}

// Classification is the outcome of Classify.
type Classification struct {
	Kind      RowKind
	Reason    SkipReason // set when Kind is RowSkip
	Category  CategoryDefinition
	ArticleNo string
	Tariff    decimal.Decimal
}

func skip(reason SkipReason) Classification {
	return Classification{Kind: RowSkip, Reason: reason}
}

// Classify applies the row rules against the given categories.
func Classify(row RawRow, defs []CategoryDefinition) Classification {
	if len(row.Fields) < schema.MinFields {
		return skip(SkipShortRow)
	}

	articleNo := row.Field(schema.ColArticleNo)
	if articleNo == "" {
		return skip(SkipBlankArticle)
	}
	for _, p := range titlePrefixes {
		if strings.HasPrefix(articleNo, p) {
			return skip(SkipTitleRow)
		}
	}

	tariff, err := ParseTariff(row.Field(schema.ColTariff))
	switch {
	case err == errTariffFormula:
		return skip(SkipTariffError)
	case err == errEmptyTariff:
		return skip(SkipEmptyTariff)
	case err != nil:
		return skip(SkipInvalidTariff)
	}

	def, ok := categoryFor(articleNo, defs)
	if !ok {
		return skip(SkipUnknownCategory)
	}

	c := Classification{Category: def, ArticleNo: articleNo, Tariff: tariff}
	switch {
	case IsHeaderArticle(articleNo):
		c.Kind = RowHeader
	case IsDigits(articleNo):
		c.Kind = RowDetail
	default:
		c.Kind = RowSkip
		c.Reason = SkipNonNumericArticle
	}
	return c
}

func categoryFor(articleNo string, defs []CategoryDefinition) (CategoryDefinition, bool) {
	for _, d := range defs {
		if d.Owns(articleNo) {
			return d, true
		}
	}
	return CategoryDefinition{}, false
}
