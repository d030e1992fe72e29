// Package core provides the business logic for the INOBAT converter.
// This package has no I/O side effects beyond the readers it is handed.
package core

import (
	"github.com/shopspring/decimal"
)

// OpenEndedWeight is the poidsMax sentinel for "and above".
const OpenEndedWeight = 999999

// EntryField names an optional column copied onto an Entry.
type EntryField string

const (
	FieldANSI        EntryField = "ansi"
	FieldIEC         EntryField = "iec"
	FieldDesignation EntryField = "designation"
	FieldRemark      EntryField = "remarque"
)

// CategoryDefinition contains everything needed to route rows to a category.
type CategoryDefinition struct {
	Key           string       // Output key: "1_piles_portables"
	Order         int          // Position in the output document
	Name          string       // Display name (nom)
	Description   string       // Display description
	Exemption     string       // Optional exemption note
	ReportLabel   string       // Label used in the console statistics
	LeadingDigits string       // Article number first characters owned by this category
	EntryFields   []EntryField // Optional columns carried by entries
}

// Owns reports whether an article number belongs to this category.
func (d CategoryDefinition) Owns(articleNo string) bool {
	if articleNo == "" {
		return false
	}
	first := articleNo[0]
	for i := 0; i < len(d.LeadingDigits); i++ {
		if d.LeadingDigits[i] == first {
			return true
		}
	}
	return false
}

// Carries reports whether entries of this category include field f.
func (d CategoryDefinition) Carries(f EntryField) bool {
	for _, ef := range d.EntryFields {
		if ef == f {
			return true
		}
	}
	return false
}

// Metadata is stamped at the top of the catalog.
type Metadata struct {
	Source        string
	EffectiveDate string
	VATRate       float64
}

// Database is the root of the generated catalog.
type Database struct {
	Source        string                `json:"source"`
	EffectiveDate string                `json:"dateValidite"`
	VATRate       float64               `json:"tva"`
	Categories    OrderedMap[*Category] `json:"categories"`
	Keywords      OrderedMap[[]string]  `json:"motsClefs"`
}

// Category groups the subcategories of one battery family.
type Category struct {
	Name          string                   `json:"nom"`
	Description   string                   `json:"description"`
	Exemption     string                   `json:"exemption,omitempty"`
	Subcategories OrderedMap[*Subcategory] `json:"subcategories"`
}

// EntryCount returns the number of entries across all subcategories.
func (c *Category) EntryCount() int {
	n := 0
	c.Subcategories.Each(func(_ string, s *Subcategory) {
		n += len(s.Entries)
	})
	return n
}

// Subcategory is opened by a header row and collects the rows below it.
type Subcategory struct {
	Code    string  `json:"code"`
	Name    string  `json:"nom"`
	Entries []Entry `json:"entries"`
}

// Entry is one billable tariff line.
type Entry struct {
	ArticleNo   string `json:"articleNo"`
	Tariff      Tariff `json:"tarifHT"`
	ANSI        string `json:"ansi,omitempty"`
	IEC         string `json:"iec,omitempty"`
	Designation string `json:"designation,omitempty"`
	Remark      string `json:"remarque,omitempty"`
	WeightMin   *int   `json:"poidsMin,omitempty"`
	WeightMax   *int   `json:"poidsMax,omitempty"`
}

// WeightRange is a parsed remark such as "1-24 grammes".
type WeightRange struct {
	Min int
	Max int
}

// Tariff is a tax-exclusive amount. It is written to JSON as a bare number
// rather than the quoted string decimal.Decimal produces by default.
type Tariff struct {
	decimal.Decimal
}

// NewTariff wraps a decimal.
func NewTariff(d decimal.Decimal) Tariff {
	return Tariff{Decimal: d}
}

// MarshalJSON implements json.Marshaler.
func (t Tariff) MarshalJSON() ([]byte, error) {
	return []byte(t.Decimal.String()), nil
}

// EntryCount returns the number of entries in the whole catalog.
func (db *Database) EntryCount() int {
	n := 0
	db.Categories.Each(func(_ string, c *Category) {
		n += c.EntryCount()
	})
	return n
}
