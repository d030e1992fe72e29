package core

// convert.go turns raw cells into typed values.
//
// The export is produced by hand from a spreadsheet, so cells carry the usual
// artifacts:
//   - French decimal commas ("0,10")
//   - spaces used as thousands separators, including non-breaking ones
//   - spreadsheet formula errors ("#REF!") in place of a tariff

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// TariffErrorMarker is what the spreadsheet writes when a tariff formula
// points at a deleted cell.
const TariffErrorMarker = "#REF!"

var (
	errEmptyTariff   = errors.New("empty tariff")
	errTariffFormula = errors.New("tariff formula error")
)

var tariffReplacer = strings.NewReplacer(
	",", ".",
	" ", "",
	"\u00a0", "", // no-break space
	"\u202f", "", // narrow no-break space
)

// ParseTariff converts a tariff cell to a decimal.
// Comma is accepted as the decimal separator and spaces are ignored.
// Zero is a valid tariff.
func ParseTariff(s string) (decimal.Decimal, error) {
	s = CleanCell(s)
	if s == "" {
		return decimal.Zero, errEmptyTariff
	}
	if strings.Contains(s, TariffErrorMarker) {
		return decimal.Zero, errTariffFormula
	}

	d, err := decimal.NewFromString(tariffReplacer.Replace(s))
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// CleanCell removes surrounding whitespace from a cell value.
func CleanCell(s string) string {
	return strings.TrimSpace(s)
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsHeaderArticle reports whether an article number opens a subcategory:
// five characters ending in "0000", such as 10000 or 80000.
func IsHeaderArticle(articleNo string) bool {
	return len(articleNo) == 5 && articleNo[1:] == "0000"
}
