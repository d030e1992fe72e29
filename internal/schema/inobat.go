// Package schema describes the column layout of the INOBAT tariff export.
//
//	Article No. ; Type de pile ; ANSI ; Désignation ; IEC ; Remarques / poids ; Tarif HT
package schema

// Column positions in a data row.
const (
	ColArticleNo = iota
	ColType
	ColANSI
	ColDesignation
	ColIEC
	ColRemark
	ColTariff
)

// MinFields is the shortest row the converter looks at; shorter rows are
// section separators or trailing junk. A row of exactly MinFields has no
// tariff column and is skipped later as having an empty tariff.
const MinFields = 6
