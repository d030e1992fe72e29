// Package core provides the business logic for converting the INOBAT tariff
// export into a catalog.
//
// This package contains all domain logic independent of file layout, output
// format or command-line handling. It can be driven by the converter binary
// or by tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Category Definitions: Registered via the registry, each category knows
//     its output key, its labels, the leading article digits it owns and the
//     optional columns its entries carry.
//   - Classification: [Classify] decides, row by row, whether a row opens a
//     subcategory, is a tariff entry, or is skipped (and why).
//   - Builder: [Builder] folds classified rows into a [Database], keeping one
//     "current subcategory" cursor per category.
//   - Input: [NewInputReader] strips the BOM and decodes UTF-8 or
//     Windows-1252 before [ReadRows] splits the file into rows.
//
// # Category Registry
//
// Categories are registered at init time using [Register]:
//
//	core.Register(CategoryDefinition{
//	    Key:           "2_piles_industrielles",
//	    Order:         2,
//	    Name:          "Piles industrielles",
//	    LeadingDigits: "8",
//	    EntryFields:   []EntryField{FieldRemark},
//	})
//
// # Row Handling
//
// Rows are never rejected with an error. A row that does not fit is skipped
// and its [SkipReason] is counted in [Stats]; the catalog only ever contains
// rows that passed every rule.
//
// # Error Handling
//
// Fatal errors (missing input, bad encoding, unwritable output) are mapped to
// user-friendly messages using [MapError]. Each error class has a code:
//
//   - CFG001: configuration errors
//   - FILE001-FILE004: input file errors
//   - OUT001-OUT002: output errors
//   - RUN001: cancelled run
package core
