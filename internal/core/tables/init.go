// Package tables registers the INOBAT categories and keyword table with the
// core registry. Import this package to ensure they are registered.
package tables

// This file exists to provide a single import point.
// Each file uses init() to register its definitions.
