package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// RowFunc receives each record read from the export. A non-nil parseErr
// means the line could not be split into fields; row then holds the line
// number only. Returning an error stops the read.
type RowFunc func(row RawRow, parseErr error) error

// ReadRows splits the export into records and hands each to fn.
//
// Quoting mistakes in a line are reported to fn and reading continues with
// the next line. Any other failure (I/O, encoding) aborts the read.
func ReadRows(r io.Reader, delimiter rune, fn RowFunc) error {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return fmt.Errorf("read csv: %w", err)
			}
			if ferr := fn(RawRow{Line: perr.StartLine}, err); ferr != nil {
				return ferr
			}
			continue
		}

		line, _ := cr.FieldPos(0)
		if ferr := fn(RawRow{Line: line, Fields: record}, nil); ferr != nil {
			return ferr
		}
	}
}
