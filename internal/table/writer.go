// Package table turns a sequence of flattened fit records into one
// csv table. The column schema is locked by the first record and every
// later record must match it exactly: schema drift is an error, never
// a silently shifted column.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/fitcsv/internal/extract"
)

// Writer appends fit records as csv rows. The first record written
// fixes the header and column order for the lifetime of the writer.
type Writer struct {
	cw      *csv.Writer
	columns []string
}

// NewWriter wraps an output stream. Nothing is written until the
// first record arrives.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// Locked reports whether the column schema has been fixed.
func (w *Writer) Locked() bool { return w.columns != nil }

// Columns returns the locked column order, nil before the first record.
func (w *Writer) Columns() []string { return w.columns }

// Write serializes one record. The first record locks the schema and
// emits the header row; later records are checked against the locked
// schema and rejected on drift. Each row is flushed immediately so a
// partial run leaves a usable table.
func (w *Writer) Write(rec *extract.Record) error {
	if !w.Locked() {
		w.columns = append([]string(nil), rec.Keys()...)
		if err := w.cw.Write(w.columns); err != nil {
			return err
		}
	} else if err := w.check(rec); err != nil {
		return err
	}

	row := make([]string, len(w.columns))
	for i, col := range w.columns {
		v, ok := rec.Value(col)
		if !ok {
			// unreachable after check, but never emit a shifted row
			return fmt.Errorf("%w: missing column %q", ErrSchemaDrift, col)
		}
		row[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	if err := w.cw.Write(row); err != nil {
		return err
	}
	w.cw.Flush()
	return w.cw.Error()
}

// check compares a record's key set against the locked schema and
// names the drifted columns.
func (w *Writer) check(rec *extract.Record) error {
	locked := make(map[string]bool, len(w.columns))
	for _, col := range w.columns {
		locked[col] = true
	}

	var extra []string
	seen := make(map[string]bool, rec.Len())
	for _, key := range rec.Keys() {
		seen[key] = true
		if !locked[key] {
			extra = append(extra, key)
		}
	}
	var missing []string
	for _, col := range w.columns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}

	if len(extra) == 0 && len(missing) == 0 {
		return nil
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing [%s]", strings.Join(missing, " ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected [%s]", strings.Join(extra, " ")))
	}
	return fmt.Errorf("%w: %s", ErrSchemaDrift, strings.Join(parts, ", "))
}
