package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Frame is a produced table loaded back into memory, all values
// numeric.
type Frame struct {
	Header []string
	Rows   [][]float64

	index map[string]int
}

// LoadCSV reads a table written by this tool.
func LoadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFrame(f)
}

// ReadFrame parses a header row plus numeric data rows.
func ReadFrame(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("analysis: reading header: %w", err)
	}

	fr := &Frame{Header: header, index: make(map[string]int, len(header))}
	for i, name := range header {
		fr.index[name] = i
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("analysis: row %d column %q: %w", len(fr.Rows)+1, header[i], err)
			}
			row[i] = v
		}
		fr.Rows = append(fr.Rows, row)
	}
	return fr, nil
}

// Column returns one column by name.
func (f *Frame) Column(name string) ([]float64, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	col := make([]float64, len(f.Rows))
	for r, row := range f.Rows {
		col[r] = row[i]
	}
	return col, true
}

// WriteCSV serializes the frame back out.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Header); err != nil {
		return err
	}
	for _, row := range f.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WrapPhases converts every phase-difference column from radians to
// degrees wrapped into (-180, 180], and the matching _err columns to
// degrees. Returns the number of phase columns converted.
func WrapPhases(f *Frame) int {
	wrapped := 0
	for i, name := range f.Header {
		if strings.HasSuffix(name, "_err") || !isPhaseDiff(name) {
			continue
		}
		wrapped++
		for _, row := range f.Rows {
			row[i] = wrapDegrees(row[i] * 180 / math.Pi)
		}
		if j, ok := f.index[name+"_err"]; ok {
			for _, row := range f.Rows {
				row[j] = row[j] * 180 / math.Pi
			}
		}
	}
	return wrapped
}

// wrapDegrees maps any angle onto (-180, 180].
func wrapDegrees(deg float64) float64 {
	w := math.Mod(deg+180, 360)
	if w <= 0 {
		w += 360
	}
	return w - 180
}
