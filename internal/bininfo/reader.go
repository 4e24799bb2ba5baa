package bininfo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// DefaultMassColumn is the invariant-mass column read when none is
// configured.
const DefaultMassColumn = "M_FinalState"

// ReadEvents loads the weighted events of one pre-cut data file. The
// file must be a csv with a header row carrying t, E_Beam, Weight, and
// the configured mass column.
func ReadEvents(path, massColumn string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("bininfo: reading header of %s: %w", path, err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, need := range []string{"t", "E_Beam", massColumn, "Weight"} {
		if _, ok := cols[need]; !ok {
			return nil, fmt.Errorf("bininfo: %s has no %q column", path, need)
		}
	}

	var events []Event
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bininfo: reading %s: %w", path, err)
		}
		ev := Event{}
		fields := []struct {
			name string
			dst  *float64
		}{
			{"t", &ev.T},
			{"E_Beam", &ev.EBeam},
			{massColumn, &ev.Mass},
			{"Weight", &ev.Weight},
		}
		for _, fd := range fields {
			v, err := strconv.ParseFloat(record[cols[fd.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("bininfo: %s column %q: %w", path, fd.name, err)
			}
			*fd.dst = v
		}
		events = append(events, ev)
	}
	return events, nil
}

// Run summarizes each file into one csv row, written in file order.
// Any unreadable file aborts the run: bin info rows must line up with
// the fit-result rows they annotate.
func Run(files []string, massColumn string, out io.Writer) (int, error) {
	if massColumn == "" {
		massColumn = DefaultMassColumn
	}

	w := csv.NewWriter(out)
	if err := w.Write(Columns); err != nil {
		return 0, err
	}

	rows := 0
	for _, path := range files {
		events, err := ReadEvents(path, massColumn)
		if err != nil {
			return rows, err
		}
		values := Summarize(events)
		row := make([]string, len(Columns))
		for i, col := range Columns {
			row[i] = strconv.FormatFloat(values[col], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return rows, err
		}
		rows++
		w.Flush()
	}
	return rows, w.Error()
}
