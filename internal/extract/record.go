package extract

import "fmt"

// Record is one flattened fit result: an ordered list of column names
// and their scalar values. Order is insertion order and defines the
// csv schema when the record is the first of a run.
type Record struct {
	keys   []string
	values map[string]float64
}

func newRecord() *Record {
	return &Record{values: make(map[string]float64)}
}

func (r *Record) set(key string, v float64) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// setUnique guards sections whose keys are derived from file content
// against colliding with an earlier column.
func (r *Record) setUnique(key string, v float64) error {
	if _, ok := r.values[key]; ok {
		return fmt.Errorf("extract: duplicate column %q", key)
	}
	r.set(key, v)
	return nil
}

// Keys returns the column names in insertion order.
func (r *Record) Keys() []string { return r.keys }

// Value returns the value for one column.
func (r *Record) Value(key string) (float64, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of columns.
func (r *Record) Len() int { return len(r.keys) }
