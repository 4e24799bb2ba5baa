// Package coherent groups decoded amplitudes into the fixed hierarchy
// of coherent sums used when flattening fit results.
//
// Seven grouping levels exist, each named by the quantum numbers its
// keys retain. Dropping a field from the key means the intensity is
// coherently summed over that field:
//
//	eJPmL  single amplitudes
//	JPmL   sum reflectivity
//	eJPL   sum m-projection
//	JPL    sum {reflectivity, m-projection}
//	eJP    sum {m-projection, angular momenta}
//	JP     sum {reflectivity, m-projection, angular momenta}
//	e      sum all except reflectivity
//
// An [Index] is built fresh for every fit file; it computes membership
// only. The fit-results library computes the coherent intensity and
// its uncertainty for a member list.
package coherent

import (
	"fmt"

	"github.com/san-kum/fitcsv/internal/amplitude"
)

// Level names one grouping level by the quantum numbers it retains.
type Level string

const (
	LevelEJPmL Level = "eJPmL"
	LevelJPmL  Level = "JPmL"
	LevelEJPL  Level = "eJPL"
	LevelJPL   Level = "JPL"
	LevelEJP   Level = "eJP"
	LevelJP    Level = "JP"
	LevelE     Level = "e"
)

// Levels lists all grouping levels, finest first. Iteration over an
// Index always follows this order.
var Levels = []Level{LevelEJPmL, LevelJPmL, LevelEJPL, LevelJPL, LevelEJP, LevelJP, LevelE}

// BackgroundKey is the dedicated eJPmL bucket for isotropic background
// amplitudes. Background appears in no other level.
const BackgroundKey = "Bkgd"

// Key projects a decoded amplitude onto one level by concatenating the
// retained fields in e, J, P, m, L order.
func Key(level Level, qn amplitude.QuantumNumbers) string {
	switch level {
	case LevelEJPmL:
		return qn.E + qn.J + qn.P + qn.M + qn.L
	case LevelJPmL:
		return qn.J + qn.P + qn.M + qn.L
	case LevelEJPL:
		return qn.E + qn.J + qn.P + qn.L
	case LevelJPL:
		return qn.J + qn.P + qn.L
	case LevelEJP:
		return qn.E + qn.J + qn.P
	case LevelJP:
		return qn.J + qn.P
	case LevelE:
		return qn.E
	}
	return ""
}

// Index holds the per-file CoherentSumKey -> member amplitude maps for
// all seven levels, with first-seen key and member ordering.
type Index struct {
	buckets map[Level]*bucketSet
	seen    map[string]bool // full names, duplicates forbidden
}

type bucketSet struct {
	keys    []string
	members map[string][]string
}

func (b *bucketSet) add(key, full string) {
	if _, ok := b.members[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.members[key] = append(b.members[key], full)
}

// NewIndex returns an empty index with all seven levels initialized.
func NewIndex() *Index {
	idx := &Index{
		buckets: make(map[Level]*bucketSet, len(Levels)),
		seen:    make(map[string]bool),
	}
	for _, lv := range Levels {
		idx.buckets[lv] = &bucketSet{members: make(map[string][]string)}
	}
	return idx
}

// Add inserts one decoded amplitude into every level it belongs to.
// Background amplitudes land only in the eJPmL background bucket.
// Adding the same full name twice is an error.
func (idx *Index) Add(amp amplitude.Amplitude) error {
	if idx.seen[amp.Full] {
		return fmt.Errorf("coherent: duplicate amplitude %q", amp.Full)
	}
	idx.seen[amp.Full] = true

	if amp.Background {
		idx.buckets[LevelEJPmL].add(BackgroundKey, amp.Full)
		return nil
	}
	for _, lv := range Levels {
		idx.buckets[lv].add(Key(lv, amp.QN), amp.Full)
	}
	return nil
}

// Keys returns the level's coherent-sum keys in first-seen order.
func (idx *Index) Keys(level Level) []string {
	return idx.buckets[level].keys
}

// Members returns the full amplitude names collapsing to key at the
// given level, in first-seen order. Nil for an unknown key.
func (idx *Index) Members(level Level, key string) []string {
	return idx.buckets[level].members[key]
}
