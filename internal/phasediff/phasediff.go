// Package phasediff enumerates the amplitude pairs whose relative
// phase is queried from a fit result. Phases are only defined between
// amplitudes of matching reflectivity, since opposite reflectivity
// sums do not interfere.
package phasediff

import (
	"github.com/san-kum/fitcsv/internal/amplitude"
)

// Pair holds the two full amplitude names needed to query one phase
// difference from the fit-results library.
type Pair struct {
	A, B string
}

// Set collects reflectivity-matched amplitude pairs for one file,
// keyed "tagA_tagB". A key and its reverse never both appear: the
// first-encountered ordering wins. Background amplitudes never enter
// on either side.
type Set struct {
	keys  []string
	pairs map[string]Pair
}

// NewSet returns an empty pair set. Build one per file.
func NewSet() *Set {
	return &Set{pairs: make(map[string]Pair)}
}

// Add registers the pairs between amp and every candidate that shares
// its reflectivity. Self-pairs, background on either side, and pairs
// already present under either ordering are skipped.
func (s *Set) Add(amp amplitude.Amplitude, candidates []amplitude.Amplitude) {
	if amp.Background {
		return
	}
	for _, other := range candidates {
		if other.Full == amp.Full || other.Background {
			continue
		}
		if other.QN.E != amp.QN.E {
			continue
		}
		key := amp.Tag + "_" + other.Tag
		if _, ok := s.pairs[key]; ok {
			continue
		}
		if _, ok := s.pairs[other.Tag+"_"+amp.Tag]; ok {
			continue
		}
		s.keys = append(s.keys, key)
		s.pairs[key] = Pair{A: amp.Full, B: other.Full}
	}
}

// Keys returns the registered pair keys in first-seen order.
func (s *Set) Keys() []string { return s.keys }

// Get returns the amplitude pair behind a key.
func (s *Set) Get(key string) (Pair, bool) {
	p, ok := s.pairs[key]
	return p, ok
}
