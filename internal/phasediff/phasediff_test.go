package phasediff

import (
	"testing"

	"github.com/san-kum/fitcsv/internal/amplitude"
)

func parse(t *testing.T, full string) amplitude.Amplitude {
	t.Helper()
	amp, err := amplitude.Parse(full)
	if err != nil {
		t.Fatalf("Parse(%q): %v", full, err)
	}
	return amp
}

func addAll(s *Set, amps []amplitude.Amplitude) {
	for _, a := range amps {
		s.Add(a, amps)
	}
}

func TestAddCanonicalOrder(t *testing.T) {
	amps := []amplitude.Amplitude{
		parse(t, "xx::a::p1p0S"),
		parse(t, "xx::a::p1mpP"),
	}

	s := NewSet()
	addAll(s, amps)

	keys := s.Keys()
	if len(keys) != 1 || keys[0] != "p1p0S_p1mpP" {
		t.Fatalf("expected single key p1p0S_p1mpP, got %v", keys)
	}
	if _, ok := s.Get("p1mpP_p1p0S"); ok {
		t.Error("reverse key must be absent")
	}
	pair, _ := s.Get("p1p0S_p1mpP")
	if pair.A != "xx::a::p1p0S" || pair.B != "xx::a::p1mpP" {
		t.Errorf("unexpected pair %+v", pair)
	}
}

func TestAddSkipsMismatchedReflectivity(t *testing.T) {
	amps := []amplitude.Amplitude{
		parse(t, "xx::a::p1p0S"),
		parse(t, "xx::b::m1p0S"),
	}

	s := NewSet()
	addAll(s, amps)

	if len(s.Keys()) != 0 {
		t.Errorf("expected no pairs across reflectivity, got %v", s.Keys())
	}
}

func TestAddSkipsBackground(t *testing.T) {
	amps := []amplitude.Amplitude{
		parse(t, "xx::a::p1p0S"),
		parse(t, "xx::a::p1mpP"),
		parse(t, "xx::a::Bkgd"),
	}

	s := NewSet()
	addAll(s, amps)

	if len(s.Keys()) != 1 {
		t.Fatalf("expected 1 pair, got %v", s.Keys())
	}
	for _, key := range s.Keys() {
		pair, _ := s.Get(key)
		if pair.A == "xx::a::Bkgd" || pair.B == "xx::a::Bkgd" {
			t.Errorf("background must never pair: %+v", pair)
		}
	}
}

func TestAddCountsAllMatchedPairs(t *testing.T) {
	amps := []amplitude.Amplitude{
		parse(t, "xx::a::p1p0S"),
		parse(t, "xx::a::p1p0D"),
		parse(t, "xx::a::p1mpP"),
		parse(t, "xx::b::m1p0S"),
		parse(t, "xx::b::m1p0D"),
	}

	s := NewSet()
	addAll(s, amps)

	// 3 positive amplitudes give 3 pairs, 2 negative give 1
	if len(s.Keys()) != 4 {
		t.Errorf("expected 4 pairs, got %d: %v", len(s.Keys()), s.Keys())
	}
	for _, key := range s.Keys() {
		pair, _ := s.Get(key)
		a := amplitude.Tag(pair.A)
		b := amplitude.Tag(pair.B)
		if a[0] != b[0] {
			t.Errorf("pair %s crosses reflectivity", key)
		}
	}
}

func TestAddIdempotentAcrossReactions(t *testing.T) {
	// the same wave content fit in two orientations must register
	// each pair once
	r1 := []amplitude.Amplitude{
		parse(t, "etapi_000::a::p1p0S"),
		parse(t, "etapi_000::a::p1mpP"),
	}
	r2 := []amplitude.Amplitude{
		parse(t, "etapi_045::a::p1p0S"),
		parse(t, "etapi_045::a::p1mpP"),
	}

	s := NewSet()
	addAll(s, r1)
	addAll(s, r2)

	if len(s.Keys()) != 1 {
		t.Errorf("expected 1 pair across reactions, got %v", s.Keys())
	}
}
