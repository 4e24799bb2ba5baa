package amplitude

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		full string
		want QuantumNumbers
	}{
		{"etapi::ImagPosSign::p1p0S", QuantumNumbers{"p", "1", "p", "0", "S"}},
		{"etapi::RealNegSign::m1mpD", QuantumNumbers{"m", "1", "m", "p", "D"}},
		{"etapi::ImagPosSign::p2mmF", QuantumNumbers{"p", "2", "m", "m", "F"}},
		{"p0p0S", QuantumNumbers{"p", "0", "p", "0", "S"}},
	}

	for _, tt := range tests {
		amp, err := Parse(tt.full)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.full, err)
		}
		if amp.Background {
			t.Errorf("Parse(%q): unexpected background", tt.full)
		}
		if amp.QN != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.full, amp.QN, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	tags := []string{"p1p0S", "m1p0S", "p1mpP", "p2p0DD", "m0m0S"}
	for _, tag := range tags {
		amp, err := Parse("xx::ImagPosSign::" + tag)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tag, err)
		}
		if got := amp.QN.Tag(); got != tag {
			t.Errorf("round trip %q -> %q", tag, got)
		}
	}
}

func TestParseBackground(t *testing.T) {
	for _, full := range []string{"etapi::PosSum::Bkgd", "etapi::PosSum::isotropic"} {
		amp, err := Parse(full)
		if err != nil {
			t.Fatalf("Parse(%q): %v", full, err)
		}
		if !amp.Background {
			t.Errorf("Parse(%q): expected background", full)
		}
		if amp.QN != (QuantumNumbers{}) {
			t.Errorf("Parse(%q): background should not be decoded, got %+v", full, amp.QN)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	bad := []string{
		"xx::sum::p1p0",  // too short
		"xx::sum::x1p0S", // bad reflectivity
		"xx::sum::pXp0S", // spin not a digit
		"xx::sum::p1x0S", // bad parity
		"xx::sum::p1pxS", // bad m-projection
		"xx::sum::",      // empty tag
	}
	for _, full := range bad {
		if _, err := Parse(full); !errors.Is(err, ErrMalformedTag) {
			t.Errorf("Parse(%q): expected ErrMalformedTag, got %v", full, err)
		}
	}
}

func TestTag(t *testing.T) {
	tests := []struct {
		full, want string
	}{
		{"a::b::p1p0S", "p1p0S"},
		{"p1p0S", "p1p0S"},
		{"a::Bkgd", "Bkgd"},
	}
	for _, tt := range tests {
		if got := Tag(tt.full); got != tt.want {
			t.Errorf("Tag(%q) = %q, want %q", tt.full, got, tt.want)
		}
	}
}
