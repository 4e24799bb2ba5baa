package amplitude

import (
	"fmt"
	"strings"
)

// ScopeSep separates the reaction, sum, and wave parts of a fully
// qualified amplitude name ("reaction::sum::eJPmL").
const ScopeSep = "::"

// DefaultMarkers are the substrings that mark an amplitude as
// isotropic background rather than a partial wave.
var DefaultMarkers = []string{"Bkgd", "iso"}

// QuantumNumbers holds the decoded fields of an eJPmL wave tag.
type QuantumNumbers struct {
	E string // reflectivity: p or m
	J string // total spin digit
	P string // parity: p or m
	M string // m-projection: p, m, or 0
	L string // orbital angular momentum letter(s): S, P, D, F, ...
}

// Tag reassembles the fixed-width wave code. For any successfully
// decoded amplitude this reproduces the original tag exactly.
func (q QuantumNumbers) Tag() string {
	return q.E + q.J + q.P + q.M + q.L
}

// Amplitude is one decoded amplitude name. Immutable once parsed.
type Amplitude struct {
	Full       string // reaction::sum::tag as stored by the fit
	Tag        string // part after the last scope separator
	Background bool   // isotropic background, QN fields unset
	QN         QuantumNumbers
}

// Tag returns the substring after the last scope separator, or the
// whole name when no separator is present.
func Tag(full string) string {
	if i := strings.LastIndex(full, ScopeSep); i >= 0 {
		return full[i+len(ScopeSep):]
	}
	return full
}

// Decoder parses fully qualified amplitude names. Markers lists the
// substrings that flag background amplitudes; an empty slice disables
// background detection.
type Decoder struct {
	Markers []string
}

// Parse decodes one fully qualified amplitude name. Background
// amplitudes are recognized first and returned undecoded. Anything
// else must be a valid fixed-width eJPmL tag.
func (d Decoder) Parse(full string) (Amplitude, error) {
	tag := Tag(full)
	for _, m := range d.Markers {
		if strings.Contains(full, m) {
			return Amplitude{Full: full, Tag: tag, Background: true}, nil
		}
	}

	qn, err := decodeTag(tag)
	if err != nil {
		return Amplitude{}, fmt.Errorf("amplitude %q: %w", full, err)
	}
	return Amplitude{Full: full, Tag: tag, QN: qn}, nil
}

// Parse decodes using the default background markers.
func Parse(full string) (Amplitude, error) {
	return Decoder{Markers: DefaultMarkers}.Parse(full)
}

// decodeTag applies the fixed-width convention: position 0 is the
// reflectivity, 1 the spin, 2 the parity, 3 the m-projection, and
// everything from 4 on is the orbital letter.
func decodeTag(tag string) (QuantumNumbers, error) {
	if len(tag) < 5 {
		return QuantumNumbers{}, fmt.Errorf("%w: tag %q has %d characters, need at least 5", ErrMalformedTag, tag, len(tag))
	}
	qn := QuantumNumbers{
		E: tag[0:1],
		J: tag[1:2],
		P: tag[2:3],
		M: tag[3:4],
		L: tag[4:],
	}
	if !isSign(qn.E) {
		return QuantumNumbers{}, fmt.Errorf("%w: tag %q reflectivity %q not in {p, m}", ErrMalformedTag, tag, qn.E)
	}
	if qn.J[0] < '0' || qn.J[0] > '9' {
		return QuantumNumbers{}, fmt.Errorf("%w: tag %q spin %q is not a digit", ErrMalformedTag, tag, qn.J)
	}
	if !isSign(qn.P) {
		return QuantumNumbers{}, fmt.Errorf("%w: tag %q parity %q not in {p, m}", ErrMalformedTag, tag, qn.P)
	}
	if !isSign(qn.M) && qn.M != "0" {
		return QuantumNumbers{}, fmt.Errorf("%w: tag %q m-projection %q not in {p, m, 0}", ErrMalformedTag, tag, qn.M)
	}
	return qn, nil
}

func isSign(s string) bool { return s == "p" || s == "m" }

// ValidTag reports whether tag decodes as an eJPmL wave code.
func ValidTag(tag string) bool {
	_, err := decodeTag(tag)
	return err == nil
}
