// Package extract flattens one opened fit result into a single record
// of named scalar values: standard fit outputs, free parameters,
// production coefficients, coherent-sum intensities at every grouping
// level, and phase differences between reflectivity partners.
package extract

import (
	"fmt"
	"strings"

	"github.com/san-kum/fitcsv/internal/amplitude"
	"github.com/san-kum/fitcsv/internal/coherent"
	"github.com/san-kum/fitcsv/internal/phasediff"
)

// FitResult is the boundary to the external fit-results library. The
// library owns all numerics; this package only decides what to ask for
// and how to flatten the answers.
type FitResult interface {
	// Valid reports whether the fit converged and the file is usable.
	Valid() bool

	// ReactionList returns the reaction names in the fit, in file order.
	ReactionList() []string

	// AmpList returns the fully qualified amplitude names of one
	// reaction ("reaction::sum::tag"), in file order.
	AmpList(reaction string) []string

	// ScaledProductionParameter returns the fitted complex production
	// coefficient for one amplitude, scaled by its fixed scale factor.
	ScaledProductionParameter(amp string) (complex128, error)

	// TotalIntensity returns the (value, error) of the total fit
	// intensity, acceptance corrected or not.
	TotalIntensity(acceptanceCorrected bool) (float64, float64)

	// Intensity returns the (value, error) of the coherent sum over
	// the given amplitudes, acceptance corrected or not.
	Intensity(amps []string, acceptanceCorrected bool) (float64, float64, error)

	// PhaseDiff returns the (value, error) of the phase difference
	// between two amplitudes of matching reflectivity.
	PhaseDiff(ampA, ampB string) (float64, float64, error)

	// ParNameList returns every free parameter name in the fit.
	ParNameList() []string
	ParValue(name string) float64
	ParError(name string) float64

	EMatrixStatus() float64
	LastMinuitCommandStatus() float64
	Likelihood() float64
}

// StandardColumns are the scalar outputs common to every fit result,
// in the column order they are written.
var StandardColumns = []string{
	"eMatrixStatus",
	"lastMinuitCommandStatus",
	"likelihood",
	"detected_events",
	"detected_events_err",
	"generated_events",
	"generated_events_err",
}

// Options controls record extraction.
type Options struct {
	// AcceptanceCorrected selects generated (true) or detected (false)
	// intensities.
	AcceptanceCorrected bool
	// Markers flags background amplitudes; nil means
	// amplitude.DefaultMarkers.
	Markers []string
}

func (o Options) markers() []string {
	if o.Markers == nil {
		return amplitude.DefaultMarkers
	}
	return o.Markers
}

// Extract builds the flattened record for one fit result. The
// grouping and pairing state is constructed from scratch on every
// call; nothing carries over between files.
//
// An invalid fit returns ErrInvalidFit. A malformed non-background
// amplitude tag is a hard error: a mis-sliced tag would corrupt
// grouping keys for the whole run.
func Extract(res FitResult, opts Options) (*Record, error) {
	if !res.Valid() {
		return nil, ErrInvalidFit
	}

	rec := newRecord()

	rec.set("eMatrixStatus", res.EMatrixStatus())
	rec.set("lastMinuitCommandStatus", res.LastMinuitCommandStatus())
	rec.set("likelihood", res.Likelihood())
	dv, de := res.TotalIntensity(false)
	rec.set("detected_events", dv)
	rec.set("detected_events_err", de)
	gv, ge := res.TotalIntensity(true)
	rec.set("generated_events", gv)
	rec.set("generated_events_err", ge)

	for _, name := range res.ParNameList() {
		// amplitude-scoped parameters are covered by the production
		// coefficients below
		if strings.Contains(name, amplitude.ScopeSep) {
			continue
		}
		if err := rec.setUnique(name, res.ParValue(name)); err != nil {
			return nil, err
		}
		rec.set(name+"_err", res.ParError(name))
	}

	dec := amplitude.Decoder{Markers: opts.markers()}
	idx := coherent.NewIndex()
	pairs := phasediff.NewSet()
	var prodTags []string
	prod := make(map[string]complex128)

	for _, reaction := range res.ReactionList() {
		names := res.AmpList(reaction)
		amps := make([]amplitude.Amplitude, 0, len(names))
		for _, full := range names {
			amp, err := dec.Parse(full)
			if err != nil {
				return nil, err
			}
			amps = append(amps, amp)
		}

		for _, amp := range amps {
			if err := idx.Add(amp); err != nil {
				return nil, err
			}
			if amp.Background {
				continue
			}
			if _, ok := prod[amp.Tag]; !ok {
				c, err := res.ScaledProductionParameter(amp.Full)
				if err != nil {
					return nil, fmt.Errorf("production coefficient %q: %w", amp.Full, err)
				}
				prodTags = append(prodTags, amp.Tag)
				prod[amp.Tag] = c
			}
			pairs.Add(amp, amps)
		}
	}

	for _, tag := range prodTags {
		c := prod[tag]
		rec.set(tag+"_re", real(c))
		rec.set(tag+"_im", imag(c))
	}

	for _, lv := range coherent.Levels {
		for _, key := range idx.Keys(lv) {
			v, e, err := res.Intensity(idx.Members(lv, key), opts.AcceptanceCorrected)
			if err != nil {
				return nil, fmt.Errorf("coherent sum %q: %w", key, err)
			}
			if err := rec.setUnique(key, v); err != nil {
				return nil, err
			}
			rec.set(key+"_err", e)
		}
	}

	for _, key := range pairs.Keys() {
		pair, _ := pairs.Get(key)
		v, e, err := res.PhaseDiff(pair.A, pair.B)
		if err != nil {
			return nil, fmt.Errorf("phase difference %q: %w", key, err)
		}
		if err := rec.setUnique(key, v); err != nil {
			return nil, err
		}
		rec.set(key+"_err", e)
	}

	return rec, nil
}
