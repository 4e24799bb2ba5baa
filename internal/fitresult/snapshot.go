// Package fitresult loads fit-result snapshots: JSON exports of the
// answers a fit-results library gives for one fit file. A snapshot
// carries the oracle's numbers as-is; nothing is recomputed here.
package fitresult

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrNotInSnapshot indicates a query the snapshot has no answer for,
// such as an intensity for a member set that was never exported.
var ErrNotInSnapshot = errors.New("fitresult: value not in snapshot")

// Reaction is one reaction group and its amplitudes, in fit order.
type Reaction struct {
	Name       string   `json:"name"`
	Amplitudes []string `json:"amplitudes"`
}

// Parameter is one free fit parameter.
type Parameter struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Error float64 `json:"error"`
}

// Snapshot is one exported fit result. It satisfies the extraction
// oracle boundary.
type Snapshot struct {
	Converged     bool                  `json:"valid"`
	MatrixStatus  float64               `json:"eMatrixStatus"`
	MinuitStatus  float64               `json:"lastMinuitCommandStatus"`
	LogLikelihood float64               `json:"likelihood"`
	Detected      [2]float64            `json:"detected_events"`
	Generated     [2]float64            `json:"generated_events"`
	Reactions     []Reaction            `json:"reactions"`
	Production    map[string][2]float64 `json:"production_coefficients"`
	Parameters    []Parameter           `json:"parameters"`
	Intensities   struct {
		Detected  map[string][2]float64 `json:"detected"`
		Generated map[string][2]float64 `json:"generated"`
	} `json:"intensities"`
	PhaseDiffs map[string][2]float64 `json:"phase_diffs"`

	params map[string]Parameter
}

// Load reads one snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("fitresult: parsing %s: %w", path, err)
	}
	s.params = make(map[string]Parameter, len(s.Parameters))
	for _, p := range s.Parameters {
		s.params[p.Name] = p
	}
	return &s, nil
}

func (s *Snapshot) Valid() bool { return s.Converged }

func (s *Snapshot) ReactionList() []string {
	names := make([]string, len(s.Reactions))
	for i, r := range s.Reactions {
		names[i] = r.Name
	}
	return names
}

func (s *Snapshot) AmpList(reaction string) []string {
	for _, r := range s.Reactions {
		if r.Name == reaction {
			return r.Amplitudes
		}
	}
	return nil
}

func (s *Snapshot) ScaledProductionParameter(amp string) (complex128, error) {
	c, ok := s.Production[amp]
	if !ok {
		return 0, fmt.Errorf("%w: production coefficient %q", ErrNotInSnapshot, amp)
	}
	return complex(c[0], c[1]), nil
}

func (s *Snapshot) TotalIntensity(acceptanceCorrected bool) (float64, float64) {
	if acceptanceCorrected {
		return s.Generated[0], s.Generated[1]
	}
	return s.Detected[0], s.Detected[1]
}

// IntensityKey canonicalizes a member list for snapshot lookup: the
// sorted full names joined by single spaces. Exporters must write
// intensity entries under this key.
func IntensityKey(amps []string) string {
	sorted := append([]string(nil), amps...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

func (s *Snapshot) Intensity(amps []string, acceptanceCorrected bool) (float64, float64, error) {
	m := s.Intensities.Detected
	if acceptanceCorrected {
		m = s.Intensities.Generated
	}
	v, ok := m[IntensityKey(amps)]
	if !ok {
		return 0, 0, fmt.Errorf("%w: intensity for %d-amplitude sum", ErrNotInSnapshot, len(amps))
	}
	return v[0], v[1], nil
}

func (s *Snapshot) PhaseDiff(ampA, ampB string) (float64, float64, error) {
	if v, ok := s.PhaseDiffs[ampA+" "+ampB]; ok {
		return v[0], v[1], nil
	}
	if v, ok := s.PhaseDiffs[ampB+" "+ampA]; ok {
		return v[0], v[1], nil
	}
	return 0, 0, fmt.Errorf("%w: phase difference %q / %q", ErrNotInSnapshot, ampA, ampB)
}

func (s *Snapshot) ParNameList() []string {
	names := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		names[i] = p.Name
	}
	return names
}

func (s *Snapshot) ParValue(name string) float64 { return s.params[name].Value }
func (s *Snapshot) ParError(name string) float64 { return s.params[name].Error }

func (s *Snapshot) EMatrixStatus() float64           { return s.MatrixStatus }
func (s *Snapshot) LastMinuitCommandStatus() float64 { return s.MinuitStatus }
func (s *Snapshot) Likelihood() float64              { return s.LogLikelihood }
