// Package analysis helps downstream consumers of a produced fit-result
// table: it classifies the header back into its sections and converts
// phase-difference columns into wrapped degrees.
package analysis

import (
	"strings"

	"github.com/san-kum/fitcsv/internal/amplitude"
	"github.com/san-kum/fitcsv/internal/coherent"
	"github.com/san-kum/fitcsv/internal/extract"
)

// Columns is the classification of one table header. Each list holds
// base column names in header order; the matching _err (or _re/_im)
// companions are implied.
type Columns struct {
	Standard     []string
	Parameters   []string
	Production   []string
	CoherentSums map[coherent.Level][]string
	PhaseDiffs   []string
}

// Classify sorts a header into standard outputs, free parameters,
// production coefficients, coherent sums per grouping level, and
// phase differences.
func Classify(header []string) Columns {
	standard := make(map[string]bool, len(extract.StandardColumns))
	for _, name := range extract.StandardColumns {
		standard[name] = true
	}

	c := Columns{CoherentSums: make(map[coherent.Level][]string)}
	seen := make(map[string]bool)

	for _, name := range header {
		if standard[name] {
			c.Standard = append(c.Standard, name)
			continue
		}

		base := strings.TrimSuffix(name, "_err")
		if seen[base] {
			continue
		}

		if strings.HasSuffix(name, "_re") || strings.HasSuffix(name, "_im") {
			if tag := name[:len(name)-3]; amplitude.ValidTag(tag) {
				if !seen[tag] {
					seen[tag] = true
					c.Production = append(c.Production, tag)
				}
				continue
			}
		}
		if isPhaseDiff(base) {
			seen[base] = true
			c.PhaseDiffs = append(c.PhaseDiffs, base)
			continue
		}
		if lv, ok := sumLevel(base); ok {
			seen[base] = true
			c.CoherentSums[lv] = append(c.CoherentSums[lv], base)
			continue
		}
		seen[base] = true
		c.Parameters = append(c.Parameters, base)
	}
	return c
}

// isPhaseDiff reports whether name is "tagA_tagB" with two valid wave
// tags of matching reflectivity.
func isPhaseDiff(name string) bool {
	i := strings.Index(name, "_")
	for i >= 0 {
		a, b := name[:i], name[i+1:]
		if amplitude.ValidTag(a) && amplitude.ValidTag(b) && a[0] == b[0] {
			return true
		}
		j := strings.Index(name[i+1:], "_")
		if j < 0 {
			break
		}
		i += 1 + j
	}
	return false
}

// sumLevel identifies which grouping level a coherent-sum key belongs
// to. The seven projections are structurally distinct: reflectivity
// and parity are lowercase signs, the m-projection is a lowercase sign
// or zero, and orbital letters are uppercase.
func sumLevel(key string) (coherent.Level, bool) {
	if key == coherent.BackgroundKey {
		return coherent.LevelEJPmL, true
	}
	n := len(key)
	switch {
	case n == 1 && isSign(key[0]):
		return coherent.LevelE, true
	case n == 2 && isDigit(key[0]) && isSign(key[1]):
		return coherent.LevelJP, true
	case n == 3 && isSign(key[0]) && isDigit(key[1]) && isSign(key[2]):
		return coherent.LevelEJP, true
	case n >= 3 && isDigit(key[0]) && isSign(key[1]) && isUpper(key[2:]):
		return coherent.LevelJPL, true
	case n >= 4 && isSign(key[0]) && isDigit(key[1]) && isSign(key[2]) && isUpper(key[3:]):
		return coherent.LevelEJPL, true
	case n >= 4 && isDigit(key[0]) && isSign(key[1]) && isMChar(key[2]) && isUpper(key[3:]):
		return coherent.LevelJPmL, true
	case amplitude.ValidTag(key):
		return coherent.LevelEJPmL, true
	}
	return "", false
}

func isSign(c byte) bool  { return c == 'p' || c == 'm' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isMChar(c byte) bool { return isSign(c) || c == '0' }

func isUpper(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
