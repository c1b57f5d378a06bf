package ers

import "github.com/resonate/core/internal/types"

// Component weights (spec.md §4.3), summing to 100.
const (
	weightVectorSimilarity  = 30.0
	weightChronobiological  = 15.0
	weightCommunication     = 20.0
	weightDepthDifferential = 15.0
	weightArchetypeAffinity = 20.0

	defaultVectorSimilarity = 0.5
)

// Breakdown holds the raw per-component values, each in [0,1]; Sum
// applies the component weights to produce the base score.
type Breakdown struct {
	VectorSimilarity  float64
	Chronobiological  float64
	Communication     float64
	DepthDifferential float64
	ArchetypeAffinity float64
}

func (b Breakdown) Sum() float64 {
	return b.VectorSimilarity*weightVectorSimilarity +
		b.Chronobiological*weightChronobiological +
		b.Communication*weightCommunication +
		b.DepthDifferential*weightDepthDifferential +
		b.ArchetypeAffinity*weightArchetypeAffinity
}

// chronobiologicalOverlap sums per-hour min over per-hour max
// (spec.md §4.3); 0.5 when either array is entirely zero (treated as
// "empty" — spec.md's scenario 3 shows disjoint nonzero slots yielding
// 0, not 0.5, so the empty case must be distinguished from disjoint).
func chronobiologicalOverlap(a, b [24]float64) float64 {
	if isZeroArray(a) || isZeroArray(b) {
		return 0.5
	}
	var sumMin, sumMax float64
	for i := 0; i < 24; i++ {
		if a[i] < b[i] {
			sumMin += a[i]
			sumMax += b[i]
		} else {
			sumMin += b[i]
			sumMax += a[i]
		}
	}
	if sumMax == 0 {
		return 0.5
	}
	return sumMin / sumMax
}

func isZeroArray(a [24]float64) bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}
	return true
}

// depthDifferential is the symmetric penalty for distance between two
// depth scores (spec.md §4.3, §8's testable properties).
func depthDifferential(depthA, depthB float64) float64 {
	diff := depthA - depthB
	if diff < 0 {
		diff = -diff
	}
	v := 1 - 2*diff
	if v < 0 {
		return 0
	}
	return v
}

// Inputs collects everything the ERS engine needs for one pairwise
// score (spec.md §4.3).
type Inputs struct {
	ProfileA, ProfileB               *types.ResonanceProfile
	UserA, UserB                     *types.User
	VectorSimilarity                 *float64 // nil => default 0.5
}

// Base computes the weighted base score and its component breakdown.
func Base(in Inputs) (float64, Breakdown) {
	vecSim := defaultVectorSimilarity
	if in.VectorSimilarity != nil {
		vecSim = *in.VectorSimilarity
	}

	breakdown := Breakdown{
		VectorSimilarity:  vecSim,
		Chronobiological:  chronobiologicalOverlap(in.ProfileA.HourlyActivity, in.ProfileB.HourlyActivity),
		Communication:     styleCompatibility(in.ProfileA.Style, in.ProfileB.Style),
		DepthDifferential: depthDifferential(in.ProfileA.DepthScore, in.ProfileB.DepthScore),
		ArchetypeAffinity: archetypeCompatibility(in.ProfileA.Archetype, in.ProfileB.Archetype),
	}
	return breakdown.Sum(), breakdown
}
