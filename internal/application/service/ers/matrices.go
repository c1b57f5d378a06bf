// Package ers implements the Emotional Resonance Score (spec.md §4.3):
// a five-component weighted score, geographic/recency/completeness/
// mutual modifiers, and waveform payload synthesis for visualization.
package ers

import "github.com/resonate/core/internal/types"

// styleMatrix and archetypeMatrix are fixed 5x5 symmetric lookup
// tables (spec.md §GLOSSARY), indexed by each enum's ordinal position
// (types.Style.Index / types.Archetype.Index) so lookups are array
// indexing rather than map indirection. Diagonal entries (self-match)
// are the highest value in each table; off-diagonal values are hand-
// tuned compatibility weights — no worked example in spec.md pins them
// beyond the two diagonal entries exercised by §8's scenarios 2 and 3
// (poetic-poetic and wave-wave both resolve to 0.85, which the
// identical-twins/no-overlap expected totals require).
var styleMatrix = [5][5]float64{
	// expressive precise poetic minimal witty
	{0.85, 0.45, 0.70, 0.30, 0.75}, // expressive
	{0.45, 0.85, 0.50, 0.60, 0.40}, // precise
	{0.70, 0.50, 0.85, 0.40, 0.55}, // poetic
	{0.30, 0.60, 0.40, 0.85, 0.35}, // minimal
	{0.75, 0.40, 0.55, 0.35, 0.85}, // witty
}

var archetypeMatrix = [5][5]float64{
	// spark anchor wave ember storm
	{0.85, 0.40, 0.60, 0.70, 0.50}, // spark
	{0.40, 0.85, 0.65, 0.35, 0.30}, // anchor
	{0.60, 0.65, 0.85, 0.55, 0.45}, // wave
	{0.70, 0.35, 0.55, 0.85, 0.60}, // ember
	{0.50, 0.30, 0.45, 0.60, 0.85}, // storm
}

const matrixDefault = 0.5

func styleCompatibility(a, b types.Style) float64 {
	ia, ib := a.Index(), b.Index()
	if ia < 0 || ib < 0 {
		return matrixDefault
	}
	return styleMatrix[ia][ib]
}

func archetypeCompatibility(a, b types.Archetype) float64 {
	ia, ib := a.Index(), b.Index()
	if ia < 0 || ib < 0 {
		return matrixDefault
	}
	return archetypeMatrix[ia][ib]
}
