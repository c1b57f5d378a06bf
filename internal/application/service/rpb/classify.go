package rpb

import "github.com/resonate/core/internal/types"

// archetypeScore computes the additive indicator score for one
// archetype against the full signal bundle, per the concrete table in
// SPEC_FULL.md §3 (spec.md §4.1/§4.2 only fully worked the one
// cold-start example).
func archetypeScore(archetype types.Archetype, b types.SignalBundle) float64 {
	switch archetype {
	case types.ArchetypeSpark:
		score := 0.0
		if b.Voice.Present && b.Voice.Pace == types.PaceFast {
			score += 0.3
		}
		if b.Messaging.Present && b.Messaging.EmojiRate > 0.5 {
			score += 0.2
		}
		if b.Messaging.Present && b.Messaging.QuestionRate > 0.3 {
			score += 0.15
		}
		if b.Messaging.Present && b.Messaging.AvgCharLength < 40 {
			score += 0.15
		}
		if b.Session.Present && b.Session.SessionsPerDay > 2 {
			score += 0.2
		}
		return score

	case types.ArchetypeAnchor:
		score := 0.0
		if b.Voice.Present && b.Voice.Pace == types.PaceSlow {
			score += 0.25
		}
		if b.Typing.Present && b.Typing.CadenceVarianceMs < 5000 {
			score += 0.2
		}
		if b.Voice.Present && b.Voice.VocabularyRichness > 0.6 {
			score += 0.2
		}
		if b.Bio.Present && b.Bio.Style == types.StyleExpressive {
			score += 0.15
		}
		if depthScore(b) > 0.6 {
			score += 0.2
		}
		return score

	case types.ArchetypeWave:
		// No blanket "no messaging" or baseline bonus here: those would
		// make every messaging-less user default to wave regardless of
		// their other signals, which the cold-start worked example
		// (voice-only, fast pace -> spark) rules out. Total absence of
		// every bundle is handled separately by classifyArchetype's
		// explicit default-to-wave rule.
		score := 0.0
		if b.Voice.Present && b.Voice.Pace == types.PaceModerate {
			score += 0.2
		}
		d := depthScore(b)
		if d >= 0.4 && d <= 0.6 {
			score += 0.2
		}
		if b.Browsing.Present && b.Browsing.PhotoDwellRatio >= 0.3 && b.Browsing.PhotoDwellRatio <= 0.6 {
			score += 0.2
		}
		return score

	case types.ArchetypeEmber:
		score := 0.0
		if b.Messaging.Present && b.Messaging.VocabularyDiversity > 0.6 {
			score += 0.2
		}
		if b.Messaging.Present && b.Messaging.QuestionRate > 0.4 {
			score += 0.2
		}
		if b.Messaging.Present && b.Messaging.EmojiRate >= 0.2 && b.Messaging.EmojiRate <= 0.5 {
			score += 0.2
		}
		if b.Typing.Present && b.Typing.CadenceVarianceMs > 8000 {
			score += 0.2
		}
		if b.Session.Present && b.Session.SessionsPerDay >= 1 && b.Session.SessionsPerDay <= 2 {
			score += 0.2
		}
		return score

	case types.ArchetypeStorm:
		score := 0.0
		if b.Typing.Present && b.Typing.CadenceVarianceMs > 12000 {
			score += 0.3
		}
		if b.Messaging.Present && b.Messaging.TotalMessageCount > 200 && b.Messaging.VocabularyDiversity < 0.4 {
			score += 0.25
		}
		if b.Voice.Present && absFloat(b.Voice.Sentiment) > 0.7 {
			score += 0.25
		}
		if b.Bio.Present && b.Bio.EditCount > 5 {
			score += 0.2
		}
		return score

	default:
		return 0
	}
}

func anyBundlePresent(b types.SignalBundle) bool {
	return b.Voice.Present || b.Bio.Present || b.Messaging.Present ||
		b.Typing.Present || b.Session.Present || b.Browsing.Present
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// classifyArchetype picks the highest-scoring archetype, ties broken
// by iteration order spark,anchor,wave,ember,storm; default wave when
// no bundle is present at all (spec.md §4.2).
func classifyArchetype(b types.SignalBundle) types.Archetype {
	if !anyBundlePresent(b) {
		return types.ArchetypeWave
	}
	best := types.Archetypes[0]
	bestScore := archetypeScore(best, b)
	for _, a := range types.Archetypes[1:] {
		s := archetypeScore(a, b)
		if s > bestScore {
			best = a
			bestScore = s
		}
	}
	return best
}

// classifyStyle runs the decision cascade over messaging and bio
// bundles (spec.md §4.2). Default expressive with neither present.
func classifyStyle(b types.SignalBundle) types.Style {
	if !b.Messaging.Present && !b.Bio.Present {
		return types.StyleExpressive
	}

	switch {
	case b.Messaging.AvgCharLength < 30 && b.Bio.Present && b.Bio.Style == types.StyleMinimal:
		return types.StyleMinimal
	case b.Messaging.Present && b.Messaging.VocabularyDiversity > 0.6 && b.Messaging.EmojiRate < 0.2 && b.Messaging.AvgCharLength > 40:
		return types.StylePrecise
	case b.Messaging.Present && b.Messaging.VocabularyDiversity > 0.7 && b.Messaging.AvgCharLength > 60 && b.Voice.Present && b.Voice.VocabularyRichness > 0.7:
		return types.StylePoetic
	case b.Messaging.Present && b.Messaging.QuestionRate > 0.3 && b.Messaging.EmojiRate > 0.3:
		return types.StyleWitty
	default:
		return types.StyleExpressive
	}
}

// dominantEmotions takes tags from the voice bundle when present, else
// empty (spec.md §4.2).
func dominantEmotions(b types.SignalBundle) []string {
	if b.Voice.Present {
		return b.Voice.DominantEmotions
	}
	return nil
}

// humorScore has no formula in spec.md §4.2 beyond naming it a
// [0,1] profile field ("humor detection"); this repo derives it from
// emoji rate and question rate, the two messaging signals most
// associated with playful tone, clamped to [0,1]. Default 0.5 with no
// messaging bundle, matching depthScore's no-contributor default.
func humorScore(b types.SignalBundle) float64 {
	if !b.Messaging.Present {
		return 0.5
	}
	return minFloat(b.Messaging.EmojiRate*0.6+b.Messaging.QuestionRate*0.2, 1.0)
}

// depthScore averages up to three contributions; default 0.5 with none
// (spec.md §4.2).
func depthScore(b types.SignalBundle) float64 {
	sum := 0.0
	n := 0
	if b.Messaging.Present {
		sum += minFloat(b.Messaging.AvgCharLength/100, 1)*0.4 + b.Messaging.QuestionRate*0.3 + b.Messaging.VocabularyDiversity*0.3
		n++
	}
	if b.Voice.Present {
		sum += b.Voice.VocabularyRichness * 0.5
		n++
	}
	if b.Browsing.Present {
		sum += b.Browsing.BioReadRate * 0.5
		n++
	}
	if n == 0 {
		return 0.5
	}
	return sum / float64(n)
}
