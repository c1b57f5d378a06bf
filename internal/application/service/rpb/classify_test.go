package rpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonate/core/internal/types"
)

// TestColdStartRPB mirrors spec.md §8 scenario 1: bio "Sound engineer
// by day" (4 words, bio style minimal), voice pace fast with vocabulary
// richness 1.0 (the sole depth contributor, 1.0·0.5 = 0.5), no messages.
func TestColdStartRPB(t *testing.T) {
	bundle := types.SignalBundle{
		Voice: types.VoiceSignals{Present: true, Pace: types.PaceFast, VocabularyRichness: 1.0},
		Bio:   types.BioSignals{Present: true, WordCount: 4, Style: types.StyleMinimal},
	}

	archetype := classifyArchetype(bundle)
	style := classifyStyle(bundle)
	depth := depthScore(bundle)
	comp := completeness(bundle)

	assert.Equal(t, types.ArchetypeSpark, archetype)
	assert.Equal(t, types.StyleMinimal, style)
	assert.Equal(t, 0.5, depth)
	assert.Equal(t, 40.0, comp)
}

func TestClassifyArchetypeDefaultsToWaveWithNoSignals(t *testing.T) {
	require.Equal(t, types.ArchetypeWave, classifyArchetype(types.SignalBundle{}))
}

func TestClassifyStyleDefaultsToExpressive(t *testing.T) {
	require.Equal(t, types.StyleExpressive, classifyStyle(types.SignalBundle{}))
}

func TestClassifyStylePrecise(t *testing.T) {
	bundle := types.SignalBundle{
		Messaging: types.MessagingSignals{
			Present:             true,
			VocabularyDiversity: 0.7,
			EmojiRate:           0.05,
			AvgCharLength:       55,
		},
	}
	assert.Equal(t, types.StylePrecise, classifyStyle(bundle))
}

func TestDepthScoreAveragesContributions(t *testing.T) {
	bundle := types.SignalBundle{
		Messaging: types.MessagingSignals{Present: true, AvgCharLength: 100, QuestionRate: 1, VocabularyDiversity: 1},
		Voice:     types.VoiceSignals{Present: true, VocabularyRichness: 1},
		Browsing:  types.BrowsingSignals{Present: true, BioReadRate: 1},
	}
	got := depthScore(bundle)
	assert.InDelta(t, (1.0+0.5+0.5)/3.0, got, 0.0001)
}

func TestCompletenessWeightsSumTo100(t *testing.T) {
	bundle := types.SignalBundle{
		Voice:     types.VoiceSignals{Present: true},
		Bio:       types.BioSignals{Present: true},
		Messaging: types.MessagingSignals{Present: true, TotalMessageCount: 500},
		Typing:    types.TypingSignals{Present: true},
		Session:   types.SessionSignals{Present: true, HourlyActivity: fullHourly()},
		Browsing:  types.BrowsingSignals{Present: true},
	}
	assert.Equal(t, 100.0, completeness(bundle))
}

func fullHourly() [24]float64 {
	var h [24]float64
	for i := range h {
		h[i] = 1.0
	}
	return h
}
