package ers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resonate/core/internal/types"
)

func TestBuildWaveformIsDeterministicForStorm(t *testing.T) {
	w1 := BuildWaveform("a", "b", types.ArchetypeStorm, types.ArchetypeStorm, 0.5, 0.5)
	w2 := BuildWaveform("a", "b", types.ArchetypeStorm, types.ArchetypeStorm, 0.5, 0.5)
	assert.Equal(t, w1.BinsA, w2.BinsA)
	assert.Equal(t, w1.BinsB, w2.BinsB)
}

func TestBuildWaveformBlendedColor(t *testing.T) {
	w := BuildWaveform("a", "b", types.ArchetypeSpark, types.ArchetypeAnchor, 0.5, 0.5)
	assert.NotEmpty(t, w.BlendedHex)
	assert.Equal(t, '#', rune(w.BlendedHex[0]))
	assert.Len(t, w.BlendedHex, 7)
}
