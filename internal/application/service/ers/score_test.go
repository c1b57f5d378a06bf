package ers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonate/core/internal/types"
)

func flatHourly(v float64) [24]float64 {
	var h [24]float64
	for i := range h {
		h[i] = v
	}
	return h
}

// TestERSIdenticalTwins mirrors spec.md §8 scenario 2.
func TestERSIdenticalTwins(t *testing.T) {
	sim := 0.95
	profileA := &types.ResonanceProfile{Archetype: types.ArchetypeWave, Style: types.StylePoetic, DepthScore: 0.8, HourlyActivity: flatHourly(0.1)}
	profileB := &types.ResonanceProfile{Archetype: types.ArchetypeWave, Style: types.StylePoetic, DepthScore: 0.8, HourlyActivity: flatHourly(0.1)}

	base, breakdown := Base(Inputs{ProfileA: profileA, ProfileB: profileB, VectorSimilarity: &sim})
	assert.InDelta(t, 92.5, base, 0.0001)
	assert.InDelta(t, 1.0, breakdown.Chronobiological, 0.0001)
	assert.InDelta(t, 0.85, breakdown.Communication, 0.0001)
	assert.InDelta(t, 0.85, breakdown.ArchetypeAffinity, 0.0001)
	assert.InDelta(t, 1.0, breakdown.DepthDifferential, 0.0001)

	lat, lon := 40.6782, -73.9442 // Brooklyn
	userA := &types.User{ID: "a", Latitude: &lat, Longitude: &lon, LastActiveAt: time.Now().Add(-time.Hour)}
	userB := &types.User{ID: "b", Latitude: &lat, Longitude: &lon, LastActiveAt: time.Now().Add(-time.Hour)}

	geo := geographicModifier(userA, userB)
	recency := recencyModifier(userA, userB, time.Now())
	comp := completenessModifier(profileA, profileB)
	require.Equal(t, 1.0, geo)
	require.Equal(t, 1.0, recency)
	require.Equal(t, 1.0, comp)

	final := clamp(base*geo*recency*comp*mutualInterestModifier(), 0, 100)
	total := int(final + 0.5)
	assert.Equal(t, 93, total)
}

// TestERSNoOverlapSchedule mirrors spec.md §8 scenario 3.
func TestERSNoOverlapSchedule(t *testing.T) {
	var hourlyA, hourlyB [24]float64
	hourlyA[2] = 1.0
	hourlyB[14] = 1.0

	profileA := &types.ResonanceProfile{Archetype: types.ArchetypeWave, Style: types.StylePoetic, DepthScore: 0.5, HourlyActivity: hourlyA}
	profileB := &types.ResonanceProfile{Archetype: types.ArchetypeWave, Style: types.StylePoetic, DepthScore: 0.5, HourlyActivity: hourlyB}

	base, breakdown := Base(Inputs{ProfileA: profileA, ProfileB: profileB})
	assert.InDelta(t, 0.0, breakdown.Chronobiological, 0.0001)
	assert.InDelta(t, 64.0, base, 0.0001)

	total := int(clamp(base, 0, 100) + 0.5)
	assert.Equal(t, 64, total)
}

func TestDepthDifferentialProperties(t *testing.T) {
	assert.Equal(t, 1.0, depthDifferential(0.3, 0.3))
	assert.Equal(t, 0.0, depthDifferential(0, 0.5))
}

func TestChronobiologicalEmptyIsHalf(t *testing.T) {
	assert.Equal(t, 0.5, chronobiologicalOverlap([24]float64{}, flatHourly(0.2)))
}

func TestBaseScoreIsBounded(t *testing.T) {
	profileA := &types.ResonanceProfile{Archetype: types.ArchetypeStorm, Style: types.StyleWitty, DepthScore: 1}
	profileB := &types.ResonanceProfile{Archetype: types.ArchetypeAnchor, Style: types.StyleMinimal, DepthScore: 0}
	sim := 1.0
	base, _ := Base(Inputs{ProfileA: profileA, ProfileB: profileB, VectorSimilarity: &sim})
	assert.GreaterOrEqual(t, base, 0.0)
	assert.LessOrEqual(t, base, 100.0)
}
