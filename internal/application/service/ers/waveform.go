package ers

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/resonate/core/internal/types"
)

const waveformBins = 64

// Waveform is the visualization payload (spec.md §4.3): 64-bin
// frequency arrays per participant plus a blended color.
type Waveform struct {
	BinsA       [waveformBins]float64
	BinsB       [waveformBins]float64
	BlendedHex  string
}

// archetypeFactor implements the per-archetype shape function (spec.md
// §4.3): spark spiky, anchor smooth, wave flowing, ember pulsing,
// storm chaotic (pseudo-random, deterministically seeded — see
// stormFactor).
func archetypeFactor(archetype types.Archetype, bin int, rng *rand.Rand) float64 {
	t := float64(bin) / float64(waveformBins)
	switch archetype {
	case types.ArchetypeSpark:
		return math.Abs(math.Sin(t * math.Pi * 8))
	case types.ArchetypeAnchor:
		return 0.5 + 0.5*math.Cos(t*math.Pi*2)
	case types.ArchetypeWave:
		return 0.5 + 0.5*math.Sin(t*math.Pi*4)
	case types.ArchetypeEmber:
		return 0.5 + 0.5*math.Sin(t*math.Pi*16)*math.Sin(t*math.Pi)
	case types.ArchetypeStorm:
		return stormFactor(rng)
	default:
		return 0.5
	}
}

// stormFactor draws pseudo-random noise in [0,1]. The caller supplies
// a generator seeded deterministically from the sorted user-id pair
// (resolving spec.md §9's storm-determinism Open Question) so tests
// and repeated calls for the same pair are reproducible.
func stormFactor(rng *rand.Rand) float64 {
	return rng.Float64()
}

// seedFromPair derives a deterministic PCG seed from
// sha256(minUserID + "|" + maxUserID), per SPEC_FULL.md §3.
func seedFromPair(minUserID, maxUserID string) *rand.Rand {
	sum := sha256.Sum256([]byte(minUserID + "|" + maxUserID))
	seed1 := binary.BigEndian.Uint64(sum[0:8])
	seed2 := binary.BigEndian.Uint64(sum[8:16])
	return rand.New(rand.NewPCG(seed1, seed2))
}

// BuildWaveform synthesizes the 64-bin payload for a pair, each bin
// following sin(phase + depth*3 [+0.5 for B]) * archetypeFactor(bin)
// (spec.md §4.3).
func BuildWaveform(minUserID, maxUserID string, archetypeA, archetypeB types.Archetype, depthA, depthB float64) Waveform {
	rng := seedFromPair(minUserID, maxUserID)

	var w Waveform
	for i := 0; i < waveformBins; i++ {
		phase := float64(i) / float64(waveformBins) * 2 * math.Pi
		w.BinsA[i] = math.Sin(phase+depthA*3) * archetypeFactor(archetypeA, i, rng)
		w.BinsB[i] = math.Sin(phase+depthB*3+0.5) * archetypeFactor(archetypeB, i, rng)
	}
	w.BlendedHex = blendHex(archetypeA.HexColor(), archetypeB.HexColor())
	return w
}

// blendHex averages two "#RRGGBB" colors channel-by-channel.
func blendHex(a, b string) string {
	ra, ga, ba := hexChannels(a)
	rb, gb, bb := hexChannels(b)
	return formatHex((ra+rb)/2, (ga+gb)/2, (ba+bb)/2)
}

func hexChannels(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	r := hexByte(hex[1:3])
	g := hexByte(hex[3:5])
	b := hexByte(hex[5:7])
	return r, g, b
}

func hexByte(s string) int {
	var v int
	for _, c := range s {
		v *= 16
		switch {
		case c >= '0' && c <= '9':
			v += int(c - '0')
		case c >= 'A' && c <= 'F':
			v += int(c-'A') + 10
		case c >= 'a' && c <= 'f':
			v += int(c-'a') + 10
		}
	}
	return v
}

func formatHex(r, g, b int) string {
	const hexDigits = "0123456789ABCDEF"
	buf := make([]byte, 7)
	buf[0] = '#'
	buf[1] = hexDigits[(r>>4)&0xF]
	buf[2] = hexDigits[r&0xF]
	buf[3] = hexDigits[(g>>4)&0xF]
	buf[4] = hexDigits[g&0xF]
	buf[5] = hexDigits[(b>>4)&0xF]
	buf[6] = hexDigits[b&0xF]
	return string(buf)
}
