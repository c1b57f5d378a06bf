package ers

import (
	"math"
	"time"

	"github.com/resonate/core/internal/types"
)

const earthRadiusKm = 6371.0

// haversineKm computes great-circle distance in km between two
// lat/lon pairs.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// geographicModifier implements spec.md §4.3's piecewise distance
// decay. 1.0 if either location is unknown.
func geographicModifier(a, b *types.User) float64 {
	if !a.HasLocation() || !b.HasLocation() {
		return 1.0
	}
	d := haversineKm(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude)
	switch {
	case d <= 50:
		return 1.0
	case d <= 200:
		return 0.95 - (d-50)*0.0005
	default:
		v := 0.95 - (d-50)*0.0005
		if v < 0.7 {
			return 0.7
		}
		return v
	}
}

// recencyModifier implements spec.md §4.3's staleness decay keyed on
// the more-stale of the two participants.
func recencyModifier(a, b *types.User, now time.Time) float64 {
	m := a.DaysSinceActive(now)
	if bd := b.DaysSinceActive(now); bd > m {
		m = bd
	}
	switch {
	case m <= 3:
		return 1.0
	case m <= 7:
		return 1.0 - (m-3)*0.05
	default:
		v := 0.8 - (m-7)*0.03
		if v < 0.6 {
			return 0.6
		}
		return v
	}
}

// completenessModifier is 0.5 if either archetype is the zero value
// (profile never classified), else 1.0 (spec.md §4.3).
func completenessModifier(a, b *types.ResonanceProfile) float64 {
	if a.Archetype == "" || b.Archetype == "" {
		return 0.5
	}
	return 1.0
}

// mutualInterestModifier is reserved for a future match-history signal
// (spec.md §4.3): always neutral today.
func mutualInterestModifier() float64 {
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
