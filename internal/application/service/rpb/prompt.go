package rpb

import (
	"fmt"
	"strings"

	"github.com/resonate/core/internal/types"
)

// buildEmbeddingPrompt constructs the deterministic natural-language
// paragraph sent to the embedding interface (spec.md §4.2): pace,
// message shape, typing cadence, peak time-of-day bucket, browsing
// preference, and the user's own bio text.
func buildEmbeddingPrompt(user *types.User, b types.SignalBundle) string {
	var sb strings.Builder

	sb.WriteString("A person")
	if b.Voice.Present {
		fmt.Fprintf(&sb, " who speaks at a %s pace", b.Voice.Pace)
		if len(b.Voice.DominantEmotions) > 0 {
			fmt.Fprintf(&sb, " and carries a tone of %s", strings.Join(b.Voice.DominantEmotions, ", "))
		}
	}
	if b.Messaging.Present {
		fmt.Fprintf(&sb, ", who writes messages averaging %.0f characters with a question rate of %.2f and vocabulary diversity of %.2f",
			b.Messaging.AvgCharLength, b.Messaging.QuestionRate, b.Messaging.VocabularyDiversity)
	}
	if b.Typing.Present {
		fmt.Fprintf(&sb, ", typing in bursts averaging %.0fms with cadence variance of %.0fms", b.Typing.MeanBurstMs, b.Typing.CadenceVarianceMs)
	}
	if b.Session.Present {
		fmt.Fprintf(&sb, ", most active around hour %d of the day", peakHour(b.Session.HourlyActivity))
	}
	if b.Browsing.Present {
		fmt.Fprintf(&sb, ", who dwells on photos at a ratio of %.2f and reads bios at a rate of %.2f", b.Browsing.PhotoDwellRatio, b.Browsing.BioReadRate)
	}
	if bio := strings.TrimSpace(user.Bio); bio != "" {
		fmt.Fprintf(&sb, ". Their own words: \"%s\"", bio)
	}
	sb.WriteString(".")

	return sb.String()
}

func peakHour(hourly [24]float64) int {
	peak := 0
	for i := 1; i < 24; i++ {
		if hourly[i] > hourly[peak] {
			peak = i
		}
	}
	return peak
}
