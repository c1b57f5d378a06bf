// Package chm implements the Conversation Health Monitor: five
// per-conversation signal extractors, a state machine, and a
// remediation-nudge generator (spec.md §4.5).
package chm

import (
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/resonate/core/internal/types"
)

const (
	latencySampleSize   = 50
	lengthSampleSize    = 50
	sentimentSampleSize = 30
	initiativeSampleSize = 100
	topicSampleSize     = 30

	sessionGapHours = 2
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func tailN(messages []*types.Message, n int) []*types.Message {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

func midpointSplit[T any](items []T) (older, recent []T) {
	mid := len(items) / 2
	return items[:mid], items[mid:]
}

// responseLatencyTrend is signal 1 (spec.md §4.5#1): inter-response
// times between adjacent messages with different senders, midpoint
// split into older/recent, signal = clamp(1 - recent/older, -1, 1).
func responseLatencyTrend(messages []*types.Message) float64 {
	sample := tailN(messages, latencySampleSize)

	var gaps []float64
	for i := 1; i < len(sample); i++ {
		prev, cur := sample[i-1], sample[i]
		if prev.SenderID == nil || cur.SenderID == nil || *prev.SenderID == *cur.SenderID {
			continue
		}
		gaps = append(gaps, cur.SentAt.Sub(prev.SentAt).Seconds())
	}
	if len(sample) < 4 || len(gaps) < 3 {
		return 0
	}

	older, recent := midpointSplit(gaps)
	olderAvg := meanOf(older)
	recentAvg := meanOf(recent)
	if olderAvg == 0 {
		return 0
	}
	return clamp(1-recentAvg/olderAvg, -1, 1)
}

// lengthTrend is signal 2 (spec.md §4.5#2).
func lengthTrend(messages []*types.Message) float64 {
	sample := tailN(messages, lengthSampleSize)
	if len(sample) < 6 {
		return 0
	}

	lengths := make([]float64, len(sample))
	for i, m := range sample {
		lengths[i] = float64(len(m.Content))
	}
	older, recent := midpointSplit(lengths)
	olderAvg := meanOf(older)
	recentAvg := meanOf(recent)
	if olderAvg == 0 {
		return 0
	}
	return clamp(recentAvg/olderAvg-1, -1, 1)
}

// sentimentTrajectory is signal 3 (spec.md §4.5#3).
func sentimentTrajectory(messages []*types.Message) float64 {
	sample := tailN(messages, sentimentSampleSize)

	var scored []float64
	for _, m := range sample {
		if m.Sentiment != nil {
			scored = append(scored, *m.Sentiment)
		}
	}
	if len(scored) < 4 {
		return 0
	}
	older, recent := midpointSplit(scored)
	return clamp(meanOf(recent)-meanOf(older), -1, 1)
}

// initiativeRatio is signal 4 (spec.md §4.5#4): a session starts
// whenever the gap to the previous message exceeds sessionGapHours.
func initiativeRatio(messages []*types.Message) float64 {
	sample := tailN(messages, initiativeSampleSize)
	if len(sample) == 0 {
		return 0.5
	}

	starters := map[string]int{}
	for i, m := range sample {
		if m.SenderID == nil {
			continue
		}
		isStart := i == 0 || sample[i].SentAt.Sub(sample[i-1].SentAt).Hours() > sessionGapHours
		if isStart {
			starters[*m.SenderID]++
		}
	}

	if len(starters) == 0 {
		return 0.5
	}
	if len(starters) == 1 {
		return 0.2
	}

	min, max := -1, -1
	for _, n := range starters {
		if min == -1 || n < min {
			min = n
		}
		if max == -1 || n > max {
			max = n
		}
	}
	if max == 0 {
		return 0.5
	}
	return float64(min) / float64(max)
}

// topicDiversity is signal 5 (spec.md §4.5#5).
func topicDiversity(messages []*types.Message) float64 {
	sample := tailN(messages, topicSampleSize)
	if len(sample) < 5 {
		return 0.5
	}

	seen := map[string]struct{}{}
	total := 0
	for _, m := range sample {
		for _, tok := range strings.Fields(m.Content) {
			if len(tok) <= 3 {
				continue
			}
			total++
			seen[strings.ToLower(tok)] = struct{}{}
		}
	}
	if total == 0 {
		return 0.5
	}
	raw := float64(len(seen)) / float64(total)
	return clamp((raw-0.2)/0.5, 0, 1)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Signals is the five-component output of one conversation's analysis.
type Signals struct {
	Latency   float64
	Length    float64
	Sentiment float64
	Initiative float64
	Diversity float64
}

// OverallHealth implements spec.md §4.5's weighted composite.
func (s Signals) OverallHealth() int {
	v := ((s.Latency+1)/2)*25 + ((s.Length+1)/2)*20 + ((s.Sentiment+1)/2)*20 + s.Initiative*20 + s.Diversity*15
	return int(v + 0.5)
}

// computeSignals runs the five extractors in parallel, one goroutine
// each, per conversation.
func computeSignals(messages []*types.Message) Signals {
	var signals Signals
	var g errgroup.Group

	g.Go(func() error { signals.Latency = responseLatencyTrend(messages); return nil })
	g.Go(func() error { signals.Length = lengthTrend(messages); return nil })
	g.Go(func() error { signals.Sentiment = sentimentTrajectory(messages); return nil })
	g.Go(func() error { signals.Initiative = initiativeRatio(messages); return nil })
	g.Go(func() error { signals.Diversity = topicDiversity(messages); return nil })

	_ = g.Wait()
	return signals
}
