package types

// The six RPB signal bundles (spec.md §4.1). Each is modeled as a
// record-of-optionals per the DESIGN NOTES §9 guidance: a Present flag
// distinguishes "no data" from a zero-initialized bundle (voice's
// default-pace case is Present==true with zeroed numeric fields).

type VoiceSignals struct {
	Present            bool
	WordCount          int
	VocabularyRichness float64
	Sentiment          float64
	DominantEmotions   []string
	Pace               SpeakingPace
}

type BioSignals struct {
	Present      bool
	WordCount    int
	EditCount    int
	DeletionRate float64
	Style        Style
}

type MessagingSignals struct {
	Present            bool
	AvgCharLength      float64
	QuestionRate       float64
	EmojiRate          float64
	VocabularyDiversity float64
	TotalMessageCount  int
}

type TypingSignals struct {
	Present          bool
	MeanBurstMs      float64
	CadenceVarianceMs float64
}

type SessionSignals struct {
	Present            bool
	HourlyActivity     [24]float64
	MeanDurationMs     float64
	SessionsPerDay     float64
}

type BrowsingSignals struct {
	Present               bool
	PhotoDwellRatio       float64
	AvgDwellMs            float64
	BioReadRate           float64
	ProfileViewsPerSession float64
}

// SignalBundle aggregates the six extractors' outputs for one rebuild
// pass (spec.md §4.1: "All six run concurrently; each must tolerate
// the absence of any other").
type SignalBundle struct {
	Voice     VoiceSignals
	Bio       BioSignals
	Messaging MessagingSignals
	Typing    TypingSignals
	Session   SessionSignals
	Browsing  BrowsingSignals
}
