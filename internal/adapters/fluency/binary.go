// Package fluency provides fluency scoring strategies. The binary
// scorer shipped here is a stand-in for a future acoustic fluency
// model: it only distinguishes "the learner said something" from
// silence. Plugging a real prosody analyzer in means implementing
// ports.FluencyScorer and passing it to the assessor.
package fluency

import "github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"

// DefaultSpokenScore is the fluency score awarded to any non-empty transcript.
const DefaultSpokenScore = 80

// BinaryScorer awards a fixed score when the raw transcript is
// non-empty and zero otherwise.
type BinaryScorer struct {
	spokenScore int
}

// NewBinaryScorer creates a binary fluency scorer with the default
// spoken score.
func NewBinaryScorer() ports.FluencyScorer {
	return &BinaryScorer{spokenScore: DefaultSpokenScore}
}

// NewBinaryScorerWithScore creates a binary fluency scorer awarding the
// given score to non-empty transcripts.
func NewBinaryScorerWithScore(score int) ports.FluencyScorer {
	return &BinaryScorer{spokenScore: score}
}

// Fluency returns the configured score for any non-empty transcript.
// The check runs on the raw transcript, so a whitespace-only transcript
// still counts as spoken.
func (b *BinaryScorer) Fluency(userTranscript string) int {
	if userTranscript == "" {
		return 0
	}
	return b.spokenScore
}
