package domain

import "encoding/json"

// Issue classifies the discrepancy between a target word and what the
// learner actually said at that position.
type Issue int

const (
	// IssueNone marks an exact word match.
	IssueNone Issue = iota
	// IssueMispronunciation marks a word spoken differently from the target.
	IssueMispronunciation
	// IssueOmission marks a target word missing from the transcript.
	IssueOmission
	// IssueInsertion marks a transcript word with no target counterpart.
	IssueInsertion
)

// String returns the wire name of the issue. Exact matches have no
// issue and map to the empty string.
func (i Issue) String() string {
	switch i {
	case IssueMispronunciation:
		return "mispronunciation"
	case IssueOmission:
		return "omission"
	case IssueInsertion:
		return "insertion"
	default:
		return ""
	}
}

// MarshalJSON encodes the issue under its wire name, so a Score can be
// serialized directly without a translation layer.
func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// WordScore is the per-word outcome of the alignment. Outcomes for
// target positions appear first in target order; insertions for extra
// transcript words are appended after them.
type WordScore struct {
	// Word is the target word this outcome refers to, or the extra
	// transcript word for insertions.
	Word string
	// Score is the per-word quality in [0, 100].
	Score int
	// Issue is IssueNone when the word matched exactly.
	Issue Issue
	// SoundsLike is set on mispronunciations whose Double Metaphone
	// codes overlap with the target word: the learner produced the
	// right sound shape with the wrong letters. Informational only,
	// never affects any score.
	SoundsLike bool
}

// Score holds the outcome of a pronunciation assessment. It is built
// once per assessment call and never mutated afterwards.
type Score struct {
	// OverallScore is the mean of the three dimension scores.
	OverallScore int
	// AccuracyScore is the fraction of target words matched exactly or
	// within the edit-distance tolerance, scaled to [0, 100].
	AccuracyScore int
	// FluencyScore is a coarse speech-flow signal, see the fluency adapters.
	FluencyScore int
	// CompletenessScore is the fraction of target positions that
	// received any non-omission outcome, scaled to [0, 100].
	CompletenessScore int
	// TargetText is the original, non-normalized target phrase.
	TargetText string
	// UserTranscript is the original, non-normalized transcript.
	UserTranscript string
	// WordScores lists per-word outcomes in reading order.
	WordScores []WordScore
	// Grade is the letter grade derived from OverallScore.
	Grade string
	// Feedback is the learner-facing message derived from OverallScore.
	Feedback string
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}

// GradeFor maps an overall score to a letter grade. Bands are
// evaluated high to low; the first match wins.
func GradeFor(overall int) string {
	switch {
	case overall >= 90:
		return "A"
	case overall >= 80:
		return "B"
	case overall >= 70:
		return "C"
	case overall >= 60:
		return "D"
	default:
		return "F"
	}
}

// FeedbackFor maps an overall score to a learner-facing message.
// Bands are evaluated high to low; the first match wins.
func FeedbackFor(overall int) string {
	switch {
	case overall >= 90:
		return "Excellent pronunciation! Keep up the great work!"
	case overall >= 70:
		return "Good job! A few words need improvement."
	case overall >= 50:
		return "Keep practicing! Focus on the highlighted words."
	default:
		return "Try again slowly. Listen to the example first."
	}
}
