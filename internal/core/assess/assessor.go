package assess

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/core/domain"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"
)

// Config holds the fixed scoring constants of the assessment engine.
type Config struct {
	// EditDistanceMax is the largest Levenshtein distance at which a
	// spoken word still counts as a near miss of the target word.
	EditDistanceMax int
	// MatchScore is the per-word score for an exact match.
	MatchScore int
	// NearMissScore is the per-word score for a mispronunciation
	// within EditDistanceMax.
	NearMissScore int
	// MismatchScore is the per-word score for any other mispronunciation.
	MismatchScore int
}

// DefaultConfig returns the default scoring constants.
func DefaultConfig() Config {
	return Config{
		EditDistanceMax: 2,
		MatchScore:      100,
		NearMissScore:   70,
		MismatchScore:   30,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.EditDistanceMax < 0 {
		return errors.New("editDistanceMax must not be negative")
	}
	for _, s := range []int{c.MatchScore, c.NearMissScore, c.MismatchScore} {
		if s < 0 || s > 100 {
			return errors.New("word scores must be between 0 and 100")
		}
	}
	return nil
}

// Assessor implements the pronunciation assessment: normalization,
// positional word alignment, per-word classification and score
// aggregation. It holds no mutable state and is safe for concurrent use.
type Assessor struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
	fluency    ports.FluencyScorer
}

// NewAssessor creates a new assessment engine.
func NewAssessor(config Config, logger ports.Logger, normalizer ports.Normalizer, fluency ports.FluencyScorer) (*Assessor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Assessor{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
		fluency:    fluency,
	}, nil
}

// Assess scores how closely the transcript matches the target phrase.
// It is total over its inputs: any pair of strings, including empty
// ones, produces a fully populated Score.
func (a *Assessor) Assess(ctx context.Context, targetText, userTranscript string) domain.Score {
	a.logger.Debug("Starting pronunciation assessment",
		"target", targetText,
		"transcript", userTranscript,
	)

	details := make(map[string]interface{})

	normalizedTarget := a.normalizer.Normalize(targetText)
	normalizedTranscript := a.normalizer.Normalize(userTranscript)

	a.logger.Debug("Normalized texts",
		"normalizedTarget", normalizedTarget,
		"normalizedTranscript", normalizedTranscript,
	)

	// Check for context cancellation.
	select {
	case <-ctx.Done():
		a.logger.Error("Assessment cancelled", "error", ctx.Err())
		details["error"] = "assessment cancelled"
		return domain.Score{
			TargetText:     targetText,
			UserTranscript: userTranscript,
			Grade:          domain.GradeFor(0),
			Feedback:       domain.FeedbackFor(0),
			Details:        details,
		}
	default:
		// continue
	}

	targetWords := strings.Fields(normalizedTarget)
	transcriptWords := strings.Fields(normalizedTranscript)

	a.logger.Debug("Computed word counts",
		"target_words", len(targetWords),
		"transcript_words", len(transcriptWords),
	)

	outcomes := a.align(targetWords, transcriptWords)

	return a.aggregate(targetText, userTranscript, len(targetWords), len(transcriptWords), outcomes, details)
}

// align walks the two word sequences position by position. The
// comparison is deliberately positional rather than a full sequence
// alignment: a dropped or inserted word desynchronizes the remaining
// positions, matching the product's established behavior.
func (a *Assessor) align(targetWords, transcriptWords []string) []domain.WordScore {
	size := len(targetWords)
	if len(transcriptWords) > size {
		size = len(transcriptWords)
	}
	outcomes := make([]domain.WordScore, 0, size)

	for i, target := range targetWords {
		if i >= len(transcriptWords) {
			outcomes = append(outcomes, domain.WordScore{
				Word:  target,
				Issue: domain.IssueOmission,
			})
			continue
		}

		spoken := transcriptWords[i]
		switch {
		case spoken == target:
			outcomes = append(outcomes, domain.WordScore{
				Word:  target,
				Score: a.config.MatchScore,
			})
		case matchr.Levenshtein(spoken, target) <= a.config.EditDistanceMax:
			outcomes = append(outcomes, domain.WordScore{
				Word:       target,
				Score:      a.config.NearMissScore,
				Issue:      domain.IssueMispronunciation,
				SoundsLike: soundsLike(spoken, target),
			})
		default:
			outcomes = append(outcomes, domain.WordScore{
				Word:       target,
				Score:      a.config.MismatchScore,
				Issue:      domain.IssueMispronunciation,
				SoundsLike: soundsLike(spoken, target),
			})
		}
	}

	for j := len(targetWords); j < len(transcriptWords); j++ {
		outcomes = append(outcomes, domain.WordScore{
			Word:  transcriptWords[j],
			Issue: domain.IssueInsertion,
		})
	}

	return outcomes
}

// aggregate combines the per-word outcomes into the dimension scores
// and derives the overall score, grade and feedback.
func (a *Assessor) aggregate(targetText, userTranscript string, targetCount, transcriptCount int, outcomes []domain.WordScore, details map[string]interface{}) domain.Score {
	var matched, covered int
	for _, o := range outcomes {
		switch o.Issue {
		case domain.IssueNone, domain.IssueMispronunciation:
			// Near misses count as matched; the quality difference
			// lives in the per-word score, not in this count.
			matched++
			covered++
		case domain.IssueOmission:
		case domain.IssueInsertion:
			// Extra transcript words never count toward target coverage.
		}
	}

	var accuracy, completeness int
	if targetCount > 0 {
		accuracy = clamp(roundPercent(matched, targetCount))
		completeness = clamp(roundPercent(covered, targetCount))
	}

	fluency := clamp(a.fluency.Fluency(userTranscript))
	overall := clamp(int(math.Round(float64(accuracy+completeness+fluency) / 3)))

	details["target_words"] = targetCount
	details["transcript_words"] = transcriptCount
	details["matched_words"] = matched

	a.logger.Debug("Computed pronunciation score",
		"overall", overall,
		"accuracy", accuracy,
		"fluency", fluency,
		"completeness", completeness,
		"details", details,
	)

	return domain.Score{
		OverallScore:      overall,
		AccuracyScore:     accuracy,
		FluencyScore:      fluency,
		CompletenessScore: completeness,
		TargetText:        targetText,
		UserTranscript:    userTranscript,
		WordScores:        outcomes,
		Grade:             domain.GradeFor(overall),
		Feedback:          domain.FeedbackFor(overall),
		Details:           details,
	}
}

// soundsLike reports whether the two words share a Double Metaphone
// code. Empty codes carry no signal and are ignored.
func soundsLike(spoken, target string) bool {
	sp, ss := matchr.DoubleMetaphone(spoken)
	tp, ts := matchr.DoubleMetaphone(target)
	for _, s := range []string{sp, ss} {
		if s == "" {
			continue
		}
		if s == tp || (ts != "" && s == ts) {
			return true
		}
	}
	return false
}

func roundPercent(n, total int) int {
	return int(math.Round(float64(n) / float64(total) * 100))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
