// Package pronunciation assesses how closely a learner's transcribed
// utterance matches a target phrase. It normalizes both texts, aligns
// them word by word with an edit-distance-tolerant positional
// comparison, classifies every discrepancy and aggregates the word
// outcomes into accuracy, fluency, completeness and overall scores
// with a letter grade and learner-facing feedback.
//
// The engine is a pure computation: speech-to-text (which produces the
// transcript), audio handling and persistence of results all live in
// external collaborators.
package pronunciation

import (
	"context"
	"sync"

	"github.com/baditaflorin/l"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/adapters/fluency"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/adapters/logger"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/adapters/normalizer"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/core/assess"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/core/domain"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"
)

// Score is the result of a pronunciation assessment.
type Score = domain.Score

// WordScore is the per-word outcome of the alignment.
type WordScore = domain.WordScore

// Issue classifies a word-level discrepancy.
type Issue = domain.Issue

// Re-exported issue values, see domain.Issue.
const (
	IssueNone             = domain.IssueNone
	IssueMispronunciation = domain.IssueMispronunciation
	IssueOmission         = domain.IssueOmission
	IssueInsertion        = domain.IssueInsertion
)

// Assessor provides methods to assess pronunciation using configurable
// collaborators.
type Assessor struct {
	assessor ports.Assessor
}

// Option defines a functional option for configuring the Assessor.
type Option func(*config)

type config struct {
	Logger     ports.Logger
	Normalizer ports.Normalizer
	Fluency    ports.FluencyScorer
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
	}
}

// WithFluencyScorer sets a custom fluency scoring strategy.
func WithFluencyScorer(f ports.FluencyScorer) Option {
	return func(cfg *config) {
		cfg.Fluency = f
	}
}

// New creates a new Assessor with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*Assessor, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}
	if cfg.Fluency == nil {
		cfg.Fluency = fluency.NewBinaryScorer()
	}

	core, err := assess.NewAssessor(assess.DefaultConfig(), cfg.Logger, cfg.Normalizer, cfg.Fluency)
	if err != nil {
		return nil, err
	}

	return &Assessor{assessor: core}, nil
}

// Assess scores how closely the transcript matches the target phrase.
// It is deterministic and safe for concurrent use.
func (a *Assessor) Assess(ctx context.Context, targetText, userTranscript string) Score {
	return a.assessor.Assess(ctx, targetText, userTranscript)
}

var defaultAssessor = sync.OnceValue(func() *Assessor {
	a, err := New()
	if err != nil {
		panic(err)
	}
	return a
})

// AssessWithDefaults scores the transcript against the target phrase
// using the default configuration.
func AssessWithDefaults(targetText, userTranscript string) Score {
	return defaultAssessor().Assess(context.Background(), targetText, userTranscript)
}
