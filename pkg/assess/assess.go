// Package assess exposes the pronunciation assessment engine with
// functional-option configuration and optional system warm-up.
package assess

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/adapters/fluency"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/adapters/logger"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/adapters/normalizer"
	core "github.com/InfinityZero3000/LexiLingo-sub008/internal/core/assess"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/core/domain"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/warmup"
)

// PronunciationAssessor scores transcribed utterances against target phrases.
type PronunciationAssessor struct {
	assessor   ports.Assessor
	logger     ports.Logger
	normalizer ports.Normalizer
	warmed     bool
}

// Option defines a functional option for configuring PronunciationAssessor.
type Option func(*config)

type config struct {
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	Fluency      ports.FluencyScorer
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
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

// WithFastNormalizer sets the optimized ASCII-table normalizer.
func WithFastNormalizer() Option {
	return func(cfg *config) {
		normFactory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = normFactory.CreateNormalizer(normalizer.FastNormalizerType)
	}
}

// WithFluencyScorer sets a custom fluency scoring strategy, replacing
// the binary placeholder.
func WithFluencyScorer(f ports.FluencyScorer) Option {
	return func(cfg *config) {
		cfg.Fluency = f
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(wc warmup.WarmupConfig) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates a new PronunciationAssessor instance.
func New(opts ...Option) (*PronunciationAssessor, error) {
	cfg := &config{
		WarmUp:       false,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}

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

	engine, err := core.NewAssessor(core.DefaultConfig(), cfg.Logger, cfg.Normalizer, cfg.Fluency)
	if err != nil {
		return nil, err
	}

	pa := &PronunciationAssessor{
		assessor:   engine,
		logger:     cfg.Logger,
		normalizer: cfg.Normalizer,
		warmed:     false,
	}

	if cfg.WarmUp {
		pa.WarmUp(context.Background(), cfg.WarmUpConfig)
	}

	return pa, nil
}

// Assess scores how closely the transcript matches the target phrase.
func (pa *PronunciationAssessor) Assess(ctx context.Context, targetText, userTranscript string) domain.Score {
	return pa.assessor.Assess(ctx, targetText, userTranscript)
}

// WarmUp performs system warm-up to optimize performance.
func (pa *PronunciationAssessor) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	if pa.warmed {
		pa.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(pa.logger, config)
	warmupMgr.RegisterAssessor(pa.assessor)
	warmupMgr.RegisterNormalizer(pa.normalizer)

	warmupMgr.WarmUp(ctx)
	pa.warmed = true
}
