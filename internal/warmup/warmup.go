package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"
)

// WarmupConfig defines configuration for warming up the system before
// serving latency-sensitive traffic.
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration.
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations.
type Manager struct {
	logger      ports.Logger
	assessors   []ports.Assessor
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterAssessor adds an assessor to be warmed up.
func (wm *Manager) RegisterAssessor(a ports.Assessor) {
	wm.assessors = append(wm.assessors, a)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.assessors)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	var warmupCtx context.Context
	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	} else {
		warmupCtx = ctx
	}

	wm.warmUpNormalizers(warmupCtx)
	wm.warmUpAssessors(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// warmUpNormalizers runs warmup for all registered normalizers.
func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	sample := samplePhrase()

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, normalizer := range wm.normalizers {
					_ = normalizer.Normalize(sample)
				}
			}
		}()
	}

	wg.Wait()
}

// warmUpAssessors runs warmup for all registered assessors, cycling
// through perfect, near-miss and garbled transcripts so every
// classification branch gets exercised.
func (wm *Manager) warmUpAssessors(ctx context.Context) {
	if len(wm.assessors) == 0 {
		return
	}

	wm.logger.Debug("Warming up assessors", "count", len(wm.assessors))

	target := samplePhrase()
	nearMiss := misspokenPhrase(target)
	garbled := strings.Repeat("xylophone ", 8)

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, assessor := range wm.assessors {
					switch j % 3 {
					case 0:
						_ = assessor.Assess(ctx, target, target)
					case 1:
						_ = assessor.Assess(ctx, target, nearMiss)
					default:
						_ = assessor.Assess(ctx, target, garbled)
					}
				}
			}
		}()
	}

	wg.Wait()
}

// samplePhrase returns a practice phrase representative of the short
// utterances the engine scores in production.
func samplePhrase() string {
	return "The quick brown fox jumps over the lazy dog near the river bank."
}

// misspokenPhrase mutates a phrase into a plausible transcript of a
// learner's attempt: every third word loses its first letter, which
// keeps it within the near-miss edit distance.
func misspokenPhrase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		if i%3 == 0 && len(w) > 2 {
			words[i] = w[1:]
		}
	}
	return strings.Join(words, " ")
}
