package ports

import (
	"context"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/core/domain"
)

// Assessor defines the interface for scoring a transcribed utterance
// against a target phrase.
type Assessor interface {
	Assess(ctx context.Context, targetText, userTranscript string) domain.Score
}
