package normalizer

import "github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"

// NormalizerFactory creates the appropriate normalizer based on
// performance requirements.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects the normalizer implementation to create.
type NormalizerType int

const (
	// DefaultNormalizerType is the straightforward rune-at-a-time normalizer.
	DefaultNormalizerType NormalizerType = iota
	// FastNormalizerType uses a precomputed ASCII table and pooled buffers.
	FastNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type.
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case FastNormalizerType:
		return NewFastNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
