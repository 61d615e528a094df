package normalizer

import (
	"strings"
	"unicode"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"
)

// DefaultNormalizer implements the default text normalization strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize lower-cases the text, drops every rune that is neither a
// word character nor whitespace, collapses whitespace runs to a single
// space and trims the result. Splitting the output on spaces yields
// the word sequence. The function is idempotent.
func (n *DefaultNormalizer) Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	lastWasSpace := true // suppresses leading spaces
	for _, r := range text {
		switch {
		case isWordRune(r):
			sb.WriteRune(unicode.ToLower(r))
			lastWasSpace = false
		case unicode.IsSpace(r):
			if !lastWasSpace {
				sb.WriteRune(' ')
				lastWasSpace = true
			}
		}
		// Punctuation and symbols are dropped entirely, so
		// "don't" normalizes to "dont" rather than "don t".
	}

	return strings.TrimSuffix(sb.String(), " ")
}

// isWordRune reports whether r is a word character: a Unicode letter,
// digit or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
