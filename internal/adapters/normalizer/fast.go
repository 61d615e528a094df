package normalizer

import (
	"unicode"

	"github.com/InfinityZero3000/LexiLingo-sub008/internal/pool"
	"github.com/InfinityZero3000/LexiLingo-sub008/internal/ports"
)

// Per-byte decision for ASCII input.
const (
	actionDrop byte = iota
	actionKeep
	actionLower
	actionSpace
)

// FastNormalizer is an optimized normalizer with a precomputed ASCII
// decision table and pooled buffers. It produces byte-identical output
// to DefaultNormalizer.
type FastNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewFastNormalizer creates a new fast normalizer.
func NewFastNormalizer() ports.Normalizer {
	n := &FastNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsUpper(r):
			n.asciiTable[i] = actionLower
		case isWordRune(r):
			n.asciiTable[i] = actionKeep
		case unicode.IsSpace(r):
			n.asciiTable[i] = actionSpace
		default:
			n.asciiTable[i] = actionDrop
		}
	}

	return n
}

// Normalize performs the same lower-case, strip and collapse pass as
// DefaultNormalizer with minimal allocations for ASCII input.
func (n *FastNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	lastWasSpace := true
	if asciiOnly {
		// Fast path: one table lookup per byte.
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case actionKeep:
				*buffer = append(*buffer, b)
				lastWasSpace = false
			case actionLower:
				*buffer = append(*buffer, b+('a'-'A'))
				lastWasSpace = false
			case actionSpace:
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			}
		}
	} else {
		for _, r := range text {
			if r < 128 {
				switch n.asciiTable[r] {
				case actionKeep:
					*buffer = append(*buffer, byte(r))
					lastWasSpace = false
				case actionLower:
					*buffer = append(*buffer, byte(r)+('a'-'A'))
					lastWasSpace = false
				case actionSpace:
					if !lastWasSpace {
						*buffer = append(*buffer, ' ')
						lastWasSpace = true
					}
				}
				continue
			}

			switch {
			case isWordRune(r):
				lower := unicode.ToLower(r)
				*buffer = append(*buffer, []byte(string(lower))...)
				lastWasSpace = false
			case unicode.IsSpace(r):
				if !lastWasSpace {
					*buffer = append(*buffer, ' ')
					lastWasSpace = true
				}
			}
		}
	}

	// At most one trailing space can survive the collapse.
	out := *buffer
	if len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}

	return string(out)
}
