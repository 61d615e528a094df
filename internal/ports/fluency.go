package ports

// FluencyScorer produces the fluency dimension of an assessment from
// the raw (non-normalized) transcript. The default implementation is a
// coarse binary placeholder; a real acoustic fluency model can be
// substituted without touching the aggregation logic.
type FluencyScorer interface {
	// Fluency returns a score in [0, 100].
	Fluency(userTranscript string) int
}
