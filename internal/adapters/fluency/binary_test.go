package fluency

import "testing"

func TestBinaryScorer(t *testing.T) {
	s := NewBinaryScorer()

	if got := s.Fluency(""); got != 0 {
		t.Errorf("Fluency(\"\") = %d, want 0", got)
	}
	if got := s.Fluency("hello world"); got != DefaultSpokenScore {
		t.Errorf("Fluency(non-empty) = %d, want %d", got, DefaultSpokenScore)
	}
	// The raw transcript decides; whitespace still counts as spoken.
	if got := s.Fluency("   "); got != DefaultSpokenScore {
		t.Errorf("Fluency(whitespace) = %d, want %d", got, DefaultSpokenScore)
	}
}

func TestBinaryScorerWithScore(t *testing.T) {
	s := NewBinaryScorerWithScore(55)

	if got := s.Fluency("anything"); got != 55 {
		t.Errorf("Fluency = %d, want 55", got)
	}
	if got := s.Fluency(""); got != 0 {
		t.Errorf("Fluency(\"\") = %d, want 0", got)
	}
}
