package pronunciation

import (
	"reflect"
	"testing"
)

func TestAssessWithDefaults(t *testing.T) {
	tests := []struct {
		name             string
		target           string
		transcript       string
		wantOverall      int
		wantAccuracy     int
		wantFluency      int
		wantCompleteness int
		wantGrade        string
		wantFeedback     string
	}{
		{
			name:             "Perfect match",
			target:           "I went to school",
			transcript:       "I went to school",
			wantOverall:      93, // round((100+100+80)/3)
			wantAccuracy:     100,
			wantFluency:      80,
			wantCompleteness: 100,
			wantGrade:        "A",
			wantFeedback:     "Excellent pronunciation! Keep up the great work!",
		},
		{
			name:             "Near misses still count as matched",
			target:           "think about the weather",
			transcript:       "sink about de weather",
			wantOverall:      93,
			wantAccuracy:     100,
			wantFluency:      80,
			wantCompleteness: 100,
			wantGrade:        "A",
			wantFeedback:     "Excellent pronunciation! Keep up the great work!",
		},
		{
			name:             "Empty transcript",
			target:           "hello world",
			transcript:       "",
			wantOverall:      0,
			wantAccuracy:     0,
			wantFluency:      0,
			wantCompleteness: 0,
			wantGrade:        "F",
			wantFeedback:     "Try again slowly. Listen to the example first.",
		},
		{
			name:             "Partial attempt",
			target:           "the cat sat on the mat",
			transcript:       "the cat sat",
			wantOverall:      60, // accuracy 50, completeness 50, fluency 80
			wantAccuracy:     50,
			wantFluency:      80,
			wantCompleteness: 50,
			wantGrade:        "D",
			wantFeedback:     "Keep practicing! Focus on the highlighted words.",
		},
		{
			name:             "Both empty",
			target:           "",
			transcript:       "",
			wantOverall:      0,
			wantAccuracy:     0,
			wantFluency:      0,
			wantCompleteness: 0,
			wantGrade:        "F",
			wantFeedback:     "Try again slowly. Listen to the example first.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := AssessWithDefaults(tc.target, tc.transcript)

			if score.OverallScore != tc.wantOverall {
				t.Errorf("OverallScore = %d, want %d", score.OverallScore, tc.wantOverall)
			}
			if score.AccuracyScore != tc.wantAccuracy {
				t.Errorf("AccuracyScore = %d, want %d", score.AccuracyScore, tc.wantAccuracy)
			}
			if score.FluencyScore != tc.wantFluency {
				t.Errorf("FluencyScore = %d, want %d", score.FluencyScore, tc.wantFluency)
			}
			if score.CompletenessScore != tc.wantCompleteness {
				t.Errorf("CompletenessScore = %d, want %d", score.CompletenessScore, tc.wantCompleteness)
			}
			if score.Grade != tc.wantGrade {
				t.Errorf("Grade = %q, want %q", score.Grade, tc.wantGrade)
			}
			if score.Feedback != tc.wantFeedback {
				t.Errorf("Feedback = %q, want %q", score.Feedback, tc.wantFeedback)
			}
			if score.TargetText != tc.target {
				t.Errorf("TargetText = %q, want the original input %q", score.TargetText, tc.target)
			}
			if score.UserTranscript != tc.transcript {
				t.Errorf("UserTranscript = %q, want the original input %q", score.UserTranscript, tc.transcript)
			}
		})
	}
}

func TestAssessWithDefaults_WordOutcomes(t *testing.T) {
	score := AssessWithDefaults("think about the weather", "sink about de weather")

	want := []struct {
		word  string
		score int
		issue Issue
	}{
		{"think", 70, IssueMispronunciation},
		{"about", 100, IssueNone},
		{"the", 70, IssueMispronunciation},
		{"weather", 100, IssueNone},
	}

	if len(score.WordScores) != len(want) {
		t.Fatalf("got %d word scores, want %d: %+v", len(score.WordScores), len(want), score.WordScores)
	}
	for i, w := range want {
		ws := score.WordScores[i]
		if ws.Word != w.word || ws.Score != w.score || ws.Issue != w.issue {
			t.Errorf("word %d = {%q %d %v}, want {%q %d %v}",
				i, ws.Word, ws.Score, ws.Issue, w.word, w.score, w.issue)
		}
	}
}

func TestAssessWithDefaults_Insertions(t *testing.T) {
	score := AssessWithDefaults("hello world", "hello world again and again")

	if len(score.WordScores) != 5 {
		t.Fatalf("got %d word scores, want 5: %+v", len(score.WordScores), score.WordScores)
	}
	for _, ws := range score.WordScores[2:] {
		if ws.Issue != IssueInsertion {
			t.Errorf("trailing word %q: issue = %v, want IssueInsertion", ws.Word, ws.Issue)
		}
		if ws.Score != 0 {
			t.Errorf("trailing word %q: score = %d, want 0", ws.Word, ws.Score)
		}
	}
	// Extra words never reduce accuracy or completeness.
	if score.AccuracyScore != 100 || score.CompletenessScore != 100 {
		t.Errorf("accuracy = %d, completeness = %d, want 100/100",
			score.AccuracyScore, score.CompletenessScore)
	}
}

func TestAssessWithDefaults_Deterministic(t *testing.T) {
	first := AssessWithDefaults("think about the weather", "sink about de weather")
	for i := 0; i < 5; i++ {
		again := AssessWithDefaults("think about the weather", "sink about de weather")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestAssessWithDefaults_ScoreBounds(t *testing.T) {
	inputs := []struct{ target, transcript string }{
		{"", ""},
		{"", "completely unexpected words here"},
		{"a phrase that was never spoken", ""},
		{"...", "!!!"},
		{"   ", "\t\n"},
		{"one", "one two three four five six seven eight nine ten"},
		{"répète après moi", "repete apres moi"},
	}

	for _, in := range inputs {
		score := AssessWithDefaults(in.target, in.transcript)
		for name, v := range map[string]int{
			"overall":      score.OverallScore,
			"accuracy":     score.AccuracyScore,
			"fluency":      score.FluencyScore,
			"completeness": score.CompletenessScore,
		} {
			if v < 0 || v > 100 {
				t.Errorf("Assess(%q, %q): %s score %d out of [0,100]",
					in.target, in.transcript, name, v)
			}
		}
		for _, ws := range score.WordScores {
			if ws.Score < 0 || ws.Score > 100 {
				t.Errorf("Assess(%q, %q): word %q score %d out of [0,100]",
					in.target, in.transcript, ws.Word, ws.Score)
			}
		}
	}
}
