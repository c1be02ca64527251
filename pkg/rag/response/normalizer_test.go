package response

import (
	"math/rand"
	"strings"
	"testing"

	"course-advisor-be/internal/constant"
)

func newTestNormalizer(seed int64) *Normalizer {
	return NewNormalizer(DefaultConfig(0.6), rand.New(rand.NewSource(seed)))
}

var highScores = []float64{0.8}
var lowScores = []float64{0.3}

func TestNormalizeStripsMetaCommentary(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		banned  []string
		keeping string
	}{
		{
			name:    "faq database reference",
			raw:     "According to the FAQ database, the networking track fee is 500 USD per term.",
			banned:  []string{"According to", "FAQ database"},
			keeping: "networking track fee is 500 USD",
		},
		{
			name:    "checking data hedge",
			raw:     "Let me check the database. The Python course runs for twelve weeks in total.",
			banned:  []string{"Let me check"},
			keeping: "Python course runs for twelve weeks",
		},
		{
			name:    "based on provided context",
			raw:     "Based on the provided context, enrollment opens on the first Monday of each month.",
			banned:  []string{"Based on", "provided context"},
			keeping: "enrollment opens on the first Monday",
		},
		{
			name:    "searching system ellipsis",
			raw:     "Searching the system... The data science track includes four production projects.",
			banned:  []string{"Searching the system"},
			keeping: "data science track includes four production projects",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestNormalizer(1).Normalize(tt.raw, highScores)
			for _, b := range tt.banned {
				if strings.Contains(got.Text, b) {
					t.Errorf("banned substring %q survived: %q", b, got.Text)
				}
			}
			if !strings.Contains(got.Text, tt.keeping) {
				t.Errorf("useful content lost: %q", got.Text)
			}
		})
	}
}

func TestNormalizeCollapsesArtifacts(t *testing.T) {
	raw := "The fee is 500 USD , per the FAQ database.  Classes start   monthly."
	got := newTestNormalizer(1).Normalize(raw, highScores)

	if strings.Contains(got.Text, " ,") || strings.Contains(got.Text, "  ") {
		t.Errorf("whitespace artifacts remain: %q", got.Text)
	}
}

func TestNormalizeSubstitutesClarificationWhenTooShort(t *testing.T) {
	got := newTestNormalizer(1).Normalize("ok", highScores)
	if !strings.HasPrefix(got.Text, constant.ClarificationRequest) {
		t.Errorf("expected clarification substitution, got %q", got.Text)
	}
}

func TestNormalizeEmptyInputSubstitutesClarification(t *testing.T) {
	got := newTestNormalizer(1).Normalize("   ", lowScores)
	if !strings.HasPrefix(got.Text, constant.ClarificationRequest) {
		t.Errorf("expected clarification substitution, got %q", got.Text)
	}
	if got.Confidence != ConfidenceLow {
		t.Errorf("expected low confidence, got %s", got.Confidence)
	}
	if !strings.Contains(got.Text, strings.TrimSpace(constant.LowConfidenceCaveat)) {
		t.Errorf("low confidence must append the caveat: %q", got.Text)
	}
}

func TestNormalizeConfidenceThreshold(t *testing.T) {
	text := "The networking track costs 500 USD per term and runs for ten weeks."

	high := newTestNormalizer(1).Normalize(text, []float64{0.2, 0.7})
	if high.Confidence != ConfidenceHigh {
		t.Errorf("score above threshold must yield high confidence")
	}
	if strings.Contains(high.Text, strings.TrimSpace(constant.LowConfidenceCaveat)) {
		t.Errorf("high confidence must not append the caveat: %q", high.Text)
	}

	low := newTestNormalizer(1).Normalize(text, []float64{0.2, 0.5})
	if low.Confidence != ConfidenceLow {
		t.Errorf("no score above threshold must yield low confidence")
	}
	if !strings.Contains(low.Text, strings.TrimSpace(constant.LowConfidenceCaveat)) {
		t.Errorf("low confidence must append the caveat: %q", low.Text)
	}
}

func TestNormalizeBoundaryScoreIsLow(t *testing.T) {
	got := newTestNormalizer(1).Normalize("The course runs for twelve weeks every spring.", []float64{0.6})
	if got.Confidence != ConfidenceLow {
		t.Error("score equal to the threshold is not a strong match")
	}
}

func TestNormalizeNoScoresIsLow(t *testing.T) {
	got := newTestNormalizer(1).Normalize("The course runs for twelve weeks every spring.", nil)
	if got.Confidence != ConfidenceLow {
		t.Error("empty retrieval must yield low confidence")
	}
}

func TestNormalizeClosingPhraseIsDeterministic(t *testing.T) {
	// In band, no terminal punctuation, high confidence so no caveat gets in
	// the way.
	text := "The networking track costs 500 USD and runs ten weeks"

	a := newTestNormalizer(7).Normalize(text, highScores)
	b := newTestNormalizer(7).Normalize(text, highScores)
	if a.Text != b.Text {
		t.Errorf("same seed must give same closing phrase: %q vs %q", a.Text, b.Text)
	}

	var matched bool
	for _, phrase := range constant.ClosingPhrases {
		if strings.HasSuffix(a.Text, phrase) {
			matched = true
		}
	}
	if !matched {
		t.Errorf("expected a closing phrase from the fixed set: %q", a.Text)
	}
}

func TestNormalizeNoClosingAfterTerminalPunctuation(t *testing.T) {
	text := "The networking track costs 500 USD and runs ten weeks."
	got := newTestNormalizer(7).Normalize(text, highScores)
	if got.Text != text {
		t.Errorf("text ending in terminal punctuation must stay untouched: %q", got.Text)
	}
}

func TestNormalizeNoClosingOutsideBand(t *testing.T) {
	long := strings.Repeat("The course catalog covers many tracks and options ", 10)
	got := newTestNormalizer(7).Normalize(long, highScores)
	for _, phrase := range constant.ClosingPhrases {
		if strings.HasSuffix(got.Text, phrase) {
			t.Errorf("closing phrase appended outside length band: %q", got.Text)
		}
	}
}
