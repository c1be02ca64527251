package scoring

import (
	"math"
	"testing"
)

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"courses", "cours"},
		{"course", "cours"},
		{"enrolling", "enroll"},
		{"enrollments", "enroll"},
		{"payment", "pay"},
		{"fee", "fee"},
		{"ed", "ed"},
		{"ties", "tie"},
	}

	for _, tt := range tests {
		if got := Stem(tt.word); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "drops stop words and short fragments",
			text: "What is the fee for a course?",
			want: []string{"fee", "cours"},
		},
		{
			name: "strips edge punctuation",
			text: "Python! (beginner-friendly)",
			want: []string{"python", "beginner-friendly"},
		},
		{
			name: "empty input",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		document string
		want     float64
	}{
		{
			name:     "full overlap",
			query:    "python course",
			document: "python course",
			want:     1.0,
		},
		{
			name:     "no overlap",
			query:    "python course",
			document: "campus parking rules",
			want:     0,
		},
		{
			name:     "empty query scores zero",
			query:    "the a an",
			document: "python course",
			want:     0,
		},
		{
			name:     "empty document scores zero",
			query:    "python course",
			document: "",
			want:     0,
		},
		{
			name:     "inflected forms collide",
			query:    "enrolling courses",
			document: "enrollment course",
			want:     1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.document)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.query, tt.document, got, tt.want)
			}
		})
	}
}

func TestScoreNormalizesByDocumentLength(t *testing.T) {
	query := "python course fees"
	short := "python course fees"
	long := "python course fees schedule campus instructor certificate placement alumni"

	if Score(query, short) <= Score(query, long) {
		t.Error("longer document with same overlap should score lower")
	}
}

func TestScoreRange(t *testing.T) {
	docs := []string{
		"python course for beginners",
		"advanced networking workshop",
		"",
		"fee schedule and payment plans",
	}
	for _, doc := range docs {
		s := Score("python course fee", doc)
		if s < 0 || s > 1 {
			t.Errorf("score out of range for %q: %v", doc, s)
		}
	}
}
