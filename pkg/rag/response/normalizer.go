package response

import (
	"math/rand"
	"regexp"
	"strings"

	"course-advisor-be/internal/constant"
)

type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Result is the cleaned, user-safe reply plus its confidence label.
type Result struct {
	Text       string
	Confidence Confidence
}

type Config struct {
	MinAnswerLength      int
	StrongMatchThreshold float64
	ClosingMinLength     int
	ClosingMaxLength     int
}

func DefaultConfig(strongMatchThreshold float64) Config {
	return Config{
		MinAnswerLength:      10,
		StrongMatchThreshold: strongMatchThreshold,
		ClosingMinLength:     20,
		ClosingMaxLength:     400,
	}
}

// removalPatterns strip model meta-commentary about internal mechanisms.
// Order matters: phrase-level patterns run before the word-level ones so
// partial matches don't leave stubs behind.
var removalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(according to|based on|looking at|from)\s+(the\s+|our\s+|my\s+)?(reference material|provided (material|information|context|data)|faq( database| list| section)?|database|knowledge base|context|documents?|sources?)[,:]?\s*`),
	regexp.MustCompile(`(?i)(let me|i('ll| will| am going to| can))\s+(check|look (at|into|through)|search|consult)\s+(the\s+|our\s+)?(data(base)?|records?|faq|documents?|information|material|system)[^.!?]*[.!?]?\s*`),
	regexp.MustCompile(`(?i)(checking|searching|consulting)\s+(the\s+|our\s+)?(data(base)?|records?|faq|documents?|system)(\.{3}|…)?\s*`),
	regexp.MustCompile(`(?i)the (reference material|provided (context|information)|faq( database)?) (says|states|shows|mentions|indicates)( that)?\s*`),
	regexp.MustCompile(`(?i)\b(as (mentioned|stated|shown) in (the )?(reference material|faq|context|documents?))\b[,:]?\s*`),
}

var (
	spaceBeforePunct = regexp.MustCompile(`\s+([,.!?;:])`)
	repeatedPunct    = regexp.MustCompile(`([,;:])\s*([,;:])+`)
	multiSpace       = regexp.MustCompile(`[ \t]{2,}`)
	multiNewline     = regexp.MustCompile(`\n{3,}`)
	leadingPunct     = regexp.MustCompile(`^[\s,.;:]+`)
)

// Normalizer turns raw provider output into a user-safe reply with a
// confidence label derived from the retrieval scores.
type Normalizer struct {
	cfg Config
	rng *rand.Rand
}

// NewNormalizer builds a normalizer. The random source is injected so closing
// phrase selection is deterministic under test.
func NewNormalizer(cfg Config, rng *rand.Rand) *Normalizer {
	return &Normalizer{cfg: cfg, rng: rng}
}

// Normalize cleans rawText and labels it using the retrieval scores that
// produced the grounding context.
func (n *Normalizer) Normalize(rawText string, retrievalScores []float64) Result {
	text := strings.TrimSpace(rawText)

	for _, pattern := range removalPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	text = collapse(text)

	if len(text) < n.cfg.MinAnswerLength {
		text = constant.ClarificationRequest
	}

	confidence := ConfidenceLow
	for _, score := range retrievalScores {
		if score > n.cfg.StrongMatchThreshold {
			confidence = ConfidenceHigh
			break
		}
	}

	if confidence == ConfidenceLow {
		text += constant.LowConfidenceCaveat
	}

	if n.shouldClose(text) {
		text += constant.ClosingPhrases[n.rng.Intn(len(constant.ClosingPhrases))]
	}

	return Result{Text: text, Confidence: confidence}
}

func (n *Normalizer) shouldClose(text string) bool {
	if n.rng == nil {
		return false
	}
	if len(text) < n.cfg.ClosingMinLength || len(text) > n.cfg.ClosingMaxLength {
		return false
	}
	return !endsWithTerminalPunctuation(text)
}

func endsWithTerminalPunctuation(text string) bool {
	trimmed := strings.TrimRight(text, " \n\t")
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

func collapse(text string) string {
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = repeatedPunct.ReplaceAllString(text, "$1")
	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = leadingPunct.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
