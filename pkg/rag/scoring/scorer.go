package scoring

import (
	"strings"
)

// stopWords are dropped before scoring so filler never inflates overlap.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"should": true, "could": true, "may": true, "might": true, "must": true,
	"can": true, "what": true, "which": true, "who": true, "where": true,
	"when": true, "why": true, "how": true, "about": true, "tell": true,
	"me": true, "my": true, "your": true, "our": true, "their": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "you": true, "i": true, "we": true,
	"please": true, "much": true, "many": true,
}

// suffixes stripped by the light stemmer, longest first.
var suffixes = []string{"ments", "ment", "ings", "tion", "ing", "ers", "ies", "ed", "er", "es", "s", "e"}

// Stem applies light suffix stripping. It is deliberately crude: the goal is
// that "courses"/"course" and "enrolling"/"enroll" collide, not linguistic
// correctness.
func Stem(word string) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= 3 {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

// Tokenize lower-cases, strips punctuation, drops stop words and short
// fragments, then stems what remains.
func Tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.Trim(word, ".,?!;:()[]{}'\"")
		if len(word) <= 2 || stopWords[word] {
			continue
		}
		tokens = append(tokens, Stem(word))
	}

	return tokens
}

// TokenSet returns the deduplicated token set for a text.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		set[tok] = true
	}
	return set
}

// Score computes token-overlap relevance between a query and a document's
// concatenated text fields. The result is in [0,1]; 0 means no overlap.
//
// score = |query tokens ∩ document tokens| / max(|document tokens|, 1)
func Score(query, document string) float64 {
	queryTokens := TokenSet(query)
	docTokens := TokenSet(document)

	if len(queryTokens) == 0 {
		return 0
	}

	intersection := 0
	for tok := range queryTokens {
		if docTokens[tok] {
			intersection++
		}
	}

	denominator := len(docTokens)
	if denominator < 1 {
		denominator = 1
	}

	return float64(intersection) / float64(denominator)
}
