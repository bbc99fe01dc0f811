package search

import (
	"regexp"
	"strings"

	"github.com/wicara-cloud/wicara/internal/lexicon"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// normalize lowercases text, canonicalizes multi-word aliases (longest
// first), replaces punctuation with spaces, and collapses whitespace.
// The order matters: aliases must be rewritten before punctuation goes.
func normalize(lex *lexicon.Lexicon, text string) string {
	t := strings.ToLower(text)
	t = lex.ApplyAliases(t)
	t = nonAlnumRe.ReplaceAllString(t, " ")
	return strings.Join(strings.Fields(t), " ")
}

// tokenize splits normalized text into tokens longer than one character.
// Pure and deterministic; no stemming.
func tokenize(lex *lexicon.Lexicon, text string) []string {
	words := strings.Fields(normalize(lex, text))
	tokens := words[:0]
	for _, w := range words {
		if len(w) > 1 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// extractPhrases builds the 2-word and 3-word sliding-window phrases used
// by the context signal. Words of one or two characters are skipped before
// windowing. text is expected lowercase.
func extractPhrases(text string) []string {
	raw := strings.Fields(text)
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if len(w) > 2 {
			words = append(words, w)
		}
	}

	var phrases []string
	for i := 0; i+1 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1])
	}
	for i := 0; i+2 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1]+" "+words[i+2])
	}
	return phrases
}
