package search

import (
	"strings"

	"github.com/wicara-cloud/wicara/internal/lexicon"
)

// extraction is the outcome of keyword extraction over a raw query.
type extraction struct {
	// keywords are the surviving tokens in original query order.
	keywords []string
	// removed records the stopwords that were filtered out.
	removed []string
}

// extractKeywords normalizes the query and drops stopwords and
// single-character tokens. A query made entirely of stopwords yields an
// empty keyword list, which downstream scoring must turn into zero scores
// for every document.
func extractKeywords(lex *lexicon.Lexicon, query string) extraction {
	words := strings.Fields(normalize(lex, query))

	var ext extraction
	for _, w := range words {
		switch {
		case lex.IsStopword(w):
			ext.removed = append(ext.removed, w)
		case len(w) > 1:
			ext.keywords = append(ext.keywords, w)
		}
	}
	return ext
}
