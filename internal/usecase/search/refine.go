package search

import (
	"strings"

	"github.com/wicara-cloud/wicara/internal/domain/search/strategy"
)

// refineKeywordLimit caps how many synonym-expanded keywords feed the
// refined query for the expanded strategy.
const refineKeywordLimit = 8

// refineQuery rewrites the working query for the next iteration. The
// rewrite is keyed to the strategy the loop is moving into, and always
// derives from the original query, never from a previous refinement.
func (s *Service) refineQuery(state *agentState) string {
	original := extractKeywords(s.lex, state.originalQuery).keywords

	switch strategy.ForIndex(state.strategyIdx) {
	case strategy.Expanded:
		expanded := s.lex.Expand(original)
		if len(expanded) > refineKeywordLimit {
			expanded = expanded[:refineKeywordLimit]
		}
		return strings.Join(expanded, " ")
	case strategy.Fuzzy:
		var important []string
		for _, kw := range original {
			if s.lex.IsImportant(kw) {
				important = append(important, kw)
			}
		}
		if len(important) > 0 {
			return strings.Join(important, " ")
		}
	}

	return state.originalQuery
}
