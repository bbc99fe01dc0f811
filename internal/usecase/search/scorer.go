package search

import (
	"sort"
	"strings"

	"github.com/wicara-cloud/wicara/internal/domain/document"
	"github.com/wicara-cloud/wicara/internal/domain/search/result"
	"github.com/wicara-cloud/wicara/internal/domain/search/strategy"
	"github.com/wicara-cloud/wicara/internal/lexicon"
)

// Signal weights per field hit. The asymmetry between the keyword and
// exact passes is deliberate: under the fuzzy strategy the keyword signal
// is substituted while the exact pass keeps scoring token equality, so the
// two can disagree.
const (
	keywordContentHit = 10
	keywordTitleHit   = 8
	keywordTagHit     = 6

	exactContentHit = 8
	exactTagHit     = 5
	exactTitleHit   = 4

	entityTitleHit   = 15
	entityTagHit     = 12
	entityContentHit = 5

	contextTitleHit   = 8
	contextContentHit = 3

	fuzzyContentHit = 8
	fuzzyTitleHit   = 6
	fuzzyPrefixHit  = 3
)

// scorer computes the four match signals for one search pass.
type scorer struct {
	lex     *lexicon.Lexicon
	weights result.Weights
}

// docView caches the per-document derived forms so each signal does not
// re-tokenize the same fields.
type docView struct {
	titleTokens   map[string]struct{}
	contentTokens map[string]struct{}
	titleLower    string
	contentLower  string
	tagsLower     []string
}

func (sc scorer) view(d *document.Document) docView {
	tags := make([]string, len(d.Tags()))
	for i, t := range d.Tags() {
		tags[i] = strings.ToLower(t)
	}
	return docView{
		titleTokens:   tokenSet(tokenize(sc.lex, d.Title())),
		contentTokens: tokenSet(tokenize(sc.lex, d.Content())),
		titleLower:    strings.ToLower(d.Title()),
		contentLower:  strings.ToLower(d.Content()),
		tagsLower:     tags,
	}
}

// score runs all four signals against every document in the snapshot,
// keeps documents with a positive weighted total, sorts them by descending
// score (ties stay in snapshot order), and truncates to topK.
func (sc scorer) score(
	docs []document.Document, keywords []string, strat strategy.Strategy,
	phrases []string, topK int,
) []result.Result {
	results := make([]result.Result, 0, len(docs))

	for i := range docs {
		d := &docs[i]
		v := sc.view(d)

		sig := result.Signals{
			Exact:   sc.exactSignal(keywords, v),
			Entity:  sc.entitySignal(keywords, v),
			Context: sc.contextSignal(phrases, v),
		}
		if strat == strategy.Fuzzy {
			sig.Keyword = sc.fuzzySignal(keywords, v)
		} else {
			sig.Keyword = sc.keywordSignal(keywords, v)
		}

		if total := sig.Total(sc.weights); total > 0 {
			results = append(results, result.New(*d, sig, total))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// keywordSignal scores token-set membership: content > title > tag.
// Tags match by substring containment rather than token equality.
func (sc scorer) keywordSignal(keywords []string, v docView) float64 {
	var score float64
	for _, kw := range keywords {
		if _, ok := v.contentTokens[kw]; ok {
			score += keywordContentHit
		}
		if _, ok := v.titleTokens[kw]; ok {
			score += keywordTitleHit
		}
		if tagContains(v.tagsLower, kw) {
			score += keywordTagHit
		}
	}
	return score
}

// exactSignal is a second, differently weighted membership pass over the
// same keyword list: content > tag > title.
func (sc scorer) exactSignal(keywords []string, v docView) float64 {
	var score float64
	for _, kw := range keywords {
		if _, ok := v.contentTokens[kw]; ok {
			score += exactContentHit
		}
		if tagContains(v.tagsLower, kw) {
			score += exactTagHit
		}
		if _, ok := v.titleTokens[kw]; ok {
			score += exactTitleHit
		}
	}
	return score
}

// entitySignal only scores keywords from the important-terms vocabulary,
// rewarding entity precision disproportionately. Tags must match exactly
// here, not by substring.
func (sc scorer) entitySignal(keywords []string, v docView) float64 {
	var score float64
	for _, kw := range keywords {
		if !sc.lex.IsImportant(kw) {
			continue
		}
		if _, ok := v.titleTokens[kw]; ok {
			score += entityTitleHit
		}
		if tagEquals(v.tagsLower, kw) {
			score += entityTagHit
		}
		if _, ok := v.contentTokens[kw]; ok {
			score += entityContentHit
		}
	}
	return score
}

// contextSignal tests the sliding-window phrases of the original,
// unfiltered query for substring containment.
func (sc scorer) contextSignal(phrases []string, v docView) float64 {
	var score float64
	for _, p := range phrases {
		if strings.Contains(v.titleLower, p) {
			score += contextTitleHit
		}
		if strings.Contains(v.contentLower, p) {
			score += contextContentHit
		}
	}
	return score
}

// fuzzySignal replaces keywordSignal under the fuzzy strategy: substring
// containment in content and title, plus a prefix bonus for every content
// word where either side is a prefix of the other. The prefix check fires
// aggressively for very short keywords, which inflates fuzzy scores on
// long documents.
func (sc scorer) fuzzySignal(keywords []string, v docView) float64 {
	contentWords := strings.Fields(v.contentLower)

	var score float64
	for _, kw := range keywords {
		if strings.Contains(v.contentLower, kw) {
			score += fuzzyContentHit
		}
		if strings.Contains(v.titleLower, kw) {
			score += fuzzyTitleHit
		}
		for _, w := range contentWords {
			if strings.HasPrefix(w, kw) || strings.HasPrefix(kw, w) {
				score += fuzzyPrefixHit
			}
		}
	}
	return score
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func tagContains(tags []string, kw string) bool {
	for _, t := range tags {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

func tagEquals(tags []string, kw string) bool {
	for _, t := range tags {
		if t == kw {
			return true
		}
	}
	return false
}
