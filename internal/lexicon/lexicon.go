// Package lexicon holds the linguistic resources the search engine consumes:
// stopwords, synonym groups, important entity terms, and multi-word aliases.
// A Lexicon is immutable after construction so engine instances with
// different vocabularies can coexist.
package lexicon

import (
	"sort"
	"strings"
)

// Alias maps a multi-word phrase onto its canonical form
// (e.g. a full institution name collapsing to its acronym).
type Alias struct {
	Phrase    string
	Canonical string
}

// SynonymGroup maps a key term onto its synonyms. Groups are ordered so
// that expansion output is deterministic.
type SynonymGroup struct {
	Key      string
	Synonyms []string
}

// Lexicon is the immutable vocabulary injected into the search engine.
type Lexicon struct {
	stopwords map[string]struct{}
	important map[string]struct{}
	groups    []SynonymGroup
	aliases   []Alias
}

// New builds a Lexicon from the given tables. Input slices are copied;
// aliases are ordered longest phrase first so that longer phrases win
// during normalization.
func New(stopwords, important []string, groups []SynonymGroup, aliases []Alias) *Lexicon {
	l := &Lexicon{
		stopwords: make(map[string]struct{}, len(stopwords)),
		important: make(map[string]struct{}, len(important)),
		groups:    make([]SynonymGroup, 0, len(groups)),
		aliases:   make([]Alias, len(aliases)),
	}
	for _, w := range stopwords {
		l.stopwords[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range important {
		l.important[strings.ToLower(w)] = struct{}{}
	}
	for _, g := range groups {
		syns := make([]string, len(g.Synonyms))
		copy(syns, g.Synonyms)
		l.groups = append(l.groups, SynonymGroup{Key: g.Key, Synonyms: syns})
	}
	copy(l.aliases, aliases)
	sort.SliceStable(l.aliases, func(i, j int) bool {
		return len(l.aliases[i].Phrase) > len(l.aliases[j].Phrase)
	})
	return l
}

// IsStopword reports whether the word belongs to the closed stopword set.
// Membership is a case-insensitive exact match.
func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.stopwords[strings.ToLower(word)]
	return ok
}

// IsImportant reports whether the word is a fixed-vocabulary entity term.
func (l *Lexicon) IsImportant(word string) bool {
	_, ok := l.important[strings.ToLower(word)]
	return ok
}

// ApplyAliases rewrites every known multi-word phrase in text to its
// canonical form, longest phrase first. text is expected lowercase.
func (l *Lexicon) ApplyAliases(text string) string {
	for _, a := range l.aliases {
		text = strings.ReplaceAll(text, a.Phrase, a.Canonical)
	}
	return text
}

// Expand returns the bidirectional one-hop synonym expansion of words:
// every input word, plus the listed synonyms of any word that is a group
// key, plus, for any word appearing as a synonym under some key, that key
// and all of that key's other synonyms. Output is deduplicated and keeps
// first-seen order; expansion is not a transitive closure.
func (l *Lexicon) Expand(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	add := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	for _, w := range words {
		add(w)
	}
	for _, w := range words {
		for _, g := range l.groups {
			if g.Key == w {
				for _, syn := range g.Synonyms {
					add(syn)
				}
			}
		}
		for _, g := range l.groups {
			if containsWord(g.Synonyms, w) {
				add(g.Key)
				for _, syn := range g.Synonyms {
					add(syn)
				}
			}
		}
	}
	return out
}

func containsWord(list []string, w string) bool {
	for _, v := range list {
		if v == w {
			return true
		}
	}
	return false
}
