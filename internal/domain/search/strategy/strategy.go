package strategy

// Strategy is the keyword-derivation mode used for one search iteration.
type Strategy string

// Strategy constants, in cycling order.
const (
	// Keyword searches with the plain extracted keywords.
	Keyword Strategy = "keyword"
	// Expanded widens the keyword set with synonym expansion.
	Expanded Strategy = "expanded"
	// Fuzzy substitutes the keyword signal with substring/prefix matching.
	Fuzzy Strategy = "fuzzy"
)

var cycle = []Strategy{Keyword, Expanded, Fuzzy}

// ForIndex returns the strategy for a zero-based strategy index.
// Strategies cycle; the choice is a pure function of the index,
// never of prior results.
func ForIndex(i int) Strategy {
	if i < 0 {
		i = 0
	}
	return cycle[i%len(cycle)]
}

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Keyword || s == Expanded || s == Fuzzy
}
