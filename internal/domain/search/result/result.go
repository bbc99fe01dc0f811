package result

import "github.com/wicara-cloud/wicara/internal/domain/document"

// Signals holds the four independent sub-scores computed per document.
// Values are the raw signal outputs, before weighting.
type Signals struct {
	Keyword float64
	Exact   float64
	Entity  float64
	Context float64
}

// Weights holds the multipliers that combine Signals into a total score.
type Weights struct {
	Keyword float64
	Exact   float64
	Entity  float64
	Context float64
}

// DefaultWeights returns the tuned default signal weights.
func DefaultWeights() Weights {
	return Weights{Keyword: 5.0, Exact: 2.5, Entity: 2.0, Context: 1.5}
}

// Total combines the signals into a single weighted score.
func (s Signals) Total(w Weights) float64 {
	return s.Keyword*w.Keyword + s.Exact*w.Exact + s.Entity*w.Entity + s.Context*w.Context
}

// Result is a single scored search hit. Created once per iteration and
// never mutated afterwards, only compared.
type Result struct {
	doc     document.Document
	signals Signals
	score   float64
}

// New creates a scored result.
func New(doc document.Document, signals Signals, score float64) Result {
	return Result{doc: doc, signals: signals, score: score}
}

// Document returns the matched document.
func (r *Result) Document() document.Document { return r.doc }

// Signals returns the sub-score breakdown.
func (r *Result) Signals() Signals { return r.signals }

// Score returns the weighted total score.
func (r *Result) Score() float64 { return r.score }

// TotalScore sums the weighted totals across a result set. Used when
// comparing one iteration's run against the best-seen run.
func TotalScore(results []Result) float64 {
	var sum float64
	for i := range results {
		sum += results[i].score
	}
	return sum
}
