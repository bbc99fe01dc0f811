package confidence

// Level is the qualitative relevance label derived from the top scored
// result. It only steers loop continuation and context phrasing, never
// correctness.
type Level string

// Confidence levels, weakest first.
const (
	None   Level = "none"
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Thresholds holds the two score cut-offs for classification.
type Thresholds struct {
	Confident  float64 // >= Confident -> High
	Acceptable float64 // >= Acceptable -> Medium
}

// Classify maps a top score onto a confidence level. hasResults
// distinguishes None (empty result set) from Low (weak matches).
func Classify(topScore float64, hasResults bool, t Thresholds) Level {
	if !hasResults {
		return None
	}
	switch {
	case topScore >= t.Confident:
		return High
	case topScore >= t.Acceptable:
		return Medium
	default:
		return Low
	}
}
