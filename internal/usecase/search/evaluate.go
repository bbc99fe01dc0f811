package search

import (
	"fmt"

	"github.com/wicara-cloud/wicara/internal/domain/search/confidence"
	"github.com/wicara-cloud/wicara/internal/domain/search/result"
)

// evaluation is the outcome of judging one iteration's result set.
type evaluation struct {
	confident   bool
	shouldRetry bool
	level       confidence.Level
	assessment  string
	topScore    float64
	avgScore    float64
}

// evaluate classifies an iteration's results against the two thresholds
// and decides whether to stop or retry. It also folds the run into the
// best-seen state: replacement requires the new summed score to strictly
// exceed the previous best, so ties keep the earlier result.
func (s *Service) evaluate(results []result.Result, state *agentState) evaluation {
	if len(results) == 0 {
		return evaluation{
			shouldRetry: true,
			level:       confidence.None,
			assessment:  "no results found; another strategy is needed",
		}
	}

	topScore := results[0].Score()
	avgScore := result.TotalScore(results) / float64(len(results))

	ev := evaluation{topScore: topScore, avgScore: avgScore}
	switch {
	case topScore >= s.cfg.ConfidentScore:
		ev.level = confidence.High
		ev.confident = true
		ev.assessment = fmt.Sprintf("top score %.2f >= %.0f: highly relevant", topScore, s.cfg.ConfidentScore)
	case topScore >= s.cfg.AcceptableScore:
		ev.level = confidence.Medium
		// Medium is accepted only from the second iteration on.
		ev.confident = state.iteration >= 2
		ev.shouldRetry = !ev.confident
		ev.assessment = fmt.Sprintf("top score %.2f >= %.0f: acceptable", topScore, s.cfg.AcceptableScore)
	default:
		ev.level = confidence.Low
		ev.shouldRetry = true
		ev.assessment = fmt.Sprintf("top score %.2f < %.0f: weak match", topScore, s.cfg.AcceptableScore)
	}

	if total := result.TotalScore(results); total > state.bestScore {
		state.bestScore = total
		state.bestResults = results
	}

	return ev
}
