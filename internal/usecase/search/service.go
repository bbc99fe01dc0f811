// Package search implements the agentic retrieval engine: a bounded,
// self-correcting loop that extracts keywords from a query, scores every
// knowledge-base document with four weighted signals, evaluates its own
// confidence, and refines the query with a different strategy when the
// results are weak.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wicara-cloud/wicara/internal/domain/search/confidence"
	"github.com/wicara-cloud/wicara/internal/domain/search/result"
	"github.com/wicara-cloud/wicara/internal/domain/search/strategy"
	"github.com/wicara-cloud/wicara/internal/lexicon"
	"github.com/wicara-cloud/wicara/internal/metrics"
)

// Service runs agentic searches against the knowledge store.
type Service struct {
	repo   KnowledgeReader
	lex    *lexicon.Lexicon
	cfg    Config
	logger *zap.Logger
}

// New creates a search service. Zero config fields take defaults;
// a nil logger is replaced with a no-op one.
func New(repo KnowledgeReader, lex *lexicon.Lexicon, cfg Config, logger *zap.Logger) *Service {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, lex: lex, cfg: cfg, logger: logger}
}

// Outcome is the result of one agentic search run.
type Outcome struct {
	Results    []result.Result
	Context    string
	Confidence confidence.Level
	Iterations int
	AgentLog   []string
}

// agentState tracks one run's progress across iterations. Created per
// call, discarded at its end; concurrent runs share nothing.
type agentState struct {
	originalQuery string
	currentQuery  string
	iteration     int
	strategyIdx   int
	bestResults   []result.Result
	bestScore     float64
	log           []string
}

func (st *agentState) trace(format string, args ...any) string {
	line := fmt.Sprintf(format, args...)
	st.log = append(st.log, line)
	return line
}

// Search runs the bounded agent loop for one query. The knowledge base is
// fetched exactly once; all iterations score against that snapshot, so a
// run never races concurrent store writes. The loop terminates in at most
// MaxIterations passes.
func (s *Service) Search(ctx context.Context, query string, opts ...Option) (Outcome, error) {
	call := callOptions{topK: s.cfg.TopK}
	for _, opt := range opts {
		opt(&call)
	}

	docs, err := s.repo.FetchAll(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetch knowledge base: %w", err)
	}

	state := &agentState{originalQuery: query, currentQuery: query}

	if len(docs) == 0 {
		state.trace("knowledge base is empty")
		s.debug("agent search: empty knowledge base", zap.String("query", query))
		return Outcome{
			Results:    []result.Result{},
			Confidence: confidence.None,
			AgentLog:   state.log,
		}, nil
	}

	s.debug("agent search started",
		zap.String("query", query),
		zap.Int("documents", len(docs)),
	)

	thresholds := confidence.Thresholds{
		Confident:  s.cfg.ConfidentScore,
		Acceptable: s.cfg.AcceptableScore,
	}
	sc := scorer{lex: s.lex, weights: s.cfg.Weights}
	// Context phrases always come from the original, unfiltered query.
	phrases := extractPhrases(strings.ToLower(query))

	for state.iteration < s.cfg.MaxIterations {
		state.iteration++

		strat, keywords, thought := s.analyze(state)
		s.debug("iteration",
			zap.Int("n", state.iteration),
			zap.String("strategy", string(strat)),
			zap.String("thought", thought),
		)

		results := sc.score(docs, keywords, strat, phrases, call.topK)
		ev := s.evaluate(results, state)
		state.trace("Evaluation: %s", ev.assessment)
		s.debug("evaluation",
			zap.String("confidence", string(ev.level)),
			zap.Float64("top_score", ev.topScore),
			zap.Bool("retry", ev.shouldRetry),
		)

		if ev.confident || !ev.shouldRetry {
			break
		}
		if state.iteration < s.cfg.MaxIterations {
			state.strategyIdx++
			state.currentQuery = s.refineQuery(state)
			state.trace("Refining query to: %q", state.currentQuery)
		}
	}

	// The final label reflects the best-seen run, not the last iteration.
	contextBlock, level := BuildContext(state.bestResults, thresholds)

	metrics.ObserveSearch(state.iteration, string(level))
	s.debug("agent search complete",
		zap.Int("iterations", state.iteration),
		zap.String("confidence", string(level)),
		zap.Int("documents", len(state.bestResults)),
	)

	if state.bestResults == nil {
		state.bestResults = []result.Result{}
	}
	return Outcome{
		Results:    state.bestResults,
		Context:    contextBlock,
		Confidence: level,
		Iterations: state.iteration,
		AgentLog:   state.log,
	}, nil
}

// analyze derives the iteration's keyword list from the working query and
// the current strategy, recording the reasoning step in the trace.
func (s *Service) analyze(state *agentState) (strategy.Strategy, []string, string) {
	ext := extractKeywords(s.lex, state.currentQuery)
	strat := strategy.ForIndex(state.strategyIdx)

	keywords := ext.keywords
	var thought string
	switch strat {
	case strategy.Expanded:
		keywords = s.lex.Expand(keywords)
		thought = fmt.Sprintf("strategy EXPANDED: widening with synonyms [%s]", strings.Join(keywords, ", "))
	case strategy.Fuzzy:
		thought = "strategy FUZZY: partial matching for broader recall"
	default:
		thought = fmt.Sprintf("strategy KEYWORD: searching with [%s]", strings.Join(keywords, ", "))
	}

	if len(ext.removed) > 0 {
		state.trace("Removed stopwords: [%s]", strings.Join(ext.removed, ", "))
	}
	state.trace("Iteration %d: %s", state.iteration, thought)
	return strat, keywords, thought
}

// debug emits a trace log line when debug mode is on. The flag is a pure
// side channel: it never changes scoring or ranking.
func (s *Service) debug(msg string, fields ...zap.Field) {
	if s.cfg.Debug {
		s.logger.Debug(msg, fields...)
	}
}
