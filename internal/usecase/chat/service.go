// Package chat answers user questions: it runs the agentic search, splices
// the retrieved context into the system prompt, and asks the completion
// provider for the final reply.
package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wicara-cloud/wicara/internal/domain/search/confidence"
)

// referenceBlock wraps the retrieved context inside the system prompt. The
// model treats it as advisory material; confidence never gates the answer,
// only its phrasing via the context banner.
const referenceBlock = "\n\n---\nINFORMASI REFERENSI (gunakan informasi ini untuk menjawab jika relevan):\n\n%s\n---"

// defaultSystemPrompt is used when configuration does not supply one.
const defaultSystemPrompt = "Kamu adalah asisten virtual kampus yang ramah, helpful, dan informatif. " +
	"Jawab dalam Bahasa Indonesia secara singkat dan jelas."

// Config holds the chat assembly settings.
type Config struct {
	SystemPrompt string
	HistoryLimit int // most recent messages forwarded to the model
}

// Service orchestrates search plus completion.
type Service struct {
	searcher  Searcher
	completer Completer
	cfg       Config
	logger    *zap.Logger
}

// New creates a chat service.
func New(searcher Searcher, completer Completer, cfg Config, logger *zap.Logger) *Service {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{searcher: searcher, completer: completer, cfg: cfg, logger: logger}
}

// Reply is the answer to one user message.
type Reply struct {
	Answer     string
	Confidence confidence.Level
	Iterations int
	Sources    []string // matched document titles, best first
}

// Ask retrieves grounding context for the message and generates a reply.
// Retrieval failure aborts the call; an empty retrieval does not, the
// model simply answers without reference material.
func (s *Service) Ask(ctx context.Context, message string, history []Message) (Reply, error) {
	outcome, err := s.searcher.Search(ctx, message)
	if err != nil {
		return Reply{}, fmt.Errorf("retrieve context: %w", err)
	}

	system := s.cfg.SystemPrompt
	if outcome.Context != "" {
		system += fmt.Sprintf(referenceBlock, outcome.Context)
	}

	if len(history) > s.cfg.HistoryLimit {
		history = history[len(history)-s.cfg.HistoryLimit:]
	}

	answer, err := s.completer.Complete(ctx, system, history, message)
	if err != nil {
		return Reply{}, fmt.Errorf("generate answer: %w", err)
	}

	sources := make([]string, 0, len(outcome.Results))
	for i := range outcome.Results {
		doc := outcome.Results[i].Document()
		sources = append(sources, doc.Title())
	}

	s.logger.Info("chat answered",
		zap.String("confidence", string(outcome.Confidence)),
		zap.Int("iterations", outcome.Iterations),
		zap.Int("sources", len(sources)),
	)

	return Reply{
		Answer:     answer,
		Confidence: outcome.Confidence,
		Iterations: outcome.Iterations,
		Sources:    sources,
	}, nil
}
