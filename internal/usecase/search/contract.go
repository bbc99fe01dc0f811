package search

import (
	"context"

	"github.com/wicara-cloud/wicara/internal/domain/document"
	"github.com/wicara-cloud/wicara/internal/domain/search/result"
)

// KnowledgeReader provides the knowledge-base snapshot. The engine fetches
// the whole collection once per run; iterations never go back to the store.
type KnowledgeReader interface {
	FetchAll(ctx context.Context) ([]document.Document, error)
}

// Config holds the engine tuning knobs. Zero values fall back to the
// defaults below; the scoring tests assume them.
type Config struct {
	MaxIterations   int            // retry-loop bound
	ConfidentScore  float64        // top score >= this -> high confidence, stop
	AcceptableScore float64        // top score >= this -> medium confidence
	TopK            int            // result truncation count
	Debug           bool           // emit per-step traces to the logger
	Weights         result.Weights // signal combination weights
}

// DefaultConfig returns the default engine tuning.
func DefaultConfig() Config {
	return Config{
		MaxIterations:   3,
		ConfidentScore:  15,
		AcceptableScore: 8,
		TopK:            3,
		Weights:         result.DefaultWeights(),
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.MaxIterations <= 0 {
		c.MaxIterations = def.MaxIterations
	}
	if c.ConfidentScore <= 0 {
		c.ConfidentScore = def.ConfidentScore
	}
	if c.AcceptableScore <= 0 {
		c.AcceptableScore = def.AcceptableScore
	}
	if c.TopK <= 0 {
		c.TopK = def.TopK
	}
	if c.Weights == (result.Weights{}) {
		c.Weights = def.Weights
	}
}

// Option customizes a single Search call.
type Option func(*callOptions)

type callOptions struct {
	topK int
}

// WithTopK overrides the configured result truncation count for one call.
func WithTopK(k int) Option {
	return func(o *callOptions) {
		if k > 0 {
			o.topK = k
		}
	}
}
