package chat

import (
	"context"

	searchuc "github.com/wicara-cloud/wicara/internal/usecase/search"
)

// Searcher runs the agentic retrieval that grounds an answer.
type Searcher interface {
	Search(ctx context.Context, query string, opts ...searchuc.Option) (searchuc.Outcome, error)
}

// Message is one turn of the conversation.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Completer produces a chat completion for the assembled messages.
type Completer interface {
	Complete(ctx context.Context, system string, history []Message, user string) (string, error)
}
