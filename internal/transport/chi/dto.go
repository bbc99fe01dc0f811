package chi

import (
	"github.com/wicara-cloud/wicara/internal/domain/document"
	"github.com/wicara-cloud/wicara/internal/domain/search/result"
	"github.com/wicara-cloud/wicara/internal/usecase/chat"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeDocumentNotFound = "document_not_found"
	codeStoreUnavailable = "store_unavailable"
	codeRateLimited      = "rate_limited"
	codeProviderError    = "completion_provider_error"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type chatRequest struct {
	Message string        `json:"message"`
	History []chatMessage `json:"history,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Answer     string   `json:"answer"`
	Confidence string   `json:"confidence"`
	Iterations int      `json:"iterations"`
	Sources    []string `json:"sources"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k,omitempty"`
	Debug bool   `json:"debug,omitempty"`
}

type searchResultItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Score   float64  `json:"score"`
}

type searchResponse struct {
	Results    []searchResultItem `json:"results"`
	Context    string             `json:"context,omitempty"`
	Confidence string             `json:"confidence"`
	Iterations int                `json:"iterations"`
	AgentLog   []string           `json:"agent_log,omitempty"`
}

type upsertDocumentRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

type documentResponse struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

type documentListResponse struct {
	Items []documentResponse `json:"items"`
	Total int                `json:"total"`
}

type clearResponse struct {
	Deleted int `json:"deleted"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func documentToDTO(doc document.Document) documentResponse {
	return documentResponse{
		ID:      doc.ID(),
		Title:   doc.Title(),
		Content: doc.Content(),
		Tags:    doc.Tags(),
	}
}

func resultToDTO(r result.Result) searchResultItem {
	doc := r.Document()
	return searchResultItem{
		ID:      doc.ID(),
		Title:   doc.Title(),
		Content: doc.Content(),
		Tags:    doc.Tags(),
		Score:   r.Score(),
	}
}

func historyFromDTO(msgs []chatMessage) []chat.Message {
	if len(msgs) == 0 {
		return nil
	}
	history := make([]chat.Message, len(msgs))
	for i, m := range msgs {
		history[i] = chat.Message{Role: m.Role, Content: m.Content}
	}
	return history
}

func replyToDTO(reply chat.Reply) chatResponse {
	return chatResponse{
		Answer:     reply.Answer,
		Confidence: string(reply.Confidence),
		Iterations: reply.Iterations,
		Sources:    reply.Sources,
	}
}
