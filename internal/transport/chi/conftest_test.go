package chi

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wicara-cloud/wicara/internal/domain"
	"github.com/wicara-cloud/wicara/internal/domain/document"
	"github.com/wicara-cloud/wicara/internal/lexicon"
	chatuc "github.com/wicara-cloud/wicara/internal/usecase/chat"
	healthuc "github.com/wicara-cloud/wicara/internal/usecase/health"
	knowledgeuc "github.com/wicara-cloud/wicara/internal/usecase/knowledge"
	searchuc "github.com/wicara-cloud/wicara/internal/usecase/search"
)

// memRepo is an in-memory knowledge repository for handler tests. It
// backs both the knowledge service and the search engine.
type memRepo struct {
	docs map[string]document.Document
	err  error
}

func newMemRepo(docs ...document.Document) *memRepo {
	m := &memRepo{docs: make(map[string]document.Document)}
	for _, d := range docs {
		m.docs[d.ID()] = d
	}
	return m
}

func (m *memRepo) Upsert(_ context.Context, doc *document.Document) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, exists := m.docs[doc.ID()]
	m.docs[doc.ID()] = *doc
	return !exists, nil
}

func (m *memRepo) Get(_ context.Context, id string) (document.Document, error) {
	if m.err != nil {
		return document.Document{}, m.err
	}
	doc, ok := m.docs[id]
	if !ok {
		return document.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *memRepo) DeleteAll(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := len(m.docs)
	m.docs = make(map[string]document.Document)
	return n, nil
}

func (m *memRepo) FetchAll(_ context.Context) ([]document.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]document.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *memRepo) Count(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.docs), nil
}

type stubCompleter struct {
	answer string
	err    error
}

func (s *stubCompleter) Complete(
	_ context.Context, _ string, _ []chatuc.Message, _ string,
) (string, error) {
	return s.answer, s.err
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

// newTestRouter wires the full handler stack around the in-memory repo.
func newTestRouter(repo *memRepo, completer chatuc.Completer, pingErr error) http.Handler {
	lex := lexicon.Default()
	searchSvc := searchuc.New(repo, lex, searchuc.Config{}, nil)
	knowSvc := knowledgeuc.New(repo)
	chatSvc := chatuc.New(searchSvc, completer, chatuc.Config{}, nil)
	healthSvc := healthuc.New(&stubPinger{err: pingErr}, nil)

	srv := NewServer(chatSvc, searchSvc, knowSvc, healthSvc, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}
