package search

import (
	"context"
	"testing"

	"github.com/wicara-cloud/wicara/internal/domain/document"
	"github.com/wicara-cloud/wicara/internal/lexicon"
)

// mockKnowledge implements the consumer interface for tests.
type mockKnowledge struct {
	fetchAllFn func(ctx context.Context) ([]document.Document, error)
	fetchCalls int
}

func (m *mockKnowledge) FetchAll(ctx context.Context) ([]document.Document, error) {
	m.fetchCalls++
	if m.fetchAllFn != nil {
		return m.fetchAllFn(ctx)
	}
	return nil, nil
}

func fixedDocs(docs ...document.Document) *mockKnowledge {
	return &mockKnowledge{
		fetchAllFn: func(_ context.Context) ([]document.Document, error) {
			return docs, nil
		},
	}
}

// testLexicon is a small fixed vocabulary so scoring tests do not depend
// on the full built-in tables.
func testLexicon() *lexicon.Lexicon {
	return lexicon.New(
		[]string{"apa", "apakah", "bagaimana", "cara", "di", "yang", "bisa"},
		[]string{"snbp", "ugm", "ukt"},
		[]lexicon.SynonymGroup{
			{Key: "daftar", Synonyms: []string{"pendaftaran", "registrasi"}},
			{Key: "biaya", Synonyms: []string{"harga", "ukt"}},
		},
		[]lexicon.Alias{
			{Phrase: "universitas gadjah mada", Canonical: "ugm"},
		},
	)
}

func makeDoc(t *testing.T, id, title, content string, tags []string) document.Document {
	t.Helper()
	doc, err := document.New(id, title, content, tags)
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	return doc
}
