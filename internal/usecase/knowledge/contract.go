package knowledge

import (
	"context"

	"github.com/wicara-cloud/wicara/internal/domain/document"
)

// Repository is the persistence interface for knowledge documents.
type Repository interface {
	Upsert(ctx context.Context, doc *document.Document) (created bool, err error)
	Get(ctx context.Context, id string) (document.Document, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	FetchAll(ctx context.Context) ([]document.Document, error)
	Count(ctx context.Context) (int, error)
}
