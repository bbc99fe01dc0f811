package document

import (
	"fmt"

	"github.com/wicara-cloud/wicara/internal/domain"
)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 65536 // 64KB

// Document is a knowledge-base entry (immutable value object).
// The search engine only ever reads snapshots of these; mutation happens
// through the knowledge usecase against the external store.
type Document struct {
	id      string
	title   string
	content string
	tags    []string
}

// New validates and creates a Document.
// Title and content are required; tags may be empty.
func New(id, title, content string, tags []string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidDocument)
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("%w: document ID too long (max 256)", domain.ErrInvalidDocument)
	}
	if title == "" {
		return Document{}, fmt.Errorf("%w: title is required", domain.ErrInvalidDocument)
	}
	if content == "" {
		return Document{}, fmt.Errorf("%w: content is required", domain.ErrInvalidDocument)
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("%w: content too large (max %d bytes)", domain.ErrInvalidDocument, MaxContentSize)
	}

	return Document{id: id, title: title, content: content, tags: cloneTags(tags)}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
// Missing fields stay zero-valued; the scorer treats them as empty.
func Reconstruct(id, title, content string, tags []string) Document {
	return Document{id: id, title: title, content: content, tags: tags}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Tags returns the ordered tag list.
func (d *Document) Tags() []string { return d.tags }

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
