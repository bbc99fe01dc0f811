// Package knowledge manages the knowledge-base documents the search
// engine retrieves from: create, update, delete, list.
package knowledge

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/wicara-cloud/wicara/internal/domain/document"
)

// Service handles knowledge-base document management.
type Service struct {
	repo Repository
}

// New creates a knowledge service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add validates and stores a new document. When id is empty a UUID is
// generated. Returns the stored document.
func (s *Service) Add(ctx context.Context, id, title, content string, tags []string) (document.Document, error) {
	if id == "" {
		id = uuid.NewString()
	}

	doc, err := document.New(id, title, content, tags)
	if err != nil {
		return document.Document{}, fmt.Errorf("validate document: %w", err)
	}

	if _, err := s.repo.Upsert(ctx, &doc); err != nil {
		return document.Document{}, fmt.Errorf("store document: %w", err)
	}
	return doc, nil
}

// Update replaces an existing document. The document must already exist.
func (s *Service) Update(ctx context.Context, id, title, content string, tags []string) (document.Document, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return document.Document{}, fmt.Errorf("load document %s: %w", id, err)
	}

	doc, err := document.New(id, title, content, tags)
	if err != nil {
		return document.Document{}, fmt.Errorf("validate document: %w", err)
	}

	if _, err := s.repo.Upsert(ctx, &doc); err != nil {
		return document.Document{}, fmt.Errorf("store document: %w", err)
	}
	return doc, nil
}

// Get returns a single document by ID.
func (s *Service) Get(ctx context.Context, id string) (document.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return document.Document{}, fmt.Errorf("load document %s: %w", id, err)
	}
	return doc, nil
}

// Delete removes a document by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// Clear removes every document and returns how many were deleted.
func (s *Service) Clear(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear knowledge base: %w", err)
	}
	return n, nil
}

// List returns all documents sorted by ID.
func (s *Service) List(ctx context.Context) ([]document.Document, error) {
	docs, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID() < docs[j].ID() })
	return docs, nil
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}
