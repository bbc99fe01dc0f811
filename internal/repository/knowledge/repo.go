// Package knowledge persists knowledge-base documents as JSON values and
// serves the fetch-all snapshot the search engine runs against.
package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wicara-cloud/wicara/internal/db"
	"github.com/wicara-cloud/wicara/internal/domain"
	"github.com/wicara-cloud/wicara/internal/domain/document"
)

// store is the consumer interface for knowledge documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, paths ...string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase knowledge.Repository and search.KnowledgeReader.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a knowledge repository. keyPrefix namespaces all keys.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Upsert creates or updates a document. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, doc *document.Document) (bool, error) {
	key := r.docKey(doc.ID())
	data, err := json.Marshal(toDTO(doc))
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, storeErr("check exists", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, storeErr("json.set", key, err)
	}

	return !exists, nil
}

// Get returns a document by ID.
func (r *Repo) Get(ctx context.Context, id string) (document.Document, error) {
	key := r.docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return document.Document{}, domain.ErrDocumentNotFound
		}
		return document.Document{}, storeErr("json.get", key, err)
	}
	return parseJSONGetResult(id, raw)
}

// Delete removes a document by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.docKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return storeErr("check exists", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return storeErr("del", key, err)
	}
	return nil
}

// DeleteAll removes every knowledge document.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return 0, storeErr("del", key, err)
		}
	}
	return len(keys), nil
}

// FetchAll returns the full knowledge-base snapshot in sorted key order,
// so equal-score results rank deterministically. An empty store yields an
// empty slice, not an error.
func (r *Repo) FetchAll(ctx context.Context) ([]document.Document, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	raws, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w: %w", domain.ErrStoreUnavailable, err)
	}

	docs := make([]document.Document, 0, len(keys))
	for i, raw := range raws {
		if raw == nil {
			// Key deleted between scan and fetch.
			continue
		}
		doc, err := parseJSONGetResult(r.docID(keys[i]), raw)
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Count returns the number of stored documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (r *Repo) scanKeys(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"knowledge:*")
	if err != nil {
		return nil, fmt.Errorf("scan knowledge keys: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return keys, nil
}

// storeErr marks a failed store command as an availability failure so the
// transport maps it to 503. Not-found sentinels never take this path.
func storeErr(op, key string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, key, domain.ErrStoreUnavailable, err)
}

func (r *Repo) docKey(id string) string {
	return r.keyPrefix + "knowledge:" + id
}

func (r *Repo) docID(key string) string {
	return strings.TrimPrefix(key, r.keyPrefix+"knowledge:")
}

// parseJSONGetResult parses a JSON.GET "$" response, which wraps the
// document in a one-element array.
func parseJSONGetResult(id string, raw []byte) (document.Document, error) {
	var arr []docDTO
	if err := json.Unmarshal(raw, &arr); err != nil {
		// Some paths return the bare object.
		var dto docDTO
		if err2 := json.Unmarshal(raw, &dto); err2 != nil {
			return document.Document{}, fmt.Errorf("parse document %s: %w", id, err)
		}
		return dto.toDomain(id), nil
	}
	if len(arr) == 0 {
		return document.Document{}, fmt.Errorf("parse document %s: empty result", id)
	}
	return arr[0].toDomain(id), nil
}
