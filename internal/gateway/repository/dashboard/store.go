package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	_ "github.com/jackc/pgx/v5/stdlib"

	"flowlens/internal/document"
)

// ErrNotFound is returned when no document exists for the requested id.
var ErrNotFound = errors.New("dashboard: document not found")

const cacheTTL = 5 * time.Minute

// Store persists dashboard documents. With a DSN it runs on Postgres via the
// pgx stdlib driver and keeps a read-through LRU in front of it; without one
// it holds documents in memory, which is enough for local development.
type Store struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error

	mu   sync.RWMutex
	byID map[string]*document.Document

	cache *expirable.LRU[string, *document.Document]
}

// New returns an in-memory store.
func New() *Store {
	return &Store{byID: make(map[string]*document.Document)}
}

// NewPostgres opens a Postgres-backed store and verifies connectivity.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("open dashboard db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping dashboard db: %w", err)
	}
	return &Store{
		db:    db,
		cache: expirable.NewLRU[string, *document.Document](1024, nil, cacheTTL),
	}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS dashboard_documents (
    id         TEXT PRIMARY KEY,
    owner_id   TEXT NOT NULL DEFAULT '',
    entity     TEXT NOT NULL DEFAULT '',
    skeleton   TEXT NOT NULL DEFAULT '',
    payload    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS dashboard_documents_owner_idx ON dashboard_documents (owner_id, updated_at DESC);
`)
	})
	return s.schemaErr
}

// Save upserts a document.
func (s *Store) Save(ctx context.Context, doc *document.Document) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if doc == nil || strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("document with id is required")
	}

	if s.db == nil {
		s.mu.Lock()
		cp := *doc
		s.byID[doc.ID] = &cp
		s.mu.Unlock()
		return nil
	}

	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO dashboard_documents (id, owner_id, entity, skeleton, payload, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    owner_id = EXCLUDED.owner_id,
    entity = EXCLUDED.entity,
    skeleton = EXCLUDED.skeleton,
    payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at
`, doc.ID, doc.OwnerID, doc.Entity, doc.Skeleton, payload, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	if s.cache != nil {
		s.cache.Remove(doc.ID)
	}
	return nil
}

// Get fetches one document by id.
func (s *Store) Get(ctx context.Context, id string) (*document.Document, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("document id is required")
	}

	if s.db == nil {
		s.mu.RLock()
		doc, ok := s.byID[id]
		s.mu.RUnlock()
		if !ok {
			return nil, ErrNotFound
		}
		cp := *doc
		return &cp, nil
	}

	if s.cache != nil {
		if doc, ok := s.cache.Get(id); ok {
			cp := *doc
			return &cp, nil
		}
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM dashboard_documents WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	var doc document.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if s.cache != nil {
		cp := doc
		s.cache.Add(id, &cp)
	}
	return &doc, nil
}

// ListByOwner returns the owner's documents, most recently updated first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]*document.Document, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	ownerID = strings.TrimSpace(ownerID)

	if s.db == nil {
		s.mu.RLock()
		var out []*document.Document
		for _, doc := range s.byID {
			if doc.OwnerID == ownerID {
				cp := *doc
				out = append(out, &cp)
			}
		}
		s.mu.RUnlock()
		sort.Slice(out, func(i, j int) bool {
			if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
				return out[i].UpdatedAt.After(out[j].UpdatedAt)
			}
			return out[i].ID < out[j].ID
		})
		return out, nil
	}

	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM dashboard_documents WHERE owner_id = $1 ORDER BY updated_at DESC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*document.Document
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var doc document.Document
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, &doc)
	}
	return out, rows.Err()
}

// Delete removes a document. Missing ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("document id is required")
	}

	if s.db == nil {
		s.mu.Lock()
		delete(s.byID, id)
		s.mu.Unlock()
		return nil
	}
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dashboard_documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if s.cache != nil {
		s.cache.Remove(id)
	}
	return nil
}
