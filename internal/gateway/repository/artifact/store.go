package artifact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Store persists rendered dashboard exports (layout documents, signal
// snapshots) outside the primary database, keyed by dashboard id.
type Store interface {
	Put(ctx context.Context, dashboardID, path string, content []byte) error
	Get(ctx context.Context, dashboardID, path string) ([]byte, error)
	GetURL(ctx context.Context, dashboardID, path string) (string, error)
	List(ctx context.Context, dashboardID string) ([]string, error)
}

var ErrNotFound = errors.New("artifact not found")

// MemoryStore keeps exports in process memory. Used when no object store is
// configured and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, dashboardID, path string, content []byte) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	key, err := objectKey(dashboardID, path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, dashboardID, path string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	key, err := objectKey(dashboardID, path)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) List(_ context.Context, dashboardID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	dashboardID = strings.TrimSpace(dashboardID)
	if dashboardID == "" {
		return nil, fmt.Errorf("dashboard id is required")
	}
	prefix := dashboardID + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, 8)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			out = append(out, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) GetURL(_ context.Context, _, _ string) (string, error) {
	// No addressable URLs for in-memory content.
	return "", nil
}

func objectKey(dashboardID, path string) (string, error) {
	dashboardID = strings.TrimSpace(dashboardID)
	path = strings.TrimSpace(path)
	if dashboardID == "" {
		return "", fmt.Errorf("dashboard id is required")
	}
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	return dashboardID + "/" + strings.TrimLeft(path, "/"), nil
}
