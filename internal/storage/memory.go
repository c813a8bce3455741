package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Novip1906/join/internal/firebase"
	"github.com/Novip1906/join/internal/jsontree"
)

// MemoryStorage keeps the whole database tree in process. It follows the same
// path semantics as the REST API and is used for development and tests.
type MemoryStorage struct {
	mu   sync.RWMutex
	root any
	ids  firebase.PushIDGenerator
	now  func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{now: time.Now}
}

func (s *MemoryStorage) Get(ctx context.Context, path string, out any) error {
	s.mu.RLock()
	node := jsontree.Get(s.root, firebase.SplitPath(path))
	var (
		data []byte
		err  error
	)
	if node != nil {
		data, err = json.Marshal(node)
	}
	s.mu.RUnlock()

	if node == nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return json.Unmarshal(data, out)
}

func (s *MemoryStorage) Post(ctx context.Context, path string, v any) (string, error) {
	segs := firebase.SplitPath(path)
	if len(segs) == 0 {
		return "", ErrRootWrite
	}
	value, err := jsontree.Normalize(v)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.ids.Next(s.now())
	s.root = jsontree.Set(s.root, append(segs, key), value)
	return key, nil
}

func (s *MemoryStorage) Put(ctx context.Context, path string, v any) error {
	segs := firebase.SplitPath(path)
	if len(segs) == 0 {
		return ErrRootWrite
	}
	value, err := jsontree.Normalize(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = jsontree.Set(s.root, segs, value)
	return nil
}

func (s *MemoryStorage) Patch(ctx context.Context, path string, v any) error {
	segs := firebase.SplitPath(path)
	if len(segs) == 0 {
		return ErrRootWrite
	}
	children, err := patchChildren(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = jsontree.Merge(s.root, segs, children)
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, path string) error {
	segs := firebase.SplitPath(path)
	if len(segs) == 0 {
		return ErrRootWrite
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = jsontree.Delete(s.root, segs)
	return nil
}

// patchChildren normalises a PATCH body. Null children are kept so that Merge
// can delete them.
func patchChildren(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}
	var children map[string]any
	if err := json.Unmarshal(data, &children); err != nil || children == nil {
		return nil, ErrNotAnObject
	}
	return children, nil
}
