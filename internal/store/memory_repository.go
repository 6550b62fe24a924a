package store

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type MemoryRepository struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: map[string][]byte{}}
}

func (r *MemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, value...), nil
}

func (r *MemoryRepository) Put(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = append([]byte{}, value...)
	return nil
}

func (r *MemoryRepository) Backend() string {
	return RepositoryBackendMemory
}

func (r *MemoryRepository) Close() error {
	return nil
}
