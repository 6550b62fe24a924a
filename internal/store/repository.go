package store

import (
	"context"
	"errors"
	"strings"
)

const (
	RepositoryBackendBbolt  = "bbolt"
	RepositoryBackendFile   = "file"
	RepositoryBackendSQLite = "sqlite"
	RepositoryBackendMemory = "memory"
)

// KV is the key-value byte store the state document lives in. Get returns
// nil without error when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Backend() string
	Close() error
}

type RepositoryPaths struct {
	DBPath     string
	FileDir    string
	SQLitePath string
}

func OpenRepository(paths RepositoryPaths, backend string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", RepositoryBackendBbolt:
		if strings.TrimSpace(paths.DBPath) == "" {
			return nil, errors.New("db path is required for bbolt repository")
		}
		return NewBboltRepository(paths.DBPath)
	case RepositoryBackendFile:
		if strings.TrimSpace(paths.FileDir) == "" {
			return nil, errors.New("directory is required for file repository")
		}
		return NewFileRepository(paths.FileDir), nil
	case RepositoryBackendSQLite:
		if strings.TrimSpace(paths.SQLitePath) == "" {
			return nil, errors.New("db path is required for sqlite repository")
		}
		return NewSQLiteRepository(paths.SQLitePath)
	case RepositoryBackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, errors.New("unsupported repository backend: " + backend)
	}
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{RepositoryBackendBbolt, RepositoryBackendFile, RepositoryBackendSQLite, RepositoryBackendMemory}
}
