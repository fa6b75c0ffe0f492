package port

import "context"

// KVStore is a string-keyed blob store holding JSON documents
type KVStore interface {
	// Get returns the stored value; found is false for a missing key
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// FileStorage writes generated exports
type FileStorage interface {
	Save(ctx context.Context, relativePath string, content []byte) (string, error)
	Read(ctx context.Context, relativePath string) ([]byte, error)
	Exists(ctx context.Context, relativePath string) bool
	GetFullPath(relativePath string) string
}
