package persist

import "context"

// Remote is the timetable REST service.
type Remote interface {
	Save(ctx context.Context, req SaveRequest) (Response, error)
	Load(ctx context.Context, id string) (Response, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, subjectID int) ([]Summary, error)
}

// Cache is a local key/value store for offline snapshots.
// Get returns ErrCacheMiss when the key is absent.
type Cache interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
