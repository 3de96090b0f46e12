package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a memory id does not exist for the tenant
// (or was already deleted).
var ErrNotFound = errors.New("memory record not found")

type MemoryRepository interface {
	Add(ctx context.Context, rec MemoryRecord) (int64, error)
	SoftDelete(ctx context.Context, tenantID string, id int64) error
	// GetRecent returns up to limit non-deleted records for the tenant,
	// newest first.
	GetRecent(ctx context.Context, tenantID string, limit int) ([]MemoryRecord, error)
}

// ContextCache stores built context blocks keyed by tenant. Implementations
// decide entry lifetime; a Get on an expired entry reports a miss.
type ContextCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Invalidator is the slice of the context builder the memory write path
// needs: dropping a tenant's cached block after a mutation.
type Invalidator interface {
	Invalidate(tenantID string)
}
