package repository

import (
	"context"

	"github.com/openclaw/interaction-bridge/internal/domain/entity"
)

// InteractionRecordRepository stores the append-only audit trail of enqueued
// system events. Implementations must be safe for concurrent use.
type InteractionRecordRepository interface {
	// Save persists a new record. IDs are assigned by the caller.
	Save(ctx context.Context, record *entity.InteractionRecord) error

	// FindByID retrieves a record by its unique identifier.
	// Returns nil, nil if not found.
	FindByID(ctx context.Context, id string) (*entity.InteractionRecord, error)

	// FindByContextKey retrieves all records sharing a context key, ordered by
	// creation time (oldest first). Returns an empty slice if none found.
	FindByContextKey(ctx context.Context, contextKey string) ([]*entity.InteractionRecord, error)

	// ListRecent retrieves the most recent records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.InteractionRecord, error)
}

// Pinger reports storage backend health for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
