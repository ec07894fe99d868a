package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openclaw/interaction-bridge/internal/domain/entity"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
)

// InteractionRecordRepository is an in-memory implementation of
// repository.InteractionRecordRepository. Thread-safe for concurrent access.
type InteractionRecordRepository struct {
	mu           sync.RWMutex
	records      map[string]*entity.InteractionRecord // id -> record
	byContextKey map[string][]string                  // contextKey -> record IDs
	order        []string                             // insertion order of IDs
}

// NewInteractionRecordRepository creates an empty in-memory repository.
func NewInteractionRecordRepository() *InteractionRecordRepository {
	return &InteractionRecordRepository{
		records:      make(map[string]*entity.InteractionRecord),
		byContextKey: make(map[string][]string),
	}
}

// Save persists a new record.
func (r *InteractionRecordRepository) Save(_ context.Context, record *entity.InteractionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return repository.ErrAlreadyExists
	}

	// Store a copy to prevent external mutations.
	recordCopy := *record
	r.records[record.ID] = &recordCopy
	r.order = append(r.order, record.ID)
	if record.ContextKey != "" {
		r.byContextKey[record.ContextKey] = append(r.byContextKey[record.ContextKey], record.ID)
	}
	return nil
}

// FindByID retrieves a record by ID. Returns nil, nil if not found.
func (r *InteractionRecordRepository) FindByID(_ context.Context, id string) (*entity.InteractionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	recordCopy := *record
	return &recordCopy, nil
}

// FindByContextKey retrieves all records for a context key, oldest first.
func (r *InteractionRecordRepository) FindByContextKey(_ context.Context, contextKey string) ([]*entity.InteractionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byContextKey[contextKey]
	records := make([]*entity.InteractionRecord, 0, len(ids))
	for _, id := range ids {
		if record, ok := r.records[id]; ok {
			recordCopy := *record
			records = append(records, &recordCopy)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// ListRecent retrieves up to limit records, newest first.
func (r *InteractionRecordRepository) ListRecent(_ context.Context, limit int) ([]*entity.InteractionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	records := make([]*entity.InteractionRecord, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(records) < limit; i-- {
		if record, ok := r.records[r.order[i]]; ok {
			recordCopy := *record
			records = append(records, &recordCopy)
		}
	}
	return records, nil
}

// Ping always succeeds for the in-memory store.
func (r *InteractionRecordRepository) Ping(context.Context) error {
	return nil
}
