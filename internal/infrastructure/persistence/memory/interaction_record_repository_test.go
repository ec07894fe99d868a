package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/interaction-bridge/internal/domain/entity"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
)

func newRecord(id, contextKey string, createdAt time.Time) *entity.InteractionRecord {
	return &entity.InteractionRecord{
		ID:              id,
		InteractionType: entity.InteractionTypeBlockAction,
		ActionID:        "btn",
		SessionKey:      "agent:ops:main",
		ContextKey:      contextKey,
		CreatedAt:       createdAt,
	}
}

func TestInteractionRecordRepository_SaveAndFind(t *testing.T) {
	repo := NewInteractionRecordRepository()

	record := newRecord("rec-1", "ctx-1", time.Now().UTC())
	require.NoError(t, repo.Save(context.Background(), record))

	found, err := repo.FindByID(context.Background(), "rec-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "rec-1", found.ID)

	missing, err := repo.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInteractionRecordRepository_SaveDuplicate(t *testing.T) {
	repo := NewInteractionRecordRepository()

	record := newRecord("rec-1", "ctx-1", time.Now().UTC())
	require.NoError(t, repo.Save(context.Background(), record))
	assert.ErrorIs(t, repo.Save(context.Background(), record), repository.ErrAlreadyExists)
}

func TestInteractionRecordRepository_CopiesOnSave(t *testing.T) {
	repo := NewInteractionRecordRepository()

	record := newRecord("rec-1", "ctx-1", time.Now().UTC())
	require.NoError(t, repo.Save(context.Background(), record))

	record.ActionID = "mutated"

	found, err := repo.FindByID(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "btn", found.ActionID)
}

func TestInteractionRecordRepository_FindByContextKey(t *testing.T) {
	repo := NewInteractionRecordRepository()

	base := time.Now().UTC()
	require.NoError(t, repo.Save(context.Background(), newRecord("rec-2", "ctx-1", base.Add(2*time.Second))))
	require.NoError(t, repo.Save(context.Background(), newRecord("rec-1", "ctx-1", base.Add(time.Second))))
	require.NoError(t, repo.Save(context.Background(), newRecord("rec-3", "ctx-2", base)))

	records, err := repo.FindByContextKey(context.Background(), "ctx-1")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.Equal(t, "rec-2", records[1].ID)
}

func TestInteractionRecordRepository_ListRecent(t *testing.T) {
	repo := NewInteractionRecordRepository()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		record := newRecord(fmt.Sprintf("rec-%d", i), "ctx", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Save(context.Background(), record))
	}

	records, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "rec-4", records[0].ID)
	assert.Equal(t, "rec-3", records[1].ID)
}

func TestInteractionRecordRepository_ConcurrentSaves(t *testing.T) {
	repo := NewInteractionRecordRepository()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			record := newRecord(fmt.Sprintf("rec-%d", n), "ctx", time.Now().UTC())
			assert.NoError(t, repo.Save(context.Background(), record))
		}(i)
	}
	wg.Wait()

	records, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 16)
}
