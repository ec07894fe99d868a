package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/openclaw/interaction-bridge/internal/domain/entity"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
)

// InteractionRecordRepository is a SQLite-backed audit store for
// processed interactions.
type InteractionRecordRepository struct {
	db *DB
}

// NewInteractionRecordRepository creates a new SQLite interaction record repository.
func NewInteractionRecordRepository(db *DB) *InteractionRecordRepository {
	return &InteractionRecordRepository{db: db}
}

const recordColumns = "id, interaction_type, action_id, user_id, channel_id, session_key, context_key, payload, created_at"

// Save persists an interaction record. Returns ErrAlreadyExists when a
// record with the same ID was saved before.
func (r *InteractionRecordRepository) Save(ctx context.Context, rec *entity.InteractionRecord) error {
	payload := []byte("{}")
	if len(rec.Payload) > 0 {
		payload = rec.Payload
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO interaction_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		string(rec.InteractionType),
		rec.ActionID,
		nullString(rec.UserID),
		nullString(rec.ChannelID),
		rec.SessionKey,
		rec.ContextKey,
		string(payload),
		timeToString(rec.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("insert interaction record: %w", err)
	}
	return nil
}

// FindByID returns the record with the given ID, or nil when absent.
func (r *InteractionRecordRepository) FindByID(ctx context.Context, id string) (*entity.InteractionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM interaction_records WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find interaction record: %w", err)
	}
	return rec, nil
}

// FindByContextKey returns all records for a context key, oldest first.
func (r *InteractionRecordRepository) FindByContextKey(ctx context.Context, contextKey string) ([]*entity.InteractionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM interaction_records
		WHERE context_key = ?
		ORDER BY created_at ASC, id ASC`, contextKey)
	if err != nil {
		return nil, fmt.Errorf("query interaction records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListRecent returns the most recent records, newest first.
func (r *InteractionRecordRepository) ListRecent(ctx context.Context, limit int) ([]*entity.InteractionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM interaction_records
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent interaction records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Ping verifies the underlying database connection.
func (r *InteractionRecordRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*entity.InteractionRecord, error) {
	var (
		rec       entity.InteractionRecord
		kind      string
		userID    sql.NullString
		channelID sql.NullString
		payload   string
		createdAt string
	)
	err := row.Scan(
		&rec.ID,
		&kind,
		&rec.ActionID,
		&userID,
		&channelID,
		&rec.SessionKey,
		&rec.ContextKey,
		&payload,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	rec.InteractionType = entity.InteractionType(kind)
	rec.UserID = stringFromNull(userID)
	rec.ChannelID = stringFromNull(channelID)
	rec.Payload = []byte(payload)
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*entity.InteractionRecord, error) {
	records := make([]*entity.InteractionRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction records: %w", err)
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// modernc.org/sqlite reports constraint violations in the error text.
	return strings.Contains(err.Error(), "constraint failed")
}
