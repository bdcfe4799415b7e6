package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"expocheckin/internal/domain/entities"
	"expocheckin/internal/ports/output"
)

var (
	_ output.ScanJournal   = (*JournalRepository)(nil)
	_ output.JournalReader = (*JournalRepository)(nil)
)

const (
	insertJournalSQL = `
INSERT INTO checkin_journal
	(confirmation_id, attendee_id, attendee_name, qr_code, kind, outcome, detail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	recentJournalSQL = `
SELECT id, confirmation_id, attendee_id, attendee_name, qr_code, kind, outcome, detail, created_at
FROM checkin_journal
ORDER BY created_at DESC, id DESC
LIMIT $1`

	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// JournalRepository stores scan outcomes in PostgreSQL.
type JournalRepository struct {
	pool *pgxpool.Pool
}

func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

func (r *JournalRepository) Record(ctx context.Context, e entities.JournalEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := r.pool.Exec(ctx, insertJournalSQL,
		textOrNull(e.ConfirmationID),
		e.AttendeeID,
		e.AttendeeName,
		e.QRCode,
		e.Kind,
		e.Outcome,
		e.Detail,
		timeToTimestamptz(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (r *JournalRepository) Recent(ctx context.Context, limit int) ([]entities.JournalEntry, error) {
	limit = ClampLimit(limit)
	rows, err := r.pool.Query(ctx, recentJournalSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (journalRow, error) {
		var j journalRow
		err := row.Scan(&j.ID, &j.ConfirmationID, &j.AttendeeID, &j.AttendeeName,
			&j.QRCode, &j.Kind, &j.Outcome, &j.Detail, &j.CreatedAt)
		return j, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	out := make([]entities.JournalEntry, len(collected))
	for i, j := range collected {
		out[i] = journalToDomain(j)
	}
	return out, nil
}

// ClampLimit bounds a requested page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultRecentLimit
	case limit > maxRecentLimit:
		return maxRecentLimit
	default:
		return limit
	}
}
