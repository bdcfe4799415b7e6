package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"expocheckin/internal/domain/entities"
)

// journalRow mirrors a checkin_journal row.
type journalRow struct {
	ID             int64
	ConfirmationID pgtype.Text
	AttendeeID     int64
	AttendeeName   string
	QRCode         string
	Kind           string
	Outcome        string
	Detail         string
	CreatedAt      pgtype.Timestamptz
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func journalToDomain(r journalRow) entities.JournalEntry {
	return entities.JournalEntry{
		ID:             r.ID,
		ConfirmationID: r.ConfirmationID.String,
		AttendeeID:     r.AttendeeID,
		AttendeeName:   r.AttendeeName,
		QRCode:         r.QRCode,
		Kind:           r.Kind,
		Outcome:        r.Outcome,
		Detail:         r.Detail,
		CreatedAt:      pgtypeTimestamptzToTime(r.CreatedAt),
	}
}
