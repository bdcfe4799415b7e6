package database

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestJournalToDomain(t *testing.T) {
	at := time.Date(2025, 9, 2, 20, 30, 0, 0, time.UTC)
	got := journalToDomain(journalRow{
		ID:           4,
		AttendeeID:   9,
		AttendeeName: "Ana",
		QRCode:       "A|1",
		Kind:         "print",
		Outcome:      "failed",
		Detail:       "sin papel",
		CreatedAt:    pgtype.Timestamptz{Time: at, Valid: true},
	})
	if got.ConfirmationID != "" || got.ID != 4 || got.Detail != "sin papel" || !got.CreatedAt.Equal(at) {
		t.Fatalf("journalToDomain = %+v", got)
	}
	if !journalToDomain(journalRow{}).CreatedAt.IsZero() {
		t.Fatal("null timestamp must map to zero time")
	}
}

func TestNullableConversions(t *testing.T) {
	if textOrNull("").Valid || !textOrNull("x").Valid {
		t.Fatal("textOrNull validity")
	}
	if timeToTimestamptz(time.Time{}).Valid {
		t.Fatal("zero time must be NULL")
	}
}

func TestClampLimit(t *testing.T) {
	cases := map[int]int{-1: defaultRecentLimit, 0: defaultRecentLimit, 10: 10, 10000: maxRecentLimit}
	for in, want := range cases {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
