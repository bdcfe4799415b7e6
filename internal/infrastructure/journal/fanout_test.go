package journal

import (
	"context"
	"errors"
	"testing"

	"expocheckin/internal/domain/entities"
)

type sink struct {
	err     error
	entries []entities.JournalEntry
}

func (s *sink) Record(_ context.Context, e entities.JournalEntry) error {
	s.entries = append(s.entries, e)
	return s.err
}

func TestFanoutReachesEverySink(t *testing.T) {
	bad := &sink{err: errors.New("sink down")}
	good := &sink{}
	f := NewFanout(bad, nil, good, LogJournal{})

	err := f.Record(context.Background(), entities.JournalEntry{AttendeeID: 1, Kind: "print", Outcome: "failed"})
	if !errors.Is(err, bad.err) {
		t.Fatalf("err = %v, want sink error", err)
	}
	if len(bad.entries) != 1 || len(good.entries) != 1 || good.entries[0].AttendeeID != 1 {
		t.Fatalf("bad=%v good=%v", bad.entries, good.entries)
	}
}

func TestEmptyFanout(t *testing.T) {
	if err := NewFanout().Record(context.Background(), entities.JournalEntry{}); err != nil {
		t.Fatalf("Record = %v", err)
	}
}
