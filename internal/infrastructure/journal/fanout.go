// Package journal combines scan journal sinks.
package journal

import (
	"context"
	"errors"
	"log"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
	"expocheckin/internal/ports/output"
)

var (
	_ output.ScanJournal = (*Fanout)(nil)
	_ output.ScanJournal = LogJournal{}
)

// Fanout forwards every entry to all sinks. A failing sink does not stop
// the others; their errors are joined.
type Fanout struct {
	sinks []output.ScanJournal
}

func NewFanout(sinks ...output.ScanJournal) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Record(ctx context.Context, e entities.JournalEntry) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogJournal writes entries to the process log.
type LogJournal struct{}

func (LogJournal) Record(_ context.Context, e entities.JournalEntry) error {
	icon := "✅"
	if e.Outcome != domain.OutcomeOK {
		icon = "⚠️"
	}
	log.Printf("%s bitácora %s/%s registro=%d %s", icon, e.Kind, e.Outcome, e.AttendeeID, e.Detail)
	return nil
}
