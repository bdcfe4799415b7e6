package application

import (
	"context"
	"errors"
	"sync"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
)

type fakeRegistry struct {
	mu          sync.Mutex
	attendees   []entities.Attendee
	events      []entities.Event
	attendeeErr error
	eventErr    error
	network     map[string]*entities.ResolvedAttendee
	networkErr  error
	fetches     int
	lookups     []string
	block       chan struct{} // when set, FindByQRCode waits on it
}

func (f *fakeRegistry) FetchAttendees(context.Context) ([]entities.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.attendeeErr != nil {
		return nil, f.attendeeErr
	}
	return f.attendees, nil
}

func (f *fakeRegistry) FetchEvents(context.Context) ([]entities.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.events, nil
}

func (f *fakeRegistry) FindByQRCode(ctx context.Context, code string) (*entities.ResolvedAttendee, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, code)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.networkErr != nil {
		return nil, f.networkErr
	}
	if r, ok := f.network[code]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrAttendeeNotFound
}

func (f *fakeRegistry) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups)
}

type fakeAttendance struct {
	mu    sync.Mutex
	calls []entities.Confirmation
	err   error
}

func (f *fakeAttendance) ConfirmAttendance(_ context.Context, c entities.Confirmation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.err
}

type fakePrinter struct {
	mu    sync.Mutex
	jobs  []entities.LabelJob
	err   error
	panic bool
	block chan struct{} // when set, PrintLabel waits on it
}

func (f *fakePrinter) PrintLabel(_ context.Context, job entities.LabelJob) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	if f.panic {
		panic("printer driver crashed")
	}
	return f.err
}

func (f *fakePrinter) jobCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

type fakeCamera struct {
	url   string
	err   error
	block chan struct{} // when set, CapturePhoto waits on it
}

func (f *fakeCamera) CapturePhoto(context.Context, int64, string) (string, error) {
	if f.block != nil {
		<-f.block
	}
	return f.url, f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []entities.Notification
	err  error
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeNotifier) Notify(_ context.Context, n entities.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

type memJournal struct {
	mu      sync.Mutex
	entries []entities.JournalEntry
	err     error
	block   chan struct{} // when set, Record waits on it
}

func (j *memJournal) Record(_ context.Context, e entities.JournalEntry) error {
	if j.block != nil {
		<-j.block
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return j.err
}

func (j *memJournal) outcome(kind string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, e := range j.entries {
		if e.Kind == kind {
			return e.Outcome, true
		}
	}
	return "", false
}

var errBoom = errors.New("boom")
