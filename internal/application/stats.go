package application

import (
	"sync"
	"time"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
)

// sessionCounters are the running confirmed/pending totals of the session.
type sessionCounters struct {
	mu        sync.Mutex
	total     int
	confirmed int
	pending   int
}

// seed recounts from a freshly loaded snapshot.
func (c *sessionCounters) seed(attendees []entities.Attendee) {
	confirmed := 0
	for i := range attendees {
		if attendees[i].IsConfirmed() {
			confirmed++
		}
	}
	c.mu.Lock()
	c.total = len(attendees)
	c.confirmed = confirmed
	c.pending = len(attendees) - confirmed
	c.mu.Unlock()
}

// confirm records one more confirmed attendee; pending never goes below zero.
func (c *sessionCounters) confirm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmed++
	if c.pending > 0 {
		c.pending--
	}
}

// added counts an attendee that entered the cache through a network lookup.
func (c *sessionCounters) added(confirmed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	if confirmed {
		c.confirmed++
	} else {
		c.pending++
	}
}

func (c *sessionCounters) read() (total, confirmed, pending int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, c.confirmed, c.pending
}

// printTracker remembers the last thermal print state per attendee.
type printTracker struct {
	mu       sync.Mutex
	statuses map[int64]entities.PrintStatus
}

func newPrintTracker() *printTracker {
	return &printTracker{statuses: map[int64]entities.PrintStatus{}}
}

func (p *printTracker) set(id int64, status string, err error) entities.PrintStatus {
	ps := entities.PrintStatus{AttendeeID: id, Status: status, UpdatedAt: time.Now()}
	if err != nil {
		ps.Error = err.Error()
	}
	p.mu.Lock()
	p.statuses[id] = ps
	p.mu.Unlock()
	return ps
}

func (p *printTracker) get(id int64) entities.PrintStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ps, ok := p.statuses[id]; ok {
		return ps
	}
	return entities.PrintStatus{AttendeeID: id, Status: domain.PrintIdle}
}
