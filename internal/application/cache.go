package application

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
	"expocheckin/internal/ports/output"
	"expocheckin/pkg/qrcode"
)

// Snapshot is an immutable view of the cache contents.
type Snapshot struct {
	Attendees []entities.Attendee
	Events    map[int64]entities.Event
}

// AttendeeCache holds the session snapshot of attendees and events.
// Stored slices and maps are never mutated once published; updates swap in
// a fresh copy.
type AttendeeCache struct {
	registry output.RegistryRepository

	loadMu sync.Mutex // serializes Load

	mu        sync.RWMutex
	loaded    bool
	stale     bool
	attendees []entities.Attendee
	index     map[string]int
	events    map[int64]entities.Event
}

func NewAttendeeCache(registry output.RegistryRepository) *AttendeeCache {
	return &AttendeeCache{
		registry: registry,
		index:    map[string]int{},
		events:   map[int64]entities.Event{},
	}
}

// Load fetches both snapshots unless a fresh one is already held. On failure
// the previous contents stay in place and the error wraps
// domain.ErrCacheLoadFailed.
func (c *AttendeeCache) Load(ctx context.Context) (Snapshot, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.RLock()
	fresh := c.loaded && !c.stale
	c.mu.RUnlock()
	if fresh {
		return c.Snapshot(), nil
	}

	attendees, err := c.registry.FetchAttendees(ctx)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("%w: attendees: %w", domain.ErrCacheLoadFailed, err)
	}
	events, err := c.registry.FetchEvents(ctx)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("%w: events: %w", domain.ErrCacheLoadFailed, err)
	}

	eventMap := make(map[int64]entities.Event, len(events))
	for _, e := range events {
		if _, dup := eventMap[e.ID]; !dup {
			eventMap[e.ID] = e
		}
	}
	attendees = dedupeAttendees(attendees)

	c.mu.Lock()
	c.attendees = attendees
	c.index = buildIndex(attendees)
	c.events = eventMap
	c.loaded = true
	c.stale = false
	c.mu.Unlock()

	log.Printf("✅ Caché cargada: %d registros, %d eventos", len(attendees), len(eventMap))
	return Snapshot{Attendees: attendees, Events: eventMap}, nil
}

// Invalidate forces the next Load to refetch. Current contents keep
// answering lookups until then.
func (c *AttendeeCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Loaded reports whether at least one load succeeded.
func (c *AttendeeCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *AttendeeCache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{Attendees: c.attendees, Events: c.events}
}

// Lookup resolves a scanned code against the cache. The normalized input is
// probed first, then the raw input; stored codes are indexed both raw and
// normalized, covering records saved before normalization existed.
func (c *AttendeeCache) Lookup(raw string) (*entities.ResolvedAttendee, bool) {
	normalized := qrcode.Normalize(raw)
	if normalized == "" {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[normalized]
	if !ok {
		i, ok = c.index[raw]
	}
	if !ok {
		return nil, false
	}
	resolved := resolve(c.attendees[i], c.events)
	return &resolved, true
}

// Get returns a copy of the cached attendee with the given id.
func (c *AttendeeCache) Get(id int64) (entities.Attendee, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.position(id)
	if i < 0 {
		return entities.Attendee{}, false
	}
	return c.attendees[i].Clone(), true
}

// Update applies fn to a copy of the attendee and publishes a new slice
// holding it. It returns the attendee as it was before and after fn.
func (c *AttendeeCache) Update(id int64, fn func(a *entities.Attendee)) (before, after entities.Attendee, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.position(id)
	if i < 0 {
		return entities.Attendee{}, entities.Attendee{}, false
	}
	before = c.attendees[i].Clone()
	after = before.Clone()
	fn(&after)
	after.ID = id

	next := slices.Clone(c.attendees)
	next[i] = after
	c.attendees = next
	if after.QRText != before.QRText || after.QRCode != before.QRCode {
		c.index = buildIndex(next)
	}
	return before, after.Clone(), true
}

// Remember merges an attendee resolved over the network into the cache,
// together with any events it brought along.
func (c *AttendeeCache) Remember(r entities.ResolvedAttendee) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(c.attendees)
	if i := c.position(r.ID); i >= 0 {
		next[i] = r.Attendee.Clone()
	} else {
		next = append(next, r.Attendee.Clone())
	}
	c.attendees = next
	c.index = buildIndex(next)

	var missing []entities.Event
	for _, e := range r.Events {
		if _, ok := c.events[e.ID]; !ok {
			missing = append(missing, e)
		}
	}
	if len(missing) > 0 {
		events := make(map[int64]entities.Event, len(c.events)+len(missing))
		for id, e := range c.events {
			events[id] = e
		}
		for _, e := range missing {
			events[e.ID] = e
		}
		c.events = events
	}
}

// Resolve attaches the cached events to an attendee.
func (c *AttendeeCache) Resolve(a entities.Attendee) entities.ResolvedAttendee {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return resolve(a, c.events)
}

// position must be called with mu held.
func (c *AttendeeCache) position(id int64) int {
	for i := range c.attendees {
		if c.attendees[i].ID == id {
			return i
		}
	}
	return -1
}

func resolve(a entities.Attendee, events map[int64]entities.Event) entities.ResolvedAttendee {
	out := entities.ResolvedAttendee{Attendee: a.Clone(), Events: []entities.Event{}}
	for _, id := range a.SelectedEvents {
		if e, ok := events[id]; ok {
			out.Events = append(out.Events, e)
		}
	}
	out.TotalEvents = len(out.Events)
	return out
}

func buildIndex(attendees []entities.Attendee) map[string]int {
	index := make(map[string]int, len(attendees)*2)
	add := func(key string, i int) {
		if key == "" {
			return
		}
		if _, taken := index[key]; !taken {
			index[key] = i
		}
	}
	for i, a := range attendees {
		add(qrcode.Normalize(a.QRText), i)
		add(qrcode.Normalize(a.QRCode), i)
		add(a.QRText, i)
		add(a.QRCode, i)
	}
	return index
}

// dedupeAttendees keeps the first record of every id.
func dedupeAttendees(in []entities.Attendee) []entities.Attendee {
	seen := make(map[int64]struct{}, len(in))
	out := make([]entities.Attendee, 0, len(in))
	for _, a := range in {
		if _, dup := seen[a.ID]; dup {
			log.Printf("⚠️ Registro duplicado ignorado (id=%d)", a.ID)
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
