package entities

import (
	"slices"

	"expocheckin/internal/domain"
)

// Attendee is one registered person as held in the cache.
// QRText and QRCode are alternate scan keys; either may be empty.
type Attendee struct {
	ID                  int64
	Name                string
	Email               string
	Company             string
	Role                string
	Phone               string
	QRText              string
	QRCode              string
	AttendanceConfirmed bool
	Status              string
	SelectedEvents      []int64 // zero = none selected
	RegisteredAt        string
	AttendedAt          string
}

// IsConfirmed reports whether the attendee already counts as checked in.
func (a *Attendee) IsConfirmed() bool {
	return a.AttendanceConfirmed || a.Status == domain.AttendanceConfirmed || a.Status == domain.AttendancePresent
}

// Clone returns a deep copy so callers never alias cache storage.
func (a Attendee) Clone() Attendee {
	a.SelectedEvents = slices.Clone(a.SelectedEvents)
	return a
}

// ResolvedAttendee is an attendee with its selected events resolved
// against the event snapshot. Unknown event ids are dropped, so
// TotalEvents may be smaller than len(SelectedEvents).
type ResolvedAttendee struct {
	Attendee
	Events      []Event
	TotalEvents int
}

// InRoom reports whether any resolved event takes place in room.
func (r *ResolvedAttendee) InRoom(room string) bool {
	for _, e := range r.Events {
		if e.Room == room {
			return true
		}
	}
	return false
}
