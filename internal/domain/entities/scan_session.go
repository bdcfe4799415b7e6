package entities

import "time"

// ScanSession is one scan-to-confirmation cycle, owned by the caller.
type ScanSession struct {
	ID             string
	RawCode        string
	NormalizedCode string
	Attendee       *ResolvedAttendee // nil until lookup completes
	Status         string
	Source         string
	Room           string
	InRoom         *bool // set only when Room was requested and resolved
	StartedAt      time.Time
}
