package entities

import "time"

// Confirmation is the attendance record sent to the backend.
type Confirmation struct {
	AttendeeID int64
	QRCode     string
	VerifiedBy string
}

// ConfirmationResult carries only the outcome of the confirmation itself;
// side effects report through the journal.
type ConfirmationResult struct {
	ID          string
	AttendeeID  int64
	Status      string
	ConfirmedAt time.Time
	Attendee    Attendee
	Recounted   bool // false when the attendee was already confirmed
}

// LabelJob is a thermal label print request. QRText is always the
// original scanned code.
type LabelJob struct {
	AttendeeID int64
	Name       string
	Company    string
	Role       string
	Phone      string
	QRText     string
	Mode       string
}

// Notification is the attendance message sent through the WhatsApp proxy.
// PhotoURL is empty when no photo was captured.
type Notification struct {
	Name      string
	Company   string
	Role      string
	Timestamp string
	Phone     string
	PhotoURL  string
}

// PrintStatus is the last known thermal print state of an attendee.
type PrintStatus struct {
	AttendeeID int64
	Status     string
	Error      string
	UpdatedAt  time.Time
}

// JournalEntry records one confirmation or side-effect outcome.
type JournalEntry struct {
	ID             int64
	ConfirmationID string
	AttendeeID     int64
	AttendeeName   string
	QRCode         string
	Kind           string
	Outcome        string
	Detail         string
	CreatedAt      time.Time
}

// SessionStats are the running check-in counters shown on the verifier.
type SessionStats struct {
	Total     int
	Confirmed int
	Pending   int
	Events    int
	Loaded    bool
}
