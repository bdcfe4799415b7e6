package output

import (
	"context"

	"expocheckin/internal/domain/entities"
)

// RegistryRepository gives read access to the registration backend.
type RegistryRepository interface {
	FetchAttendees(ctx context.Context) ([]entities.Attendee, error)
	FetchEvents(ctx context.Context) ([]entities.Event, error)
	// FindByQRCode is the network fallback on a cache miss. It returns
	// domain.ErrAttendeeNotFound when no attendee carries the code.
	FindByQRCode(ctx context.Context, code string) (*entities.ResolvedAttendee, error)
}

// AttendanceRepository records confirmed attendance. It is the only
// mutating call on the critical path.
type AttendanceRepository interface {
	ConfirmAttendance(ctx context.Context, c entities.Confirmation) error
}
