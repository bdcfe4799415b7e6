package output

import (
	"context"

	"expocheckin/internal/domain/entities"
)

type LabelPrinter interface {
	PrintLabel(ctx context.Context, job entities.LabelJob) error
}

// PhotoCapturer triggers the venue camera. An empty URL with a nil error
// means the capture ran but produced no photo.
type PhotoCapturer interface {
	CapturePhoto(ctx context.Context, attendeeID int64, name string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}

// ScanJournal receives confirmation and side-effect outcomes.
type ScanJournal interface {
	Record(ctx context.Context, entry entities.JournalEntry) error
}

// JournalReader lists recorded outcomes, newest first.
type JournalReader interface {
	Recent(ctx context.Context, limit int) ([]entities.JournalEntry, error)
}
