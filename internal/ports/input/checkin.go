package input

import (
	"context"

	"expocheckin/internal/domain/entities"
)

// CheckinUseCase is everything the UI layer may call into the check-in core.
type CheckinUseCase interface {
	Scan(ctx context.Context, raw, room string) (*entities.ScanSession, error)
	Confirm(ctx context.Context, attendeeID int64, scanCode string) (*entities.ConfirmationResult, error)
	Reprint(ctx context.Context, attendeeID int64, scanCode string) (*entities.PrintStatus, error)
	PrintStatus(attendeeID int64) entities.PrintStatus
	Refresh(ctx context.Context) error
	ResetGate()
	Stats() entities.SessionStats
}
