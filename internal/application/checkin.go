package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
	"expocheckin/internal/ports/input"
	"expocheckin/internal/ports/output"
	"expocheckin/pkg/qrcode"
	"expocheckin/pkg/textclean"
	"expocheckin/pkg/tz"
)

var _ input.CheckinUseCase = (*CheckinService)(nil)

// SideEffects are the venue devices and channels triggered after a
// confirmation. Any of them may be nil to disable it.
type SideEffects struct {
	Printer  output.LabelPrinter
	Camera   output.PhotoCapturer
	Notifier output.Notifier
}

type CheckinOptions struct {
	VerifiedBy        string
	PrintMode         string
	SettleDelay       time.Duration
	SideEffectTimeout time.Duration
}

// CheckinService drives scan lookups and attendance confirmations.
type CheckinService struct {
	cache      *AttendeeCache
	gate       *ScanGate
	registry   output.RegistryRepository
	attendance output.AttendanceRepository
	effects    SideEffects
	journal    output.ScanJournal
	opts       CheckinOptions

	counters sessionCounters
	prints   *printTracker
	inflight sync.WaitGroup
	now      func() time.Time
}

func NewCheckinService(
	cache *AttendeeCache,
	gate *ScanGate,
	registry output.RegistryRepository,
	attendance output.AttendanceRepository,
	effects SideEffects,
	journal output.ScanJournal,
	opts CheckinOptions,
) *CheckinService {
	if opts.SideEffectTimeout <= 0 {
		opts.SideEffectTimeout = 30 * time.Second
	}
	return &CheckinService{
		cache:      cache,
		gate:       gate,
		registry:   registry,
		attendance: attendance,
		effects:    effects,
		journal:    journal,
		opts:       opts,
		prints:     newPrintTracker(),
		now:        time.Now,
	}
}

// Init loads the session snapshot. A failure is not fatal: scans fall back
// to network lookups until a later Refresh succeeds.
func (s *CheckinService) Init(ctx context.Context) error {
	snap, err := s.cache.Load(ctx)
	if err != nil {
		log.Printf("⚠️ %v (se usará la búsqueda en red)", err)
		return err
	}
	s.counters.seed(snap.Attendees)
	return nil
}

// Refresh drops the snapshot and loads a new one, e.g. after a quick
// registration at the desk.
func (s *CheckinService) Refresh(ctx context.Context) error {
	s.cache.Invalidate()
	return s.Init(ctx)
}

// Scan runs one raw scanner text through the normalizer, the gate and the
// cache, falling back to the backend on a miss. A scan dropped by the gate
// returns a cooling-down session and no error.
func (s *CheckinService) Scan(ctx context.Context, raw, room string) (*entities.ScanSession, error) {
	normalized := qrcode.Normalize(raw)
	if normalized == "" {
		return nil, domain.ErrEmptyCode
	}
	session := &entities.ScanSession{
		ID:             uuid.NewString(),
		RawCode:        raw,
		NormalizedCode: normalized,
		Room:           room,
		Status:         domain.SessionIdle,
		StartedAt:      s.now(),
	}
	if !s.gate.Admit(normalized) {
		session.Status = domain.SessionCoolingDown
		return session, nil
	}
	session.Status = domain.SessionLookingUp

	if resolved, ok := s.cache.Lookup(raw); ok {
		session.Source = domain.SourceCache
		s.resolved(session, resolved)
		s.gate.Release(s.opts.SettleDelay)
		return session, nil
	}

	resolved, err := s.registry.FindByQRCode(ctx, normalized)
	s.gate.Release(0)
	if err != nil {
		session.Status = domain.SessionError
		if errors.Is(err, domain.ErrAttendeeNotFound) {
			return session, fmt.Errorf("lookup %q: %w", normalized, err)
		}
		log.Printf("❌ Búsqueda en red fallida (qr=%q): %v", normalized, err)
		return session, fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}

	_, known := s.cache.Get(resolved.ID)
	s.cache.Remember(*resolved)
	if !known {
		s.counters.added(resolved.IsConfirmed())
	}
	session.Source = domain.SourceNetwork
	s.resolved(session, resolved)
	return session, nil
}

func (s *CheckinService) resolved(session *entities.ScanSession, r *entities.ResolvedAttendee) {
	session.Attendee = r
	session.Status = domain.SessionResolved
	if session.Room != "" {
		in := r.InRoom(session.Room)
		session.InRoom = &in
	}
}

// Confirm marks the attendee present on the backend, then locally, then
// launches print, photo and notification without waiting for them. Only
// the backend confirmation can fail the call.
func (s *CheckinService) Confirm(ctx context.Context, attendeeID int64, scanCode string) (*entities.ConfirmationResult, error) {
	if attendeeID <= 0 {
		return nil, domain.ErrInvalidAttendeeID
	}
	attendee, ok := s.cache.Get(attendeeID)
	if !ok {
		return nil, fmt.Errorf("confirm %d: %w", attendeeID, domain.ErrAttendeeNotFound)
	}

	confirmationID := uuid.NewString()
	err := s.attendance.ConfirmAttendance(ctx, entities.Confirmation{
		AttendeeID: attendeeID,
		QRCode:     scanCode,
		VerifiedBy: s.opts.VerifiedBy,
	})
	if err != nil {
		log.Printf("❌ Confirmación rechazada (registro=%d): %v", attendeeID, err)
		s.record(ctx, entities.JournalEntry{
			ConfirmationID: confirmationID,
			AttendeeID:     attendeeID,
			AttendeeName:   attendee.Name,
			QRCode:         scanCode,
			Kind:           domain.JournalConfirmation,
			Outcome:        domain.OutcomeFailed,
			Detail:         err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", domain.ErrConfirmationFailed, err)
	}

	now := s.now()
	mark := func(a *entities.Attendee) {
		a.AttendanceConfirmed = true
		a.Status = domain.AttendanceConfirmed
		a.AttendedAt = now.In(tz.Lima).Format("2006-01-02 15:04:05")
	}
	before, after, ok := s.cache.Update(attendeeID, mark)
	if !ok {
		// Snapshot reloaded without this record in between; keep going
		// with the copy taken above.
		before = attendee.Clone()
		after = attendee
		mark(&after)
	}
	recounted := !before.IsConfirmed()
	if recounted {
		s.counters.confirm()
	}

	log.Printf("✅ Asistencia confirmada: %s (registro=%d)", after.Name, attendeeID)
	s.record(ctx, entities.JournalEntry{
		ConfirmationID: confirmationID,
		AttendeeID:     attendeeID,
		AttendeeName:   after.Name,
		QRCode:         scanCode,
		Kind:           domain.JournalConfirmation,
		Outcome:        domain.OutcomeOK,
	})

	s.launchSideEffects(context.WithoutCancel(ctx), confirmationID, after, scanCode)

	return &entities.ConfirmationResult{
		ID:          confirmationID,
		AttendeeID:  attendeeID,
		Status:      domain.AttendanceConfirmed,
		ConfirmedAt: now,
		Attendee:    after,
		Recounted:   recounted,
	}, nil
}

// launchSideEffects starts the print branch and the photo->notification
// branch. Neither is awaited by Confirm.
func (s *CheckinService) launchSideEffects(ctx context.Context, confirmationID string, a entities.Attendee, scanCode string) {
	s.inflight.Add(2)
	go func() {
		defer s.inflight.Done()
		s.isolate("impresión", func() {
			_, _ = s.printLabel(ctx, confirmationID, a, scanCode)
		})
	}()
	go func() {
		defer s.inflight.Done()
		var photoURL string
		s.isolate("foto", func() {
			photoURL = s.capturePhoto(ctx, confirmationID, a)
		})
		s.isolate("notificación", func() {
			s.notify(ctx, confirmationID, a, photoURL)
		})
	}()
}

// isolate keeps a panicking device client from taking the process down.
func (s *CheckinService) isolate(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Tarea secundaria %s interrumpida: %v", name, r)
		}
	}()
	fn()
}

func (s *CheckinService) printLabel(ctx context.Context, confirmationID string, a entities.Attendee, scanCode string) (entities.PrintStatus, error) {
	if s.effects.Printer == nil {
		return s.prints.get(a.ID), nil
	}
	s.prints.set(a.ID, domain.PrintPrinting, nil)

	callCtx, cancel := context.WithTimeout(ctx, s.opts.SideEffectTimeout)
	defer cancel()
	err := s.effects.Printer.PrintLabel(callCtx, entities.LabelJob{
		AttendeeID: a.ID,
		Name:       a.Name,
		Company:    a.Company,
		Role:       a.Role,
		Phone:      a.Phone,
		QRText:     scanCode,
		Mode:       s.opts.PrintMode,
	})
	entry := entities.JournalEntry{
		ConfirmationID: confirmationID,
		AttendeeID:     a.ID,
		AttendeeName:   a.Name,
		QRCode:         scanCode,
		Kind:           domain.JournalPrint,
		Outcome:        domain.OutcomeOK,
	}
	if err != nil {
		log.Printf("⚠️ Impresión térmica fallida (registro=%d): %v", a.ID, err)
		entry.Outcome, entry.Detail = domain.OutcomeFailed, err.Error()
		s.record(ctx, entry)
		return s.prints.set(a.ID, domain.PrintError, err), fmt.Errorf("%w: print: %w", domain.ErrSideEffectFailed, err)
	}
	s.record(ctx, entry)
	return s.prints.set(a.ID, domain.PrintPrinted, nil), nil
}

// capturePhoto returns the photo URL, or "" when the capture failed or
// produced nothing.
func (s *CheckinService) capturePhoto(ctx context.Context, confirmationID string, a entities.Attendee) string {
	if s.effects.Camera == nil {
		return ""
	}
	callCtx, cancel := context.WithTimeout(ctx, s.opts.SideEffectTimeout)
	defer cancel()

	url, err := s.effects.Camera.CapturePhoto(callCtx, a.ID, a.Name)
	entry := entities.JournalEntry{
		ConfirmationID: confirmationID,
		AttendeeID:     a.ID,
		AttendeeName:   a.Name,
		Kind:           domain.JournalPhoto,
		Outcome:        domain.OutcomeOK,
		Detail:         url,
	}
	switch {
	case err != nil:
		log.Printf("⚠️ Captura de foto fallida (registro=%d): %v", a.ID, err)
		entry.Outcome, entry.Detail = domain.OutcomeFailed, err.Error()
		url = ""
	case url == "":
		log.Printf("⚠️ Captura sin foto (registro=%d)", a.ID)
		entry.Detail = "sin foto"
	}
	s.record(ctx, entry)
	return url
}

func (s *CheckinService) notify(ctx context.Context, confirmationID string, a entities.Attendee, photoURL string) {
	if s.effects.Notifier == nil {
		return
	}
	callCtx, cancel := context.WithTimeout(ctx, s.opts.SideEffectTimeout)
	defer cancel()

	err := s.effects.Notifier.Notify(callCtx, BuildNotification(a, s.now(), photoURL))
	entry := entities.JournalEntry{
		ConfirmationID: confirmationID,
		AttendeeID:     a.ID,
		AttendeeName:   a.Name,
		Kind:           domain.JournalNotification,
		Outcome:        domain.OutcomeOK,
	}
	if err != nil {
		log.Printf("⚠️ Notificación WhatsApp fallida (registro=%d): %v", a.ID, err)
		entry.Outcome, entry.Detail = domain.OutcomeFailed, err.Error()
	}
	s.record(ctx, entry)
}

// BuildNotification assembles the WhatsApp payload. Text fields are
// stripped of diacritics; the photo is attached only when one was captured.
func BuildNotification(a entities.Attendee, at time.Time, photoURL string) entities.Notification {
	return entities.Notification{
		Name:      textclean.Clean(a.Name),
		Company:   textclean.Clean(a.Company),
		Role:      textclean.Clean(a.Role),
		Timestamp: textclean.Clean(tz.Stamp(at)),
		Phone:     textclean.Clean(a.Phone),
		PhotoURL:  photoURL,
	}
}

// Reprint sends the label again and waits for the printer's answer.
func (s *CheckinService) Reprint(ctx context.Context, attendeeID int64, scanCode string) (*entities.PrintStatus, error) {
	if attendeeID <= 0 {
		return nil, domain.ErrInvalidAttendeeID
	}
	a, ok := s.cache.Get(attendeeID)
	if !ok {
		return nil, fmt.Errorf("reprint %d: %w", attendeeID, domain.ErrAttendeeNotFound)
	}
	if scanCode == "" {
		scanCode = a.QRText
		if scanCode == "" {
			scanCode = a.QRCode
		}
	}
	status, err := s.printLabel(ctx, "", a, scanCode)
	return &status, err
}

func (s *CheckinService) PrintStatus(attendeeID int64) entities.PrintStatus {
	return s.prints.get(attendeeID)
}

func (s *CheckinService) ResetGate() {
	s.gate.Reset()
}

func (s *CheckinService) Stats() entities.SessionStats {
	total, confirmed, pending := s.counters.read()
	return entities.SessionStats{
		Total:     total,
		Confirmed: confirmed,
		Pending:   pending,
		Events:    len(s.cache.Snapshot().Events),
		Loaded:    s.cache.Loaded(),
	}
}

// Wait blocks until every launched side effect and journal write has
// settled.
func (s *CheckinService) Wait() {
	s.inflight.Wait()
}

// Close stops the gate timers and waits for pending side effects.
func (s *CheckinService) Close() {
	s.gate.Stop()
	s.Wait()
}

// record hands entry to the journal on a tracked goroutine, detached from
// ctx's cancellation and bounded by the side-effect timeout. Journal sinks
// never delay the caller.
func (s *CheckinService) record(ctx context.Context, entry entities.JournalEntry) {
	if s.journal == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.isolate("bitácora", func() {
			callCtx, cancel := context.WithTimeout(ctx, s.opts.SideEffectTimeout)
			defer cancel()
			if err := s.journal.Record(callCtx, entry); err != nil {
				log.Printf("⚠️ Bitácora no disponible (%s/%s): %v", entry.Kind, entry.Outcome, err)
			}
		})
	}()
}
