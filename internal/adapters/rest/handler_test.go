package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
)

type fakeUseCase struct {
	scanSession *entities.ScanSession
	scanErr     error
	confirmErr  error
	reprintErr  error
	refreshErr  error
	resets      int
	lastRoom    string
	lastCode    string
}

func (f *fakeUseCase) Scan(_ context.Context, raw, room string) (*entities.ScanSession, error) {
	f.lastRoom = room
	if strings.TrimSpace(raw) == "" {
		return nil, domain.ErrEmptyCode
	}
	return f.scanSession, f.scanErr
}

func (f *fakeUseCase) Confirm(_ context.Context, id int64, code string) (*entities.ConfirmationResult, error) {
	f.lastCode = code
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &entities.ConfirmationResult{
		ID:          "c-1",
		AttendeeID:  id,
		Status:      domain.AttendanceConfirmed,
		ConfirmedAt: time.Date(2025, 9, 2, 15, 0, 0, 0, time.UTC),
		Attendee:    entities.Attendee{ID: id, Name: "Ana", Status: domain.AttendanceConfirmed, AttendanceConfirmed: true},
	}, nil
}

func (f *fakeUseCase) Reprint(_ context.Context, id int64, _ string) (*entities.PrintStatus, error) {
	if f.reprintErr != nil {
		return &entities.PrintStatus{AttendeeID: id, Status: domain.PrintError}, f.reprintErr
	}
	return &entities.PrintStatus{AttendeeID: id, Status: domain.PrintPrinted, UpdatedAt: time.Now()}, nil
}

func (f *fakeUseCase) PrintStatus(id int64) entities.PrintStatus {
	return entities.PrintStatus{AttendeeID: id, Status: domain.PrintIdle}
}

func (f *fakeUseCase) Refresh(context.Context) error { return f.refreshErr }
func (f *fakeUseCase) ResetGate()                    { f.resets++ }
func (f *fakeUseCase) Stats() entities.SessionStats {
	return entities.SessionStats{Total: 3, Confirmed: 1, Pending: 2, Events: 5, Loaded: true}
}

type fakeJournal struct{ entries []entities.JournalEntry }

func (f *fakeJournal) Recent(_ context.Context, limit int) ([]entities.JournalEntry, error) {
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

// keyTranslator echoes keys so assertions do not depend on message text.
type keyTranslator struct{}

func (keyTranslator) T(locale, key string, data map[string]any) string {
	if name, ok := data["Name"]; ok {
		return fmt.Sprintf("%s:%s:%v", locale, key, name)
	}
	return locale + ":" + key
}

func newTestRouter(uc *fakeUseCase, j *fakeJournal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(uc, nil, keyTranslator{})
	if j != nil {
		h = NewHandler(uc, j, keyTranslator{})
	}
	return NewRouter(h, []string{"*"})
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w, out
}

func resolvedSession(inRoom *bool) *entities.ScanSession {
	return &entities.ScanSession{
		ID:             "s-1",
		RawCode:        "A]1",
		NormalizedCode: "A|1",
		Status:         domain.SessionResolved,
		Source:         domain.SourceCache,
		Room:           "Sala 1",
		InRoom:         inRoom,
		Attendee: &entities.ResolvedAttendee{
			Attendee:    entities.Attendee{ID: 1, Name: "Ana", SelectedEvents: []int64{10}},
			Events:      []entities.Event{{ID: 10, Room: "Sala 1"}},
			TotalEvents: 1,
		},
	}
}

func TestScanResolved(t *testing.T) {
	in := true
	uc := &fakeUseCase{scanSession: resolvedSession(&in)}
	w, body := do(t, newTestRouter(uc, nil), http.MethodPost, "/api/checkin/scan", `{"code":"A]1","sala":"Sala 1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%v", w.Code, body)
	}
	if uc.lastRoom != "Sala 1" || body["en_sala"] != true || body["qr_code"] != "A|1" || body["total_eventos"] != float64(1) {
		t.Fatalf("body = %v", body)
	}
	if body["message"] != "en:scan.in_room:Ana" {
		t.Fatalf("message = %v", body["message"])
	}
	usuario := body["usuario"].(map[string]any)
	if usuario["nombres"] != "Ana" {
		t.Fatalf("usuario = %v", usuario)
	}
}

func TestScanCoolingDown(t *testing.T) {
	uc := &fakeUseCase{scanSession: &entities.ScanSession{ID: "s-2", Status: domain.SessionCoolingDown}}
	w, body := do(t, newTestRouter(uc, nil), http.MethodPost, "/api/checkin/scan", `{"code":"A|1"}`)
	if w.Code != http.StatusAccepted || body["status"] != "cooling-down" || body["usuario"] != nil {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}
}

func TestScanErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{"empty", `{"code":"   "}`, nil, http.StatusBadRequest, "empty_code"},
		{"malformed", `{"code":`, nil, http.StatusBadRequest, "invalid_request"},
		{"not found", `{"code":"Z"}`, fmt.Errorf("lookup %q: %w", "Z", domain.ErrAttendeeNotFound), http.StatusNotFound, "attendee_not_found"},
		{"lookup failed", `{"code":"Z"}`, fmt.Errorf("%w: %w", domain.ErrLookupFailed, context.DeadlineExceeded), http.StatusBadGateway, "lookup_failed"},
		{"unknown", `{"code":"Z"}`, context.Canceled, http.StatusInternalServerError, "generic"},
	}
	for _, c := range cases {
		uc := &fakeUseCase{scanErr: c.err, scanSession: &entities.ScanSession{Status: domain.SessionError}}
		w, body := do(t, newTestRouter(uc, nil), http.MethodPost, "/api/checkin/scan", c.body)
		if w.Code != c.status || body["code"] != c.code || body["success"] != false {
			t.Errorf("%s: status = %d body = %v", c.name, w.Code, body)
		}
		if body["error"] != "en:error."+c.code {
			t.Errorf("%s: error = %v", c.name, body["error"])
		}
	}
}

func TestConfirm(t *testing.T) {
	uc := &fakeUseCase{}
	w, body := do(t, newTestRouter(uc, nil), http.MethodPost, "/api/checkin/confirm", `{"registro_id":7,"qr_code":"A]1"}`)
	if w.Code != http.StatusOK || body["success"] != true || body["registro_id"] != float64(7) {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}
	if uc.lastCode != "A]1" || body["estado_asistencia"] != "confirmada" {
		t.Fatalf("lastCode = %q body = %v", uc.lastCode, body)
	}

	uc.confirmErr = fmt.Errorf("%w: boom", domain.ErrConfirmationFailed)
	w, body = do(t, newTestRouter(uc, nil), http.MethodPost, "/api/checkin/confirm", `{"registro_id":7,"qr_code":"A]1"}`)
	if w.Code != http.StatusBadGateway || body["code"] != "confirmation_failed" {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}
}

func TestReprintAndPrintStatus(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc, nil)
	w, body := do(t, r, http.MethodPost, "/api/checkin/reprint", `{"registro_id":3}`)
	if w.Code != http.StatusOK || body["status"] != "printed" {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}

	uc.reprintErr = fmt.Errorf("%w: print: jammed", domain.ErrSideEffectFailed)
	w, body = do(t, r, http.MethodPost, "/api/checkin/reprint", `{"registro_id":3}`)
	if w.Code != http.StatusBadGateway || body["code"] != "side_effect_failed" {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodGet, "/api/checkin/print-status/3", "")
	if w.Code != http.StatusOK || body["status"] != "idle" || body["registro_id"] != float64(3) {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}
	w, body = do(t, r, http.MethodGet, "/api/checkin/print-status/abc", "")
	if w.Code != http.StatusBadRequest || body["code"] != "invalid_attendee_id" {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}
}

func TestStatsRefreshReset(t *testing.T) {
	uc := &fakeUseCase{}
	r := newTestRouter(uc, nil)

	w, body := do(t, r, http.MethodGet, "/api/checkin/stats", "")
	if w.Code != http.StatusOK || body["total"] != float64(3) || body["pending"] != float64(2) || body["loaded"] != true {
		t.Fatalf("stats = %d %v", w.Code, body)
	}

	w, _ = do(t, r, http.MethodPost, "/api/checkin/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("refresh = %d", w.Code)
	}
	uc.refreshErr = fmt.Errorf("%w: down", domain.ErrCacheLoadFailed)
	w, body = do(t, r, http.MethodPost, "/api/checkin/refresh", "")
	if w.Code != http.StatusBadGateway || body["code"] != "cache_load_failed" {
		t.Fatalf("refresh failure = %d %v", w.Code, body)
	}

	w, _ = do(t, r, http.MethodPost, "/api/checkin/reset", "")
	if w.Code != http.StatusOK || uc.resets != 1 {
		t.Fatalf("reset = %d resets=%d", w.Code, uc.resets)
	}
}

func TestJournal(t *testing.T) {
	w, body := do(t, newTestRouter(&fakeUseCase{}, nil), http.MethodGet, "/api/checkin/journal", "")
	if w.Code != http.StatusServiceUnavailable || body["code"] != "journal_disabled" {
		t.Fatalf("disabled = %d %v", w.Code, body)
	}

	j := &fakeJournal{entries: []entities.JournalEntry{
		{ID: 2, AttendeeID: 1, Kind: domain.JournalPrint, Outcome: domain.OutcomeFailed},
		{ID: 1, AttendeeID: 1, Kind: domain.JournalConfirmation, Outcome: domain.OutcomeOK},
	}}
	w, body = do(t, newTestRouter(&fakeUseCase{}, j), http.MethodGet, "/api/checkin/journal?limit=1", "")
	if w.Code != http.StatusOK || body["total"] != float64(1) {
		t.Fatalf("journal = %d %v", w.Code, body)
	}
	first := body["entries"].([]any)[0].(map[string]any)
	if first["kind"] != "print" || first["outcome"] != "failed" {
		t.Fatalf("entry = %v", first)
	}
}

func TestHealth(t *testing.T) {
	w, body := do(t, newTestRouter(&fakeUseCase{}, nil), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health = %d %v", w.Code, body)
	}
}
