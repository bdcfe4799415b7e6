package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"expocheckin/internal/domain"
	"expocheckin/internal/ports/input"
	"expocheckin/internal/ports/output"
)

// Handler serves the check-in UI. journal may be nil when no journal
// database is configured.
type Handler struct {
	uc      input.CheckinUseCase
	journal output.JournalReader
	tr      output.Translator
}

func NewHandler(uc input.CheckinUseCase, journal output.JournalReader, tr output.Translator) *Handler {
	return &Handler{uc: uc, journal: journal, tr: tr}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Scan handles POST /api/checkin/scan.
func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}
	session, err := h.uc.Scan(c.Request.Context(), req.Code, req.Sala)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := sessionToResponse(session)
	if session.Status == domain.SessionCoolingDown {
		resp.Message = h.tr.T(locale(c), "scan.cooling_down", nil)
		c.JSON(http.StatusAccepted, resp)
		return
	}
	data := map[string]any{"Name": session.Attendee.Name, "Room": session.Room}
	switch {
	case session.InRoom == nil:
		resp.Message = h.tr.T(locale(c), "scan.resolved", data)
	case *session.InRoom:
		resp.Message = h.tr.T(locale(c), "scan.in_room", data)
	default:
		resp.Message = h.tr.T(locale(c), "scan.not_in_room", data)
	}
	c.JSON(http.StatusOK, resp)
}

// Confirm handles POST /api/checkin/confirm.
func (h *Handler) Confirm(c *gin.Context) {
	var req attendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}
	res, err := h.uc.Confirm(c.Request.Context(), req.RegistroID, req.QRCode)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmResponse{
		Success:        true,
		ConfirmationID: res.ID,
		RegistroID:     res.AttendeeID,
		Estado:         res.Status,
		ConfirmadoEn:   res.ConfirmedAt,
		Usuario:        attendeeToResponse(res.Attendee),
		Message:        h.tr.T(locale(c), "confirm.done", map[string]any{"Name": res.Attendee.Name}),
	})
}

// Reprint handles POST /api/checkin/reprint and waits for the printer.
func (h *Handler) Reprint(c *gin.Context) {
	var req attendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}
	status, err := h.uc.Reprint(c.Request.Context(), req.RegistroID, req.QRCode)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, printStatusToResponse(*status))
}

// PrintStatus handles GET /api/checkin/print-status/:id.
func (h *Handler) PrintStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(c, domain.ErrInvalidAttendeeID)
		return
	}
	c.JSON(http.StatusOK, printStatusToResponse(h.uc.PrintStatus(id)))
}

// Refresh handles POST /api/checkin/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	if err := h.uc.Refresh(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, statsToResponse(h.uc.Stats()))
}

func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, statsToResponse(h.uc.Stats()))
}

// Reset handles POST /api/checkin/reset.
func (h *Handler) Reset(c *gin.Context) {
	h.uc.ResetGate()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": h.tr.T(locale(c), "reset.done", nil)})
}

// Journal handles GET /api/checkin/journal?limit=N.
func (h *Handler) Journal(c *gin.Context) {
	if h.journal == nil {
		h.writeError(c, domain.ErrJournalDisabled)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]journalResponse, len(entries))
	for i, e := range entries {
		out[i] = journalToResponse(e)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total": len(out), "entries": out})
}
