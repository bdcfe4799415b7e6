package rest

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"expocheckin/internal/domain"
)

const (
	codeInvalidRequest = "invalid_request"
	codeGeneric        = "generic"
)

var statusByCode = map[string]int{
	"empty_code":          http.StatusBadRequest,
	"invalid_attendee_id": http.StatusBadRequest,
	codeInvalidRequest:    http.StatusBadRequest,
	"attendee_not_found":  http.StatusNotFound,
	"lookup_failed":       http.StatusBadGateway,
	"confirmation_failed": http.StatusBadGateway,
	"cache_load_failed":   http.StatusBadGateway,
	"side_effect_failed":  http.StatusBadGateway,
	"journal_disabled":    http.StatusServiceUnavailable,
}

var errInvalidRequest = errors.New("solicitud inválida")

// writeError renders err as {success:false, code, error} with the banner
// text for the caller's locale.
func (h *Handler) writeError(c *gin.Context, err error) {
	code := domain.Code(err)
	if errors.Is(err, errInvalidRequest) {
		code = codeInvalidRequest
	}
	status, known := statusByCode[code]
	if !known {
		code, status = codeGeneric, http.StatusInternalServerError
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, errorResponse{
		Success: false,
		Code:    code,
		Error:   h.tr.T(locale(c), "error."+code, nil),
	})
}

func locale(c *gin.Context) string {
	return c.GetHeader("Accept-Language")
}
