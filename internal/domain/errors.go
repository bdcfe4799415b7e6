package domain

import "errors"

// Domain errors.
var (
	ErrEmptyCode          = errors.New("código QR vacío")
	ErrAttendeeNotFound   = errors.New("asistente no encontrado")
	ErrInvalidAttendeeID  = errors.New("identificador de asistente inválido")
	ErrCacheLoadFailed    = errors.New("no se pudo cargar la caché de registros")
	ErrLookupFailed       = errors.New("no se pudo buscar el asistente")
	ErrConfirmationFailed = errors.New("no se pudo confirmar la asistencia")
	ErrSideEffectFailed   = errors.New("falló una tarea secundaria")
	ErrJournalDisabled    = errors.New("bitácora no configurada")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrEmptyCode, "empty_code"},
	{ErrAttendeeNotFound, "attendee_not_found"},
	{ErrInvalidAttendeeID, "invalid_attendee_id"},
	{ErrConfirmationFailed, "confirmation_failed"},
	{ErrLookupFailed, "lookup_failed"},
	{ErrCacheLoadFailed, "cache_load_failed"},
	{ErrSideEffectFailed, "side_effect_failed"},
	{ErrJournalDisabled, "journal_disabled"},
}

// Code returns the stable code of the first domain error wrapped by err,
// or "" when err carries none. Order matters: a not-found answer wrapped in
// a lookup failure reports attendee_not_found.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
