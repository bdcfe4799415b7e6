package domain

// AttendanceStatus values stored in estado_asistencia.
const (
	AttendancePending   = "pendiente"
	AttendanceConfirmed = "confirmada"
	AttendancePresent   = "presente"
	AttendanceAbsent    = "ausente"
)

// Scan session statuses, as exposed to the UI.
const (
	SessionIdle        = "idle"
	SessionCoolingDown = "cooling-down"
	SessionLookingUp   = "looking-up"
	SessionResolved    = "resolved"
	SessionConfirming  = "confirming"
	SessionConfirmed   = "confirmed"
	SessionError       = "error"
)

// Where a scan was resolved from.
const (
	SourceCache   = "cache"
	SourceNetwork = "network"
)

// Print status shown next to the reprint button.
const (
	PrintIdle     = "idle"
	PrintPrinting = "printing"
	PrintPrinted  = "printed"
	PrintError    = "error"
)

// Journal entry kinds and outcomes.
const (
	JournalConfirmation = "confirmation"
	JournalPrint        = "print"
	JournalPhoto        = "photo"
	JournalNotification = "notification"

	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)
