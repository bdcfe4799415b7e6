package rest

import "time"

// Response bodies keep the backend's field names so the check-in UI reads
// the same shapes from both.

type scanRequest struct {
	Code string `json:"code"`
	Sala string `json:"sala"`
}

type attendeeRequest struct {
	RegistroID int64  `json:"registro_id"`
	QRCode     string `json:"qr_code"`
}

type eventResponse struct {
	ID               int64  `json:"id"`
	TituloCharla     string `json:"titulo_charla"`
	Sala             string `json:"sala"`
	Hora             string `json:"hora"`
	Fecha            string `json:"fecha"`
	Expositor        string `json:"expositor"`
	Pais             string `json:"pais"`
	Disponible       bool   `json:"disponible"`
	SlotsDisponibles int    `json:"slots_disponibles"`
	SlotsOcupados    int    `json:"slots_ocupados"`
}

type attendeeResponse struct {
	ID                          int64   `json:"id"`
	Nombres                     string  `json:"nombres"`
	Correo                      string  `json:"correo"`
	Empresa                     string  `json:"empresa"`
	Cargo                       string  `json:"cargo"`
	Numero                      string  `json:"numero"`
	QRText                      string  `json:"qr_text"`
	QRCode                      string  `json:"qr_code"`
	AsistenciaGeneralConfirmada bool    `json:"asistencia_general_confirmada"`
	EstadoAsistencia            string  `json:"estado_asistencia"`
	EventosSeleccionados        []int64 `json:"eventos_seleccionados"`
	FechaRegistro               string  `json:"fecha_registro,omitempty"`
	FechaAsistenciaGeneral      string  `json:"fecha_asistencia_general,omitempty"`
}

type sessionResponse struct {
	ID           string            `json:"id"`
	RawCode      string            `json:"raw_code"`
	QRCode       string            `json:"qr_code"`
	Status       string            `json:"status"`
	Source       string            `json:"source,omitempty"`
	Sala         string            `json:"sala,omitempty"`
	EnSala       *bool             `json:"en_sala,omitempty"`
	Usuario      *attendeeResponse `json:"usuario,omitempty"`
	Eventos      []eventResponse   `json:"eventos,omitempty"`
	TotalEventos int               `json:"total_eventos"`
	StartedAt    time.Time         `json:"started_at"`
	Message      string            `json:"message,omitempty"`
}

type confirmResponse struct {
	Success        bool             `json:"success"`
	ConfirmationID string           `json:"confirmation_id"`
	RegistroID     int64            `json:"registro_id"`
	Estado         string           `json:"estado_asistencia"`
	ConfirmadoEn   time.Time        `json:"confirmado_en"`
	Usuario        attendeeResponse `json:"usuario"`
	Message        string           `json:"message"`
}

type printStatusResponse struct {
	RegistroID int64      `json:"registro_id"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type statsResponse struct {
	Total     int  `json:"total"`
	Confirmed int  `json:"confirmed"`
	Pending   int  `json:"pending"`
	Events    int  `json:"events"`
	Loaded    bool `json:"loaded"`
}

type journalResponse struct {
	ID             int64     `json:"id"`
	ConfirmationID string    `json:"confirmation_id,omitempty"`
	RegistroID     int64     `json:"registro_id"`
	Nombres        string    `json:"nombres"`
	QRCode         string    `json:"qr_code"`
	Kind           string    `json:"kind"`
	Outcome        string    `json:"outcome"`
	Detail         string    `json:"detail,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}
