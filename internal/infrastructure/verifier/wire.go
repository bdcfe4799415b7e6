package verifier

import (
	"bytes"
	"encoding/json"
	"log"
	"strconv"
	"strings"
)

// Wire shapes of the /verificar backend.

type registroDTO struct {
	ID                          int64      `json:"id"`
	Nombres                     string     `json:"nombres"`
	Correo                      string     `json:"correo"`
	Empresa                     string     `json:"empresa"`
	Cargo                       string     `json:"cargo"`
	Numero                      flexString `json:"numero"`
	QRText                      string     `json:"qr_text"`
	QRCode                      string     `json:"qr_code"`
	AsistenciaGeneralConfirmada flexBool   `json:"asistencia_general_confirmada"`
	EstadoAsistencia            string     `json:"estado_asistencia"`
	EventosSeleccionados        eventIDs   `json:"eventos_seleccionados"`
	FechaRegistro               string     `json:"fecha_registro"`
	FechaAsistenciaGeneral      string     `json:"fecha_asistencia_general"`
}

type eventoDTO struct {
	ID               int64    `json:"id"`
	TituloCharla     string   `json:"titulo_charla"`
	Sala             string   `json:"sala"`
	Hora             string   `json:"hora"`
	Fecha            string   `json:"fecha"`
	Expositor        string   `json:"expositor"`
	Pais             string   `json:"pais"`
	Disponible       flexBool `json:"disponible"`
	SlotsDisponibles int      `json:"slots_disponibles"`
	SlotsOcupados    int      `json:"slots_ocupados"`
}

type registrosResponse struct {
	Success   bool          `json:"success"`
	Total     int           `json:"total"`
	Registros []registroDTO `json:"registros"`
	Error     string        `json:"error"`
}

type eventosResponse struct {
	Success bool        `json:"success"`
	Total   int         `json:"total"`
	Eventos []eventoDTO `json:"eventos"`
	Error   string      `json:"error"`
}

type buscarRequest struct {
	QRCode string `json:"qr_code"`
}

type buscarResponse struct {
	Usuario *registroDTO `json:"usuario"`
	Eventos []eventoDTO  `json:"eventos"`
}

type confirmarRequest struct {
	RegistroID    int64  `json:"registro_id"`
	QRCode        string `json:"qr_code"`
	VerificadoPor string `json:"verificado_por"`
}

// ackResponse is the generic {success, message|error} answer. Success is a
// pointer because some endpoints omit it on 2xx.
type ackResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type usuarioDatos struct {
	RegistroID int64  `json:"registro_id"`
	Nombres    string `json:"nombres"`
	Empresa    string `json:"empresa"`
	Cargo      string `json:"cargo"`
	Numero     string `json:"numero"`
}

type imprimirRequest struct {
	UsuarioDatos usuarioDatos `json:"usuario_datos"`
	QRText       string       `json:"qr_text"`
	Mode         string       `json:"mode"`
}

type fotoRequest struct {
	RegistroID int64  `json:"registro_id"`
	Nombres    string `json:"nombres"`
}

type fotoResponse struct {
	Success  bool   `json:"success"`
	PhotoURL string `json:"photo_url"`
	Error    string `json:"error"`
}

type whatsappRequest struct {
	Nombre    string `json:"nombre"`
	Empresa   string `json:"empresa"`
	Cargo     string `json:"cargo"`
	FechaHora string `json:"fecha_hora"`
	Numero    string `json:"numero"`
	Photo     string `json:"photo,omitempty"`
}

// eventIDs accepts the serialized list forms the backend has used:
// a JSON array of numbers or numeric strings, a string holding such an
// array, a comma separated string, or null. Unparsable entries are dropped
// so one malformed record never fails a whole listing.
type eventIDs []int64

func (e *eventIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			log.Printf("⚠️ eventos_seleccionados ignorado: %v", err)
			*e = nil
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "null" {
			*e = nil
			return nil
		}
		if strings.HasPrefix(s, "[") {
			return e.UnmarshalJSON([]byte(s))
		}
		e.fromStrings(strings.Split(s, ","))
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("⚠️ eventos_seleccionados ignorado (%s): %v", data, err)
		*e = nil
		return nil
	}
	parts := make([]string, 0, len(raw))
	for _, r := range raw {
		parts = append(parts, strings.Trim(string(r), `"`))
	}
	e.fromStrings(parts)
	return nil
}

func (e *eventIDs) fromStrings(parts []string) {
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "null" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Printf("⚠️ eventos_seleccionados: id inválido %q ignorado", p)
			continue
		}
		ids = append(ids, id)
	}
	*e = ids
}

// flexBool accepts true/false, 0/1 and their string forms. Anything else
// reads as false.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		log.Printf("⚠️ valor booleano inválido %q, se asume false", s)
		*b = false
	}
	return nil
}

// flexString accepts strings and bare numbers (phone numbers stored as
// integers).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}
