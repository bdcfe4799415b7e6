package verifier

import (
	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
)

func attendeeToDomain(r registroDTO) entities.Attendee {
	status := r.EstadoAsistencia
	if status == "" {
		status = domain.AttendancePending
	}
	return entities.Attendee{
		ID:                  r.ID,
		Name:                r.Nombres,
		Email:               r.Correo,
		Company:             r.Empresa,
		Role:                r.Cargo,
		Phone:               string(r.Numero),
		QRText:              r.QRText,
		QRCode:              r.QRCode,
		AttendanceConfirmed: bool(r.AsistenciaGeneralConfirmada),
		Status:              status,
		SelectedEvents:      []int64(r.EventosSeleccionados),
		RegisteredAt:        r.FechaRegistro,
		AttendedAt:          r.FechaAsistenciaGeneral,
	}
}

func eventToDomain(e eventoDTO) entities.Event {
	return entities.Event{
		ID:             e.ID,
		Title:          e.TituloCharla,
		Room:           e.Sala,
		Time:           e.Hora,
		Date:           e.Fecha,
		Speaker:        e.Expositor,
		Country:        e.Pais,
		Available:      bool(e.Disponible),
		SlotsAvailable: e.SlotsDisponibles,
		SlotsTaken:     e.SlotsOcupados,
	}
}

func eventsToDomain(in []eventoDTO) []entities.Event {
	out := make([]entities.Event, len(in))
	for i := range in {
		out[i] = eventToDomain(in[i])
	}
	return out
}
