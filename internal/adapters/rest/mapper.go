package rest

import "expocheckin/internal/domain/entities"

func attendeeToResponse(a entities.Attendee) attendeeResponse {
	events := a.SelectedEvents
	if events == nil {
		events = []int64{}
	}
	return attendeeResponse{
		ID:                          a.ID,
		Nombres:                     a.Name,
		Correo:                      a.Email,
		Empresa:                     a.Company,
		Cargo:                       a.Role,
		Numero:                      a.Phone,
		QRText:                      a.QRText,
		QRCode:                      a.QRCode,
		AsistenciaGeneralConfirmada: a.AttendanceConfirmed,
		EstadoAsistencia:            a.Status,
		EventosSeleccionados:        events,
		FechaRegistro:               a.RegisteredAt,
		FechaAsistenciaGeneral:      a.AttendedAt,
	}
}

func eventToResponse(e entities.Event) eventResponse {
	return eventResponse{
		ID:               e.ID,
		TituloCharla:     e.Title,
		Sala:             e.Room,
		Hora:             e.Time,
		Fecha:            e.Date,
		Expositor:        e.Speaker,
		Pais:             e.Country,
		Disponible:       e.Available,
		SlotsDisponibles: e.SlotsAvailable,
		SlotsOcupados:    e.SlotsTaken,
	}
}

func sessionToResponse(s *entities.ScanSession) sessionResponse {
	out := sessionResponse{
		ID:        s.ID,
		RawCode:   s.RawCode,
		QRCode:    s.NormalizedCode,
		Status:    s.Status,
		Source:    s.Source,
		Sala:      s.Room,
		EnSala:    s.InRoom,
		StartedAt: s.StartedAt,
	}
	if s.Attendee != nil {
		u := attendeeToResponse(s.Attendee.Attendee)
		out.Usuario = &u
		out.Eventos = make([]eventResponse, len(s.Attendee.Events))
		for i, e := range s.Attendee.Events {
			out.Eventos[i] = eventToResponse(e)
		}
		out.TotalEventos = s.Attendee.TotalEvents
	}
	return out
}

func printStatusToResponse(p entities.PrintStatus) printStatusResponse {
	out := printStatusResponse{RegistroID: p.AttendeeID, Status: p.Status, Error: p.Error}
	if !p.UpdatedAt.IsZero() {
		at := p.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}

func statsToResponse(s entities.SessionStats) statsResponse {
	return statsResponse{
		Total:     s.Total,
		Confirmed: s.Confirmed,
		Pending:   s.Pending,
		Events:    s.Events,
		Loaded:    s.Loaded,
	}
}

func journalToResponse(e entities.JournalEntry) journalResponse {
	return journalResponse{
		ID:             e.ID,
		ConfirmationID: e.ConfirmationID,
		RegistroID:     e.AttendeeID,
		Nombres:        e.AttendeeName,
		QRCode:         e.QRCode,
		Kind:           e.Kind,
		Outcome:        e.Outcome,
		Detail:         e.Detail,
		CreatedAt:      e.CreatedAt,
	}
}
