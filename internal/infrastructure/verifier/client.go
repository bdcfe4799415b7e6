// Package verifier is the REST client of the registration backend's
// /verificar endpoints.
package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
	"expocheckin/internal/ports/output"
)

var (
	_ output.RegistryRepository   = (*Client)(nil)
	_ output.AttendanceRepository = (*Client)(nil)
	_ output.LabelPrinter         = (*Client)(nil)
	_ output.PhotoCapturer        = (*Client)(nil)
	_ output.Notifier             = (*Client)(nil)
)

const (
	pathAllAttendees = "/verificar/obtener-todos-registros"
	pathAllEvents    = "/verificar/obtener-todos-eventos"
	pathFindUser     = "/verificar/buscar-usuario"
	pathConfirm      = "/verificar/confirmar-asistencia"
	pathPrint        = "/verificar/imprimir-termica"
	pathPhoto        = "/verificar/capturar-foto-sync"
	pathWhatsApp     = "/verificar/whatsapp-proxy"

	maxErrorBody = 512
)

// StatusError is returned for non-2xx answers.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for baseURL (e.g. "https://api.example/api").
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchAttendees(ctx context.Context) ([]entities.Attendee, error) {
	var resp registrosResponse
	if err := c.do(ctx, http.MethodGet, pathAllAttendees, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch attendees: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("fetch attendees: %s", failureMessage(resp.Error))
	}
	out := make([]entities.Attendee, len(resp.Registros))
	for i := range resp.Registros {
		out[i] = attendeeToDomain(resp.Registros[i])
	}
	return out, nil
}

func (c *Client) FetchEvents(ctx context.Context) ([]entities.Event, error) {
	var resp eventosResponse
	if err := c.do(ctx, http.MethodGet, pathAllEvents, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("fetch events: %s", failureMessage(resp.Error))
	}
	return eventsToDomain(resp.Eventos), nil
}

func (c *Client) FindByQRCode(ctx context.Context, code string) (*entities.ResolvedAttendee, error) {
	var resp buscarResponse
	err := c.do(ctx, http.MethodPost, pathFindUser, buscarRequest{QRCode: code}, &resp)
	var se *StatusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return nil, domain.ErrAttendeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find by qr code: %w", err)
	}
	if resp.Usuario == nil {
		return nil, domain.ErrAttendeeNotFound
	}
	events := eventsToDomain(resp.Eventos)
	return &entities.ResolvedAttendee{
		Attendee:    attendeeToDomain(*resp.Usuario),
		Events:      events,
		TotalEvents: len(events),
	}, nil
}

func (c *Client) ConfirmAttendance(ctx context.Context, conf entities.Confirmation) error {
	var resp ackResponse
	err := c.do(ctx, http.MethodPost, pathConfirm, confirmarRequest{
		RegistroID:    conf.AttendeeID,
		QRCode:        conf.QRCode,
		VerificadoPor: conf.VerifiedBy,
	}, &resp)
	if err != nil {
		return fmt.Errorf("confirm attendance: %w", err)
	}
	if resp.Success != nil && !*resp.Success {
		return fmt.Errorf("confirm attendance: %s", failureMessage(resp.Error, resp.Message))
	}
	return nil
}

func (c *Client) PrintLabel(ctx context.Context, job entities.LabelJob) error {
	var resp ackResponse
	err := c.do(ctx, http.MethodPost, pathPrint, imprimirRequest{
		UsuarioDatos: usuarioDatos{
			RegistroID: job.AttendeeID,
			Nombres:    job.Name,
			Empresa:    job.Company,
			Cargo:      job.Role,
			Numero:     job.Phone,
		},
		QRText: job.QRText,
		Mode:   job.Mode,
	}, &resp)
	if err != nil {
		return fmt.Errorf("print label: %w", err)
	}
	if resp.Success != nil && !*resp.Success {
		return fmt.Errorf("print label: %s", failureMessage(resp.Error, resp.Message))
	}
	return nil
}

func (c *Client) CapturePhoto(ctx context.Context, attendeeID int64, name string) (string, error) {
	var resp fotoResponse
	if err := c.do(ctx, http.MethodPost, pathPhoto, fotoRequest{RegistroID: attendeeID, Nombres: name}, &resp); err != nil {
		return "", fmt.Errorf("capture photo: %w", err)
	}
	if !resp.Success {
		return "", fmt.Errorf("capture photo: %s", failureMessage(resp.Error))
	}
	return resp.PhotoURL, nil
}

func (c *Client) Notify(ctx context.Context, n entities.Notification) error {
	err := c.do(ctx, http.MethodPost, pathWhatsApp, whatsappRequest{
		Nombre:    n.Name,
		Empresa:   n.Company,
		Cargo:     n.Role,
		FechaHora: n.Timestamp,
		Numero:    n.Phone,
		Photo:     n.PhotoURL,
	}, nil)
	if err != nil {
		return fmt.Errorf("whatsapp notify: %w", err)
	}
	return nil
}

// do sends body as JSON and decodes a 2xx answer into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func failureMessage(candidates ...string) string {
	for _, m := range candidates {
		if m = strings.TrimSpace(m); m != "" {
			return m
		}
	}
	return "respuesta sin éxito"
}
