// Package scanner turns raw scanner input into scan texts for the check-in
// core.
package scanner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"expocheckin/internal/domain"
	"expocheckin/internal/ports/input"
)

// Source produces raw scan texts until ctx ends or the input is exhausted.
type Source interface {
	Run(ctx context.Context, emit func(raw string)) error
}

var (
	_ Source = (*KeyboardSource)(nil)
	_ Source = (*CameraSource)(nil)
)

// KeyboardSource reads a keyboard-emulating scanner. A carriage return or
// newline ends a code; without one, the buffer is flushed once the input
// has been quiet for the debounce delay.
type KeyboardSource struct {
	r        io.Reader
	debounce time.Duration
}

func NewKeyboardSource(r io.Reader, debounce time.Duration) *KeyboardSource {
	return &KeyboardSource{r: r, debounce: debounce}
}

// Run returns nil at EOF. The reading goroutine stays blocked on the reader
// after ctx ends until the reader itself returns.
func (k *KeyboardSource) Run(ctx context.Context, emit func(raw string)) error {
	runes := make(chan rune)
	readErr := make(chan error, 1)
	go func() {
		br := bufio.NewReader(k.r)
		for {
			r, _, err := br.ReadRune()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case runes <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	var buf strings.Builder
	flush := func() {
		text := buf.String()
		buf.Reset()
		if strings.TrimSpace(text) != "" {
			emit(text)
		}
	}

	timer := time.NewTimer(k.debounce)
	timer.Stop()
	defer timer.Stop()
	var quiet <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			flush()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case <-quiet:
			quiet = nil
			flush()
		case r := <-runes:
			if r == '\r' || r == '\n' {
				timer.Stop()
				quiet = nil
				flush()
				continue
			}
			buf.WriteRune(r)
			timer.Reset(k.debounce)
			quiet = timer.C
		}
	}
}

// CameraSource receives texts from a camera QR decoder. Decoded may be
// called at any rate from any goroutine; it never blocks.
type CameraSource struct {
	texts chan string
}

func NewCameraSource(buffer int) *CameraSource {
	if buffer <= 0 {
		buffer = 8
	}
	return &CameraSource{texts: make(chan string, buffer)}
}

// Decoded hands a decoded text over; it reports false when the text was
// dropped because the buffer is full.
func (c *CameraSource) Decoded(text string) bool {
	select {
	case c.texts <- text:
		return true
	default:
		return false
	}
}

func (c *CameraSource) Run(ctx context.Context, emit func(raw string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text := <-c.texts:
			emit(text)
		}
	}
}

// Pump feeds every text from src into uc.Scan and logs the outcome. room
// is passed along for room-verification screens and may be empty.
func Pump(ctx context.Context, src Source, uc input.CheckinUseCase, room string) error {
	err := src.Run(ctx, func(raw string) {
		session, err := uc.Scan(ctx, raw, room)
		switch {
		case err != nil:
			log.Printf("⚠️ Escaneo rechazado (%s): %v", domain.Code(err), err)
		case session.Status == domain.SessionCoolingDown:
			log.Printf("⚠️ Escaneo ignorado, espere: %q", session.NormalizedCode)
		case session.Attendee != nil:
			log.Printf("✅ %s encontrado (%s, %s)", session.Attendee.Name, session.Source, session.NormalizedCode)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
