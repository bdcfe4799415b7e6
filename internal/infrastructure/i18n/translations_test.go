package i18n

import "testing"

func TestTranslatorLocales(t *testing.T) {
	tr := NewTranslator("es")
	cases := []struct {
		locale, key string
		data        map[string]any
		want        string
	}{
		{"", "error.attendee_not_found", nil, "Código QR no encontrado en el sistema."},
		{"en", "error.attendee_not_found", nil, "QR code not found in the system."},
		{"en-US,en;q=0.9", "error.empty_code", nil, "The QR code is empty. Please scan again."},
		{"fr", "error.generic", nil, "Ocurrió un error inesperado."},
		{"en", "scan.resolved", map[string]any{"Name": "Ana"}, "Welcome, Ana"},
		{"es", "confirm.done", map[string]any{"Name": "José"}, "Asistencia confirmada: José"},
		{"es", "missing.key", nil, "missing.key"},
		{"es", "", nil, ""},
	}
	for _, c := range cases {
		if got := tr.T(c.locale, c.key, c.data); got != c.want {
			t.Errorf("T(%q, %q) = %q, want %q", c.locale, c.key, got, c.want)
		}
	}
}

func TestEveryKeyTranslatedInEnglish(t *testing.T) {
	tr := NewTranslator("es")
	keys := []string{
		"error.empty_code", "error.attendee_not_found", "error.invalid_attendee_id",
		"error.lookup_failed", "error.confirmation_failed", "error.cache_load_failed",
		"error.side_effect_failed", "error.journal_disabled", "error.invalid_request",
		"error.generic", "scan.cooling_down", "reset.done",
	}
	for _, k := range keys {
		es, en := tr.T("es", k, nil), tr.T("en", k, nil)
		if es == k || en == k || es == en {
			t.Errorf("%s: es=%q en=%q", k, es, en)
		}
	}
}

func TestResolve(t *testing.T) {
	tr := NewTranslator("es")
	cases := map[string]string{
		"":                      "es",
		"en":                    "en",
		"en-GB,en;q=0.8":        "en",
		"fr-FR,fr;q=0.9":        "es",
		"es-PE,es;q=0.9,en;q=0": "es",
		";;;":                   "es",
	}
	for header, want := range cases {
		if got := tr.Resolve(header).String(); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", header, got, want)
		}
	}
}
