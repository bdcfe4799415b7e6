// Package textclean strips diacritics from text sent to channels that
// only accept plain ASCII letters (the WhatsApp proxy).
package textclean

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Clean removes accents and turns ñ/Ñ into n/N: "José Ñúñez" -> "Jose Nunez".
func Clean(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return fallback(s)
	}
	return out
}

var fallbackReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U", "Ñ", "N",
)

// fallback covers the Spanish alphabet when the transformer rejects input
// (invalid UTF-8).
func fallback(s string) string {
	return fallbackReplacer.Replace(s)
}
