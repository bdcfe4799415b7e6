// Package qrcode canonicalizes text emitted by camera decoders and
// keyboard-emulating scanners so it can be compared with stored badge codes.
package qrcode

import "strings"

// Some scanners emit ']' where the badge encodes '|', and '¡' where it
// encodes a leading '+' (keyboard layout substitution).
var scannerFixes = strings.NewReplacer("]", "|", "¡", "+")

// Normalize returns the canonical form of a scanned code: ']' -> '|',
// '¡' -> '+', then surrounding whitespace trimmed. Case and inner
// whitespace are left untouched.
func Normalize(raw string) string {
	return strings.TrimSpace(scannerFixes.Replace(raw))
}

// IsEmpty reports whether raw carries no code at all once normalized.
func IsEmpty(raw string) bool {
	return Normalize(raw) == ""
}
