package output

// Translator renders banner and status messages shown by the check-in UI.
type Translator interface {
	// T renders the message identified by key for locale; data fills
	// template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
}
