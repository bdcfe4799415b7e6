package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ScannerNone  = "none"
	ScannerStdin = "stdin"
)

type Config struct {
	VerifierURL       string
	VerifierID        string
	HTTPAddr          string
	HTTPTimeout       time.Duration
	SideEffectTimeout time.Duration
	ScanCooldown      time.Duration
	ScanSettleDelay   time.Duration
	ScannerInput      string
	ScannerDebounce   time.Duration
	PrintMode         string
	DefaultLocale     string
	CORSOrigins       []string
	DatabaseURL       string
	MigrationsPath    string
	DiscordToken      string
	DiscordChannelID  string
}

// Load reads the configuration from the environment (and an optional .env
// file) and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env es opcional cuando el entorno ya trae las variables (Docker, CI, etc.).
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		VerifierURL:      get("VERIFIER_API_URL", ""),
		VerifierID:       get("VERIFIER_ID", "verificador_qr"),
		HTTPAddr:         get("HTTP_ADDR", ":8080"),
		ScannerInput:     strings.ToLower(get("SCANNER_INPUT", ScannerNone)),
		PrintMode:        get("PRINT_MODE", "auto"),
		DefaultLocale:    get("DEFAULT_LOCALE", "es"),
		CORSOrigins:      splitList(get("CORS_ORIGINS", "*")),
		DatabaseURL:      get("DATABASE_URL", ""),
		MigrationsPath:   get("MIGRATIONS_PATH", "migrations"),
		DiscordToken:     get("DISCORD_TOKEN", ""),
		DiscordChannelID: get("DISCORD_CHANNEL_ID", ""),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "15s", &cfg.HTTPTimeout},
		{"SIDE_EFFECT_TIMEOUT", "30s", &cfg.SideEffectTimeout},
		{"SCAN_COOLDOWN", "3s", &cfg.ScanCooldown},
		{"SCAN_SETTLE_DELAY", "300ms", &cfg.ScanSettleDelay},
		{"SCANNER_DEBOUNCE", "120ms", &cfg.ScannerDebounce},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(get(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("config: %s inválido: %w", d.key, err)
		}
		*d.dst = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JournalEnabled reports whether the journal database is configured.
func (c *Config) JournalEnabled() bool { return c.DatabaseURL != "" }

// DiscordEnabled reports whether the staff feed is configured.
func (c *Config) DiscordEnabled() bool { return c.DiscordToken != "" && c.DiscordChannelID != "" }

func (c *Config) validate() error {
	if c.VerifierURL == "" {
		return fmt.Errorf("config: VERIFIER_API_URL es requerido y no puede estar vacío")
	}
	parsed, err := url.Parse(c.VerifierURL)
	if err != nil {
		return fmt.Errorf("config: VERIFIER_API_URL inválido (%q): %w", c.VerifierURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("config: VERIFIER_API_URL inválido (%q): se espera http(s)://host", c.VerifierURL)
	}

	for key, d := range map[string]time.Duration{
		"HTTP_TIMEOUT":        c.HTTPTimeout,
		"SIDE_EFFECT_TIMEOUT": c.SideEffectTimeout,
		"SCAN_COOLDOWN":       c.ScanCooldown,
		"SCANNER_DEBOUNCE":    c.ScannerDebounce,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s debe ser mayor que cero", key)
		}
	}
	if c.ScanSettleDelay < 0 {
		return fmt.Errorf("config: SCAN_SETTLE_DELAY no puede ser negativo")
	}

	if c.ScannerInput != ScannerNone && c.ScannerInput != ScannerStdin {
		return fmt.Errorf("config: SCANNER_INPUT debe ser %q o %q", ScannerNone, ScannerStdin)
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL inválido (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL inválido (%q): scheme o host faltante", c.DatabaseURL)
		}
	}

	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return fmt.Errorf("config: DISCORD_TOKEN y DISCORD_CHANNEL_ID van juntos")
	}
	for _, r := range c.DiscordChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID debe ser un ID de canal de Discord (solo dígitos)")
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
