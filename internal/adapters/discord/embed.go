package discord

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"expocheckin/internal/domain"
	"expocheckin/internal/domain/entities"
	"expocheckin/pkg/tz"
)

const (
	colorOK      = 0x57F287
	colorWarning = 0xFEE75C
	colorFailed  = 0xED4245

	maxDetail = 1024
)

var titles = map[string]string{
	domain.JournalConfirmation: "Asistencia",
	domain.JournalPrint:        "Impresión térmica",
	domain.JournalPhoto:        "Foto",
	domain.JournalNotification: "WhatsApp",
}

// wanted reports whether an entry deserves a staff message: every
// confirmation, and side effects only when they fail.
func wanted(e entities.JournalEntry) bool {
	return e.Kind == domain.JournalConfirmation || e.Outcome != domain.OutcomeOK
}

// BuildEntryEmbed renders a journal entry for the staff channel.
func BuildEntryEmbed(e entities.JournalEntry) *discordgo.MessageEmbed {
	title := titles[e.Kind]
	if title == "" {
		title = e.Kind
	}
	ok := e.Outcome == domain.OutcomeOK
	var color int
	switch {
	case e.Kind == domain.JournalConfirmation && ok:
		title, color = "✅ Asistencia confirmada", colorOK
	case e.Kind == domain.JournalConfirmation:
		title, color = "❌ Asistencia no confirmada", colorFailed
	case ok:
		title, color = "✅ "+title, colorOK
	default:
		title, color = "⚠️ "+title+" fallida", colorWarning
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Registro", Value: strconv.FormatInt(e.AttendeeID, 10), Inline: true},
		{Name: "Nombre", Value: orDash(e.AttendeeName), Inline: true},
		{Name: "QR", Value: orDash(e.QRCode), Inline: true},
	}
	if d := strings.TrimSpace(e.Detail); d != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Detalle", Value: truncate(d, maxDetail)})
	}

	embed := &discordgo.MessageEmbed{
		Title:  title,
		Color:  color,
		Fields: fields,
	}
	if !e.CreatedAt.IsZero() {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s (Lima)", tz.Stamp(e.CreatedAt))}
	}
	return embed
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
