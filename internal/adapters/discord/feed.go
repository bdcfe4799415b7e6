// Package discord posts check-in outcomes to a staff channel.
package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"expocheckin/internal/domain/entities"
	"expocheckin/internal/ports/output"
)

var _ output.ScanJournal = (*StaffFeed)(nil)

// embedSender is the part of *discordgo.Session the feed uses.
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// StaffFeed is a journal sink that mirrors confirmations and failed side
// effects to a Discord channel.
type StaffFeed struct {
	sender    embedSender
	channelID string
}

// NewStaffFeed opens a REST-only bot session for token.
func NewStaffFeed(token, channelID string) (*StaffFeed, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	log.Printf("✅ Canal de staff Discord configurado (%s)", channelID)
	return newStaffFeed(s, channelID), nil
}

func newStaffFeed(sender embedSender, channelID string) *StaffFeed {
	return &StaffFeed{sender: sender, channelID: channelID}
}

func (f *StaffFeed) Record(ctx context.Context, e entities.JournalEntry) error {
	if !wanted(e) {
		return nil
	}
	if _, err := f.sender.ChannelMessageSendEmbed(f.channelID, BuildEntryEmbed(e), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord staff feed: %w", err)
	}
	return nil
}
