package notifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/event-tickets/internal/models"
	"go.uber.org/zap"
)

var (
	ErrNoSession = errors.New("discord session is nil")
	ErrNoChannel = errors.New("discord channel ID is empty")
)

type Notifier interface {
	NotifyAttendee(event models.Event, attendee models.Attendee, availability int) error
}

// MessageSender is the part of *discordgo.Session used to post messages.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   MessageSender
	channelID string
	log       *zap.Logger
}

func NewDiscordNotifier(session *discordgo.Session, channelID string, log *zap.Logger) *DiscordNotifier {
	n := &DiscordNotifier{channelID: channelID, log: log}
	if session != nil {
		n.session = session
	}
	if n.log == nil {
		n.log = zap.NewNop()
	}
	return n
}

func (n *DiscordNotifier) NotifyAttendee(event models.Event, attendee models.Attendee, availability int) error {
	if n.session == nil {
		return ErrNoSession
	}
	if n.channelID == "" {
		return ErrNoChannel
	}

	if _, err := n.session.ChannelMessageSend(n.channelID, AttendeeMessage(event, attendee, availability)); err != nil {
		n.log.Error("failed to send discord message",
			zap.String("channel_id", n.channelID),
			zap.Uint("event_id", event.ID),
			zap.Error(err),
		)
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}

// AttendeeMessage formats the announcement for a new guest.
func AttendeeMessage(event models.Event, attendee models.Attendee, availability int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎟️ **New attendee**\n**Event:** %s\n**Guest:** %s", event.Title, attendee.Title)
	if attendee.Email != "" {
		fmt.Fprintf(&b, " (%s)", attendee.Email)
	}
	if availability < 0 {
		fmt.Fprintf(&b, "\n**Overbooked by:** %d", -availability)
	} else {
		fmt.Fprintf(&b, "\n**Places left:** %d of %d", availability, event.Capacity)
	}
	return b.String()
}
