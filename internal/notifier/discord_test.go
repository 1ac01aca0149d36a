package notifier

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	channelID string
	content   string
	err       error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.content = content
	return &discordgo.Message{Content: content}, f.err
}

func TestDiscordNotifier_NotifyAttendee(t *testing.T) {
	event := models.Event{Title: "Summer Fest", Capacity: 50}
	attendee := models.Attendee{Title: "Ada Lovelace", Email: "ada@example.com"}

	t.Run("NilSession", func(t *testing.T) {
		n := NewDiscordNotifier(nil, "chan", nil)
		assert.ErrorIs(t, n.NotifyAttendee(event, attendee, 10), ErrNoSession)
	})

	t.Run("NoChannel", func(t *testing.T) {
		n := &DiscordNotifier{session: &fakeSender{}}
		assert.ErrorIs(t, n.NotifyAttendee(event, attendee, 10), ErrNoChannel)
	})

	t.Run("Sends", func(t *testing.T) {
		sender := &fakeSender{}
		n := NewDiscordNotifier(nil, "chan", nil)
		n.session = sender

		require.NoError(t, n.NotifyAttendee(event, attendee, 12))
		assert.Equal(t, "chan", sender.channelID)
		assert.Contains(t, sender.content, "Summer Fest")
		assert.Contains(t, sender.content, "Ada Lovelace (ada@example.com)")
		assert.Contains(t, sender.content, "12 of 50")
	})

	t.Run("SendFails", func(t *testing.T) {
		boom := errors.New("boom")
		n := NewDiscordNotifier(nil, "chan", nil)
		n.session = &fakeSender{err: boom}
		assert.ErrorIs(t, n.NotifyAttendee(event, attendee, 1), boom)
	})
}

func TestAttendeeMessage_Overbooked(t *testing.T) {
	msg := AttendeeMessage(models.Event{Title: "Tiny", Capacity: 2}, models.Attendee{Title: "Grace"}, -3)
	assert.Contains(t, msg, "Overbooked by:** 3")
	assert.NotContains(t, msg, "(")
}
