package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func componentInteraction(userID, messageID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionMessageComponent,
			Member:  &discordgo.Member{User: &discordgo.User{ID: userID}},
			Message: &discordgo.Message{ID: messageID},
		},
	}
}

func TestSessionManager_DispatchToOwner(t *testing.T) {
	m := NewSessionManager()

	handled := 0
	m.Start(&InteractionSession{
		UserID:    "123456789012345678",
		MessageID: "msg1",
		Timeout:   time.Minute,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			handled++
		},
	})

	assert.Equal(t, SessionActive, m.State("msg1"))
	assert.True(t, m.Dispatch(nil, componentInteraction("123456789012345678", "msg1")))
	assert.Equal(t, 1, handled)
}

func TestSessionManager_RejectsOtherUsers(t *testing.T) {
	m := NewSessionManager()

	rejected := 0
	m.rejectNotice = func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		rejected++
	}

	handled := 0
	m.Start(&InteractionSession{
		UserID:    "123456789012345678",
		MessageID: "msg1",
		Timeout:   time.Minute,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			handled++
		},
	})

	// An intruder's click is swallowed with a notice and the session
	// state is untouched
	assert.True(t, m.Dispatch(nil, componentInteraction("111111111111111111", "msg1")))
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, handled)
	assert.Equal(t, SessionActive, m.State("msg1"))
}

func TestSessionManager_UnknownMessageFallsThrough(t *testing.T) {
	m := NewSessionManager()

	assert.False(t, m.Dispatch(nil, componentInteraction("123456789012345678", "unknown")))
}

func TestSessionManager_Stop(t *testing.T) {
	m := NewSessionManager()

	handled := 0
	m.Start(&InteractionSession{
		UserID:    "123456789012345678",
		MessageID: "msg1",
		Timeout:   time.Minute,
		Handle: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			handled++
		},
	})

	m.Stop("msg1")
	assert.Equal(t, SessionExpired, m.State("msg1"), "stopped sessions are forgotten")

	// Late clicks fall through to static routes
	assert.False(t, m.Dispatch(nil, componentInteraction("123456789012345678", "msg1")))
	assert.Equal(t, 0, handled)
}

func TestSessionManager_Expiry(t *testing.T) {
	m := NewSessionManager()

	expired := make(chan struct{})
	m.Start(&InteractionSession{
		UserID:    "123456789012345678",
		MessageID: "msg1",
		Timeout:   10 * time.Millisecond,
		Handle:    func(s *discordgo.Session, i *discordgo.InteractionCreate) {},
		OnExpire: func() {
			close(expired)
		},
	})

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("session did not expire")
	}

	assert.Equal(t, SessionExpired, m.State("msg1"))
	assert.False(t, m.Dispatch(nil, componentInteraction("123456789012345678", "msg1")))
}
