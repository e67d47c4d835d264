package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// SessionState is the lifecycle of an interactive session.
type SessionState int

const (
	SessionActive SessionState = iota
	SessionCompleted
	SessionExpired
)

func (s SessionState) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionCompleted:
		return "completed"
	case SessionExpired:
		return "expired"
	}
	return "unknown"
}

// InteractionSession binds the components of one message to one user for a
// bounded window. Interactions from anyone else get an ephemeral rejection
// and do not advance the session.
type InteractionSession struct {
	UserID    string
	MessageID string
	Timeout   time.Duration

	// Handle runs for every qualifying interaction while Active.
	Handle func(s *discordgo.Session, i *discordgo.InteractionCreate)

	// OnExpire fires once when the window closes without completion,
	// conventionally disabling the message components. Best-effort.
	OnExpire func()

	state SessionState
	timer *time.Timer
}

// SessionManager tracks live interactive sessions keyed by message id.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*InteractionSession

	// rejectNotice is swappable for tests
	rejectNotice func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*InteractionSession),
		rejectNotice: sendNotForYou,
	}
}

// Start activates a session and schedules its expiry
func (m *SessionManager) Start(sess *InteractionSession) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess.state = SessionActive
	sess.timer = time.AfterFunc(sess.Timeout, func() {
		m.expire(sess.MessageID)
	})
	m.sessions[sess.MessageID] = sess
}

// Dispatch routes a component interaction into its session. Returns false
// when no session owns the message, so the caller can fall through to the
// static component routes.
func (m *SessionManager) Dispatch(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Message == nil {
		return false
	}

	m.mu.Lock()
	sess, ok := m.sessions[i.Message.ID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	active := sess.state == SessionActive
	owner := interactionUserID(i) == sess.UserID
	m.mu.Unlock()

	if !owner {
		m.rejectNotice(s, i)
		return true
	}
	if !active {
		return true
	}

	sess.Handle(s, i)
	return true
}

// Stop completes a session early, preventing any further collection.
// Single-shot flows call this from their own handler.
func (m *SessionManager) Stop(messageID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[messageID]
	if !ok {
		return
	}
	sess.state = SessionCompleted
	sess.timer.Stop()
	delete(m.sessions, messageID)
}

// State reports a session's lifecycle state; Expired for unknown ids.
func (m *SessionManager) State(messageID string) SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[messageID]; ok {
		return sess.state
	}
	return SessionExpired
}

func (m *SessionManager) expire(messageID string) {
	m.mu.Lock()
	sess, ok := m.sessions[messageID]
	if !ok || sess.state != SessionActive {
		m.mu.Unlock()
		return
	}
	sess.state = SessionExpired
	delete(m.sessions, messageID)
	m.mu.Unlock()

	if sess.OnExpire != nil {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Warn("Session expiry cleanup panicked")
			}
		}()
		sess.OnExpire()
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func sendNotForYou(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "This isn't your game.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Debug("Failed to send session rejection notice")
	}
}
