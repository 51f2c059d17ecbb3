// Package support implements the scripted support assistant: a
// keyword-matched FAQ engine with deterministic replies, option-driven
// branching, and per-message feedback. No external AI service is involved;
// every reply comes from the static knowledge base.
package support

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message roles in a support transcript.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Feedback verdicts.
const (
	VerdictHelpful    = "helpful"
	VerdictNotHelpful = "not-helpful"
)

// Mode is the coarse conversation state.
type Mode string

const (
	// ModeWelcome means only the greeting has been shown.
	ModeWelcome Mode = "welcome"
	// ModeChatting means the visitor has interacted at least once.
	ModeChatting Mode = "chatting"
)

// Default reply pacing, matching the widget the engine replaced.
const (
	DefaultReplyDelay    = 800 * time.Millisecond
	DefaultFeedbackDelay = 500 * time.Millisecond
	DefaultResetDelay    = 300 * time.Millisecond
)

var (
	// ErrReplyPending is returned when a call arrives while a previous
	// reply is still being paced out.
	ErrReplyPending = errors.New("support: reply already pending")
	// ErrEmptyMessage is returned for blank free-text input.
	ErrEmptyMessage = errors.New("support: empty message")
	// ErrInvalidVerdict is returned for a feedback value that is neither
	// helpful nor not-helpful.
	ErrInvalidVerdict = errors.New("support: invalid feedback verdict")
)

// Message is one transcript entry.
type Message struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	ShowOptions bool      `json:"showOptions,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
}

// Config controls a session's pacing and determinism hooks. Delays are
// honored as given, so tests can set them to zero; Now, NewID, and
// KnowledgeBase fall back to real implementations when nil.
type Config struct {
	ReplyDelay    time.Duration
	FeedbackDelay time.Duration
	ResetDelay    time.Duration

	Now           func() time.Time
	NewID         func() string
	KnowledgeBase []Entry
}

// DefaultConfig returns production pacing with real time and uuid sources.
func DefaultConfig() Config {
	return Config{
		ReplyDelay:    DefaultReplyDelay,
		FeedbackDelay: DefaultFeedbackDelay,
		ResetDelay:    DefaultResetDelay,
	}
}

// Session is one visitor's conversation. All methods are safe for
// concurrent use; at most one reply is paced out at a time and competing
// calls fail fast with ErrReplyPending rather than queueing.
type Session struct {
	mu         sync.Mutex
	cfg        Config
	kb         []Entry
	transcript []Message
	mode       Mode
	pending    bool
}

// NewSession creates a session seeded with the welcome greeting.
func NewSession(cfg Config) *Session {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	kb := cfg.KnowledgeBase
	if kb == nil {
		kb = DefaultKnowledgeBase()
	}
	s := &Session{cfg: cfg, kb: kb}
	s.reset(greetingText)
	return s
}

// Submit records free-text visitor input, paces out the reply delay, and
// appends the first knowledge-base entry whose keyword occurs in the input
// (or the generic fallback). The user message is always appended before
// the reply, even if the context is canceled during the delay.
func (s *Session) Submit(ctx context.Context, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrReplyPending
	}
	s.pending = true
	s.transcript = append(s.transcript, Message{
		ID:        s.cfg.NewID(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: s.cfg.Now(),
	})
	entry := s.match(text)
	s.mu.Unlock()

	if err := s.wait(ctx, s.cfg.ReplyDelay); err != nil {
		s.clearPending()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.mode = ModeChatting
	reply := s.appendBot(entry.Response, entry.FollowUp)
	return &reply, nil
}

// SelectOption resolves an option action id. Reserved ids produce fixed
// transitions; any other id is looked up against the knowledge base by
// exact keyword, falling back to the still-learning response. ActionEndChat
// paces out the reset delay, restores the welcome greeting, and returns no
// message.
func (s *Session) SelectOption(ctx context.Context, action string) (*Message, error) {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrReplyPending
	}

	switch action {
	case ActionEndChat:
		s.pending = true
		s.mu.Unlock()
		if err := s.wait(ctx, s.cfg.ResetDelay); err != nil {
			s.clearPending()
			return nil, err
		}
		s.mu.Lock()
		s.pending = false
		s.reset(greetingText)
		s.mu.Unlock()
		return nil, nil

	case ActionRestart:
		s.reset(restartGreetingText)
		greeting := s.transcript[0]
		s.mu.Unlock()
		return &greeting, nil
	}

	var entry Entry
	switch action {
	case ActionMainMenu:
		entry = Entry{Response: mainMenuText, FollowUp: conversationStarters()}
	case ActionGettingStarted:
		entry = Entry{Response: gettingStartedText, FollowUp: gettingStartedOptions()}
	case ActionMoreHelp:
		entry = Entry{Response: moreHelpText, FollowUp: moreHelpOptions()}
	default:
		entry = s.lookup(action)
	}

	s.mode = ModeChatting
	reply := s.appendBot(entry.Response, entry.FollowUp)
	s.mu.Unlock()
	return &reply, nil
}

// Feedback records a verdict on a bot message. The first verdict wins;
// repeat ratings and unknown ids are silent no-ops returning no message.
// When a verdict is recorded, an acknowledgment reply is paced out.
func (s *Session) Feedback(ctx context.Context, messageID, verdict string) (*Message, error) {
	if verdict != VerdictHelpful && verdict != VerdictNotHelpful {
		return nil, ErrInvalidVerdict
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrReplyPending
	}
	idx := -1
	for i := range s.transcript {
		if s.transcript[i].ID == messageID && s.transcript[i].Role == RoleBot {
			idx = i
			break
		}
	}
	if idx < 0 || s.transcript[idx].Feedback != "" {
		s.mu.Unlock()
		return nil, nil
	}
	s.transcript[idx].Feedback = verdict
	s.pending = true
	s.mu.Unlock()

	if err := s.wait(ctx, s.cfg.FeedbackDelay); err != nil {
		s.clearPending()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	text := feedbackHelpfulText
	if verdict == VerdictNotHelpful {
		text = feedbackNotHelpfulText
	}
	reply := s.appendBot(text, genericOptions())
	return &reply, nil
}

// Reset immediately restores the welcome state, discarding the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(greetingText)
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Mode reports the current conversation mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// match returns the first entry whose keyword occurs anywhere in the
// lowercased input, or the generic fallback.
func (s *Session) match(text string) Entry {
	lower := strings.ToLower(text)
	for _, e := range s.kb {
		for _, kw := range e.Keywords {
			if strings.Contains(lower, kw) {
				return e
			}
		}
	}
	return fallbackEntry()
}

// lookup returns the first entry listing the action as an exact keyword,
// or the still-learning fallback.
func (s *Session) lookup(action string) Entry {
	for _, e := range s.kb {
		for _, kw := range e.Keywords {
			if kw == action {
				return e
			}
		}
	}
	return stillLearningEntry()
}

// appendBot appends a scripted reply and returns a copy of it.
// Caller must hold s.mu.
func (s *Session) appendBot(content string, opts []Option) Message {
	msg := Message{
		ID:          s.cfg.NewID(),
		Role:        RoleBot,
		Content:     content,
		Timestamp:   s.cfg.Now(),
		ShowOptions: len(opts) > 0,
		Options:     opts,
	}
	s.transcript = append(s.transcript, msg)
	return msg
}

// reset replaces the transcript with a fresh greeting.
// Caller must hold s.mu.
func (s *Session) reset(greeting string) {
	s.transcript = []Message{{
		ID:          s.cfg.NewID(),
		Role:        RoleBot,
		Content:     greeting,
		Timestamp:   s.cfg.Now(),
		ShowOptions: true,
		Options:     conversationStarters(),
	}}
	s.mode = ModeWelcome
}

func (s *Session) clearPending() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

// wait sleeps for d or until the context is canceled.
func (s *Session) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
