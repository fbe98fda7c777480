// Package session holds the state of a single typing practice attempt.
//
// A Session is a plain value. Every handler returns the next value and
// leaves its receiver untouched, so the caller owns the only copy and
// decides when to re-render.
package session

import (
	"time"

	"github.com/verte-zerg/touchtype/internal/metrics"
)

// DefaultPreviewLen is the number of upcoming characters shown to the typist.
const DefaultPreviewLen = 10

// State is the lifecycle stage of a Session.
type State int

const (
	// StateIdle means no text has been entered since the last reset.
	StateIdle State = iota
	// StateInProgress means typing has started and the session has not ended.
	StateInProgress
	// StateEnded means the session was submitted or timed out.
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in progress"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Picker supplies sentences for new sessions.
type Picker interface {
	Pick() string
}

// Session is one practice attempt against a single sentence.
type Session struct {
	Sentence   string
	Typed      string
	StartedAt  time.Time
	EndedAt    time.Time
	Accuracy   float64
	KeyPresses int

	Result    metrics.Result
	Submitted bool
}

// New returns an idle session for sentence.
func New(sentence string) Session {
	return Session{Sentence: sentence}
}

// Start returns an idle session for a sentence chosen by p.
func Start(p Picker) Session {
	return New(p.Pick())
}

// State reports the lifecycle stage derived from the timestamps.
func (s Session) State() State {
	switch {
	case !s.EndedAt.IsZero():
		return StateEnded
	case !s.StartedAt.IsZero():
		return StateInProgress
	default:
		return StateIdle
	}
}

// TextChanged records the current input text. The first change after a
// reset starts the session clock.
func (s Session) TextChanged(text string, now time.Time) Session {
	s.Typed = text
	if s.StartedAt.IsZero() {
		s.StartedAt = now
	}
	return s
}

// KeyPressed counts one raw key press.
func (s Session) KeyPressed() Session {
	s.KeyPresses++
	return s
}

// Submit ends the session and computes its metrics. An existing end time
// is kept. Submitting an idle session yields zero metrics and leaves it idle.
func (s Session) Submit(now time.Time) Session {
	var elapsed time.Duration
	if !s.StartedAt.IsZero() {
		if s.EndedAt.IsZero() {
			s.EndedAt = now
		}
		elapsed = s.EndedAt.Sub(s.StartedAt)
	}
	s.Result = metrics.Compute(s.Sentence, s.Typed, elapsed)
	s.Accuracy = s.Result.Accuracy
	s.Submitted = true
	return s
}

// Expire stamps the end time once limit has passed since the session
// started. Sessions that are idle or already ended are returned unchanged.
func (s Session) Expire(now time.Time, limit time.Duration) Session {
	if s.State() != StateInProgress {
		return s
	}
	if now.Sub(s.StartedAt) < limit {
		return s
	}
	s.EndedAt = now
	return s
}

// Elapsed returns the time spent typing, measured up to now for sessions
// still in progress.
func (s Session) Elapsed(now time.Time) time.Duration {
	switch s.State() {
	case StateInProgress:
		return now.Sub(s.StartedAt)
	case StateEnded:
		return s.EndedAt.Sub(s.StartedAt)
	default:
		return 0
	}
}

// NextCharacters returns up to n characters of the sentence that follow
// the typed text.
func (s Session) NextCharacters(n int) string {
	target := []rune(s.Sentence)
	from := len([]rune(s.Typed))
	if n <= 0 || from >= len(target) {
		return ""
	}
	to := from + n
	if to > len(target) {
		to = len(target)
	}
	return string(target[from:to])
}
