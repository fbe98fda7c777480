package session

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/touchtype/internal/sentences"
)

type fixedPicker string

func (p fixedPicker) Pick() string { return string(p) }

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestStartResetsEverySentence(t *testing.T) {
	for _, sentence := range sentences.Default() {
		s := Start(fixedPicker(sentence))
		if s.Sentence != sentence {
			t.Fatalf("expected sentence %q, got %q", sentence, s.Sentence)
		}
		if s.Typed != "" || s.KeyPresses != 0 || s.Accuracy != 0 {
			t.Fatalf("expected reset session, got %+v", s)
		}
		if !s.StartedAt.IsZero() || !s.EndedAt.IsZero() {
			t.Fatalf("expected unset timestamps, got %+v", s)
		}
		next := s.NextCharacters(DefaultPreviewLen)
		if len([]rune(next)) > DefaultPreviewLen || !strings.HasPrefix(sentence, next) {
			t.Fatalf("expected preview to be a short prefix of %q, got %q", sentence, next)
		}
		if s.State() != StateIdle {
			t.Fatalf("expected idle state, got %v", s.State())
		}
	}
}

func TestStartUsesInjectedSource(t *testing.T) {
	pool := sentences.Default()
	want := pool[rand.New(rand.NewSource(11)).Intn(len(pool))]
	s := Start(sentences.NewPicker(pool, rand.New(rand.NewSource(11))))
	if s.Sentence != want {
		t.Fatalf("expected %q, got %q", want, s.Sentence)
	}
}

func TestStartTwiceEqualsOnce(t *testing.T) {
	once := Start(fixedPicker("We become what we think about."))
	twice := Start(fixedPicker("We become what we think about."))
	twice = Start(fixedPicker("We become what we think about."))
	if once != twice {
		t.Fatalf("expected identical sessions, got %+v and %+v", once, twice)
	}
}

func TestTextChangedStartsClockOnce(t *testing.T) {
	s := New("She eats eggs in the morning.")
	s = s.TextChanged("S", t0)
	if !s.StartedAt.Equal(t0) {
		t.Fatalf("expected start time %v, got %v", t0, s.StartedAt)
	}
	if s.State() != StateInProgress {
		t.Fatalf("expected in-progress state, got %v", s.State())
	}
	for i := 1; i <= 5; i++ {
		s = s.TextChanged(strings.Repeat("S", i+1), t0.Add(time.Duration(i)*time.Second))
	}
	if !s.StartedAt.Equal(t0) {
		t.Fatalf("expected start time to stay %v, got %v", t0, s.StartedAt)
	}
	if s.Typed != "SSSSSS" {
		t.Fatalf("unexpected typed text %q", s.Typed)
	}
}

func TestHandlersDoNotMutateReceiver(t *testing.T) {
	s := New("She eats eggs in the morning.")
	_ = s.TextChanged("She", t0)
	_ = s.KeyPressed()
	if s.Typed != "" || s.KeyPresses != 0 || !s.StartedAt.IsZero() {
		t.Fatalf("expected receiver to stay unchanged, got %+v", s)
	}
}

func TestKeyPressedCounts(t *testing.T) {
	s := New("He was waiting for the rain to stop.")
	for i := 0; i < 17; i++ {
		s = s.KeyPressed()
	}
	if s.KeyPresses != 17 {
		t.Fatalf("expected 17 key presses, got %d", s.KeyPresses)
	}
}

func TestSubmitScenario(t *testing.T) {
	s := New("She eats eggs in the morning.")
	s = s.TextChanged("S", t0)
	s = s.TextChanged("She eats eggs", t0.Add(20*time.Second))
	s = s.Submit(t0.Add(30 * time.Second))

	if s.State() != StateEnded {
		t.Fatalf("expected ended state, got %v", s.State())
	}
	if s.Result.TypedWordsCount != 3 || s.Result.WordsCount != 6 {
		t.Fatalf("unexpected word counts: %+v", s.Result)
	}
	if s.Accuracy != 50 {
		t.Fatalf("expected accuracy 50, got %v", s.Accuracy)
	}
	if math.Abs(s.Result.GrossWPM-6) > 1e-9 || math.Abs(s.Result.NetWPM-5.7) > 1e-9 {
		t.Fatalf("unexpected WPM: %+v", s.Result)
	}
}

func TestSubmitBeforeTyping(t *testing.T) {
	s := New("She eats eggs in the morning.")
	s = s.Submit(t0)
	if s.Accuracy != 0 || math.IsNaN(s.Accuracy) {
		t.Fatalf("expected accuracy 0, got %v", s.Accuracy)
	}
	if s.Result.GrossWPM != 0 || s.Result.NetWPM != 0 {
		t.Fatalf("expected zero WPM, got %+v", s.Result)
	}
	if s.State() != StateIdle {
		t.Fatalf("expected idle state after empty submit, got %v", s.State())
	}
}

func TestSubmitKeepsFirstEndTime(t *testing.T) {
	s := New("She eats eggs in the morning.")
	s = s.TextChanged("She eats eggs", t0)
	s = s.Expire(t0.Add(5*time.Minute), 5*time.Minute)
	ended := s.EndedAt
	s = s.Submit(t0.Add(6 * time.Minute))
	if !s.EndedAt.Equal(ended) {
		t.Fatalf("expected end time %v to be kept, got %v", ended, s.EndedAt)
	}
	if s.Result.Minutes != 5 {
		t.Fatalf("expected metrics over 5 minutes, got %v", s.Result.Minutes)
	}
}

func TestAccuracyWithinBounds(t *testing.T) {
	typed := []string{"", "one", strings.Repeat("word ", 20), "She eats eggs in the morning."}
	for _, text := range typed {
		s := New("We become what we think about.")
		if text != "" {
			s = s.TextChanged(text, t0)
		}
		s = s.Submit(t0.Add(time.Minute))
		if s.Accuracy < 0 || s.Accuracy > 100 {
			t.Fatalf("accuracy out of range for %q: %v", text, s.Accuracy)
		}
	}
}

func TestExpire(t *testing.T) {
	limit := 5 * time.Minute
	s := New("She eats eggs in the morning.")
	if got := s.Expire(t0.Add(time.Hour), limit); got.State() != StateIdle {
		t.Fatalf("expected idle session to ignore expiry, got %v", got.State())
	}

	s = s.TextChanged("She", t0)
	if got := s.Expire(t0.Add(4*time.Minute), limit); got.State() != StateInProgress {
		t.Fatalf("expected session to keep running before the limit")
	}
	expiredAt := t0.Add(limit + time.Second)
	s = s.Expire(expiredAt, limit)
	if !s.EndedAt.Equal(expiredAt) {
		t.Fatalf("expected end time %v, got %v", expiredAt, s.EndedAt)
	}
	if s.Typed != "She" || s.Submitted {
		t.Fatalf("expected expiry to touch only the end time, got %+v", s)
	}

	again := s.Expire(expiredAt.Add(time.Minute), limit)
	if !again.EndedAt.Equal(expiredAt) {
		t.Fatalf("expected ended session to stay unchanged")
	}

	s = s.TextChanged("She eats", expiredAt.Add(time.Second))
	if s.Typed != "She eats" || s.State() != StateEnded {
		t.Fatalf("expected input to stay editable after expiry, got %+v", s)
	}
}

func TestNextCharacters(t *testing.T) {
	s := New("She eats eggs in the morning.")
	if got := s.NextCharacters(10); got != "She eats e" {
		t.Fatalf("unexpected preview %q", got)
	}
	s = s.TextChanged("She eats eggs in the morn", t0)
	if got := s.NextCharacters(10); got != "ing." {
		t.Fatalf("unexpected preview near end %q", got)
	}
	s = s.TextChanged("She eats eggs in the morning. and more", t0)
	if got := s.NextCharacters(10); got != "" {
		t.Fatalf("expected empty preview, got %q", got)
	}
}

func TestElapsed(t *testing.T) {
	s := New("She eats eggs in the morning.")
	if s.Elapsed(t0) != 0 {
		t.Fatalf("expected zero elapsed for idle session")
	}
	s = s.TextChanged("S", t0)
	if got := s.Elapsed(t0.Add(42 * time.Second)); got != 42*time.Second {
		t.Fatalf("expected 42s, got %v", got)
	}
	s = s.Submit(t0.Add(50 * time.Second))
	if got := s.Elapsed(t0.Add(time.Hour)); got != 50*time.Second {
		t.Fatalf("expected 50s after submit, got %v", got)
	}
}
