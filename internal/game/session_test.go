package game

import (
	"strings"
	"testing"

	"github.com/0xlemi/staffdrill/internal/sequence"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(sequence.New(42))
	if got := len(s.Queue()); got != QueueLen {
		t.Fatalf("new session queue length = %d, want %d", got, QueueLen)
	}
	return s
}

// expireAll delivers every timer from a result immediately
func expireAll(s *Session, res Result) {
	for _, tm := range res.Timers {
		s.Expire(tm)
	}
}

func wrongLetter(n sequence.Note) string {
	if n.Letter == "C" {
		return "D"
	}
	return "C"
}

func TestCorrectAnswerAdvancesQueue(t *testing.T) {
	s := newTestSession(t)
	before := s.Queue()

	res := s.Submit(before[0].Letter)
	if !res.Accepted {
		t.Fatal("correct submission not accepted")
	}
	if res.Tone != before[0].Letter {
		t.Errorf("tone = %q, want %q", res.Tone, before[0].Letter)
	}
	if s.Feedback() != FeedbackCorrect {
		t.Errorf("feedback = %v, want correct", s.Feedback())
	}
	if !s.Shifting() {
		t.Error("lock not held during advance window")
	}
	if len(res.Timers) != 1 || res.Timers[0].Kind != TimerAdvance {
		t.Fatalf("timers = %+v, want one advance timer", res.Timers)
	}
	if res.Timers[0].Delay != AdvanceDelay {
		t.Errorf("advance delay = %v, want %v", res.Timers[0].Delay, AdvanceDelay)
	}

	// Queue unchanged until the timer fires.
	mid := s.Queue()
	if mid[0].ID != before[0].ID {
		t.Fatal("queue advanced before timer expiry")
	}

	expireAll(s, res)
	after := s.Queue()
	if len(after) != QueueLen {
		t.Fatalf("queue length after advance = %d, want %d", len(after), QueueLen)
	}
	if after[0].ID != before[1].ID || after[1].ID != before[2].ID {
		t.Error("queue did not shift forward by one")
	}
	if after[2].ID == before[2].ID {
		t.Error("no new note appeared at the tail")
	}
	if s.LastSpawnedID() != after[2].ID {
		t.Errorf("LastSpawnedID = %d, want %d", s.LastSpawnedID(), after[2].ID)
	}
	if s.Feedback() != FeedbackIdle {
		t.Errorf("feedback after advance = %v, want idle", s.Feedback())
	}
	if s.Shifting() {
		t.Error("lock still held after advance")
	}
}

func TestSubmissionDroppedWhileShifting(t *testing.T) {
	s := newTestSession(t)
	q := s.Queue()
	res := s.Submit(q[0].Letter)

	// A second answer during the advance window must change nothing.
	dropped := s.Submit(q[1].Letter)
	if dropped.Accepted || dropped.Tone != "" || len(dropped.Timers) != 0 {
		t.Fatalf("locked submission had effects: %+v", dropped)
	}
	if s.LastPressed() != q[0].Letter {
		t.Error("locked submission recorded as last pressed")
	}
	if _, attempts := s.Score(); attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}

	expireAll(s, res)
	if len(s.Queue()) != QueueLen {
		t.Errorf("queue length = %d, want %d", len(s.Queue()), QueueLen)
	}
}

func TestWrongAnswerShowsHintAndKeepsNote(t *testing.T) {
	s := newTestSession(t)
	q := s.Queue()
	wrong := wrongLetter(q[0])

	res := s.Submit(wrong)
	if !res.Accepted || res.Tone != wrong {
		t.Fatalf("wrong submission result = %+v", res)
	}
	if s.Feedback() != FeedbackWrong {
		t.Errorf("feedback = %v, want wrong", s.Feedback())
	}
	if s.Hint() != q[0].Letter {
		t.Errorf("hint = %q, want %q", s.Hint(), q[0].Letter)
	}
	if s.Shifting() {
		t.Error("wrong answer must not lock input")
	}
	if len(res.Timers) != 2 {
		t.Fatalf("got %d timers, want 2", len(res.Timers))
	}

	var flash, hint Timer
	for _, tm := range res.Timers {
		switch tm.Kind {
		case TimerFlashClear:
			flash = tm
		case TimerHintClear:
			hint = tm
		}
	}
	if flash.Delay != FlashClearDelay || hint.Delay != HintClearDelay {
		t.Errorf("delays = %v/%v, want %v/%v", flash.Delay, hint.Delay, FlashClearDelay, HintClearDelay)
	}

	// The flash clears first, the hint lingers.
	s.Expire(flash)
	if s.Feedback() != FeedbackIdle {
		t.Errorf("feedback after flash clear = %v, want idle", s.Feedback())
	}
	if s.Hint() != q[0].Letter {
		t.Error("hint cleared too early")
	}
	s.Expire(hint)
	if s.Hint() != "" {
		t.Errorf("hint after clear = %q, want empty", s.Hint())
	}

	// Same note still up for answering.
	if cur, _ := s.Current(); cur.ID != q[0].ID {
		t.Error("wrong answer mutated the queue")
	}
}

func TestRepeatedWrongAnswersRearmTimers(t *testing.T) {
	s := newTestSession(t)
	q := s.Queue()
	wrong := wrongLetter(q[0])

	first := s.Submit(wrong)
	second := s.Submit(wrong)

	// The first submission's timers were replaced and must be inert.
	expireAll(s, first)
	if s.Feedback() != FeedbackWrong {
		t.Errorf("stale flash timer cleared feedback: %v", s.Feedback())
	}
	if s.Hint() != q[0].Letter {
		t.Error("stale hint timer cleared hint")
	}

	expireAll(s, second)
	if s.Feedback() != FeedbackIdle || s.Hint() != "" {
		t.Errorf("live timers did not clear state: feedback=%v hint=%q", s.Feedback(), s.Hint())
	}
}

func TestCorrectAfterWrongCancelsWrongTimers(t *testing.T) {
	s := newTestSession(t)
	q := s.Queue()

	wrongRes := s.Submit(wrongLetter(q[0]))
	correctRes := s.Submit(q[0].Letter)

	if s.Hint() != "" {
		t.Error("correct answer did not clear hint")
	}

	// The wrong-answer timers may still fire afterwards; they must not
	// disturb the correct-advance window.
	expireAll(s, wrongRes)
	if s.Feedback() != FeedbackCorrect {
		t.Errorf("feedback = %v, want correct", s.Feedback())
	}
	if !s.Shifting() {
		t.Error("lock lost to a stale timer")
	}

	expireAll(s, correctRes)
	if s.Feedback() != FeedbackIdle || s.Shifting() {
		t.Error("advance did not complete")
	}
}

func TestSubmitCaseInsensitive(t *testing.T) {
	s := newTestSession(t)
	q := s.Queue()

	res := s.Submit(strings.ToLower(q[0].Letter))
	if s.Feedback() != FeedbackCorrect {
		t.Errorf("lowercase submission: feedback = %v, want correct", s.Feedback())
	}
	expireAll(s, res)
}

func TestCloseCancelsTimers(t *testing.T) {
	s := newTestSession(t)
	q := s.Queue()
	res := s.Submit(q[0].Letter)

	s.Close()
	expireAll(s, res)
	if cur, _ := s.Current(); cur.ID != q[0].ID {
		t.Error("timer mutated a closed session")
	}
}

func TestScoreTally(t *testing.T) {
	s := newTestSession(t)
	q := s.Queue()

	res := s.Submit(wrongLetter(q[0]))
	expireAll(s, res)
	res = s.Submit(q[0].Letter)
	expireAll(s, res)

	correct, attempts := s.Score()
	if correct != 1 || attempts != 2 {
		t.Errorf("score = %d/%d, want 1/2", correct, attempts)
	}
}
