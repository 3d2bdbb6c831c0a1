package game

import (
	"strings"
	"time"

	"github.com/0xlemi/staffdrill/internal/sequence"
)

// Feedback is the transient correctness state of the latest answer
type Feedback int

const (
	FeedbackIdle Feedback = iota
	FeedbackCorrect
	FeedbackWrong
)

// QueueLen is the size of the lookahead queue: the current question and
// two preview notes
const QueueLen = 3

// Delays for the scheduled transitions. The wrong-answer flash clears
// before the hint does, so the hint lingers after the red flash fades.
const (
	AdvanceDelay    = 420 * time.Millisecond
	HintClearDelay  = 500 * time.Millisecond
	FlashClearDelay = 200 * time.Millisecond
)

// TimerKind distinguishes the three one-shot timers a submission can arm
type TimerKind int

const (
	TimerAdvance TimerKind = iota
	TimerHintClear
	TimerFlashClear
)

// Timer is a request to deliver an expiry after Delay. Gen is the
// generation the timer was armed with; a session re-arming a timer bumps
// the generation, so late deliveries of the replaced timer are inert.
type Timer struct {
	Kind  TimerKind
	Gen   int
	Delay time.Duration
}

// Result reports what a submission did. Tone is the letter to sound, or
// empty when the submission was ignored.
type Result struct {
	Accepted bool
	Tone     string
	Timers   []Timer
}

// Session is the state of one endless drill run: the 3-note queue, the
// transient feedback, the input lock held during a correct-answer
// advance, and the generation counters backing timer cancellation. It is
// mutated only by Submit and the expiry methods.
type Session struct {
	seq *sequence.Sequencer

	queue         []sequence.Note
	feedback      Feedback
	shifting      bool
	hint          string
	lastPressed   string
	lastSpawnedID int

	correct  int
	attempts int

	advanceGen int
	hintGen    int
	flashGen   int
}

// NewSession creates a running session with a freshly generated queue
func NewSession(seq *sequence.Sequencer) *Session {
	s := &Session{seq: seq}
	var prev *sequence.Note
	for i := 0; i < QueueLen; i++ {
		n := seq.Next(prev)
		s.queue = append(s.queue, n)
		prev = &s.queue[i]
	}
	s.lastSpawnedID = s.queue[QueueLen-1].ID
	return s
}

// Submit records an answer for the current note. While the lock from a
// previous correct answer is held, or before the queue exists, the
// submission is dropped without any effect.
func (s *Session) Submit(letter string) Result {
	if s.shifting || len(s.queue) == 0 {
		return Result{}
	}

	letter = strings.ToUpper(letter)
	s.lastPressed = letter
	s.attempts++

	res := Result{Accepted: true, Tone: letter}

	if letter == s.queue[0].Letter {
		s.correct++
		s.feedback = FeedbackCorrect
		s.hint = ""
		s.shifting = true
		// Invalidate any pending wrong-answer timers so they cannot
		// clobber the correct state mid-advance.
		s.hintGen++
		s.flashGen++
		s.advanceGen++
		res.Timers = append(res.Timers, Timer{TimerAdvance, s.advanceGen, AdvanceDelay})
		return res
	}

	s.feedback = FeedbackWrong
	s.hint = s.queue[0].Letter
	s.hintGen++
	s.flashGen++
	res.Timers = append(res.Timers,
		Timer{TimerHintClear, s.hintGen, HintClearDelay},
		Timer{TimerFlashClear, s.flashGen, FlashClearDelay},
	)
	return res
}

// Expire delivers a timer expiry. Timers carrying a stale generation
// were cancelled by a later submission and do nothing.
func (s *Session) Expire(t Timer) {
	switch t.Kind {
	case TimerAdvance:
		if t.Gen != s.advanceGen {
			return
		}
		s.advance()
	case TimerHintClear:
		if t.Gen != s.hintGen {
			return
		}
		s.hint = ""
	case TimerFlashClear:
		if t.Gen != s.flashGen {
			return
		}
		if s.feedback == FeedbackWrong {
			s.feedback = FeedbackIdle
		}
	}
}

// advance pops the answered note and refills the queue tail. The new
// note avoids repeating the last queued note, so the preview never shows
// the same position twice in a row.
func (s *Session) advance() {
	var seed *sequence.Note
	if n := len(s.queue); n > 0 {
		seed = &s.queue[n-1]
	}
	next := s.seq.Next(seed)

	s.queue = append(s.queue[1:], next)
	s.lastSpawnedID = next.ID
	s.feedback = FeedbackIdle
	s.shifting = false
}

// Close cancels every outstanding timer so late deliveries cannot
// mutate a torn-down session
func (s *Session) Close() {
	s.advanceGen++
	s.hintGen++
	s.flashGen++
}

// Queue returns a copy of the lookahead queue; index 0 is the current
// question
func (s *Session) Queue() []sequence.Note {
	q := make([]sequence.Note, len(s.queue))
	copy(q, s.queue)
	return q
}

// Current returns the note the user must answer, if the queue exists
func (s *Session) Current() (sequence.Note, bool) {
	if len(s.queue) == 0 {
		return sequence.Note{}, false
	}
	return s.queue[0], true
}

// Feedback returns the transient correctness state
func (s *Session) Feedback() Feedback { return s.feedback }

// Shifting reports whether the post-correct input lock is held
func (s *Session) Shifting() bool { return s.shifting }

// Hint returns the true letter shown after a wrong answer, or empty
func (s *Session) Hint() string { return s.hint }

// LastPressed returns the most recently submitted letter
func (s *Session) LastPressed() string { return s.lastPressed }

// LastSpawnedID identifies the newest note to enter the queue, for
// render-layer animation
func (s *Session) LastSpawnedID() int { return s.lastSpawnedID }

// Score returns the session tally
func (s *Session) Score() (correct, attempts int) {
	return s.correct, s.attempts
}
