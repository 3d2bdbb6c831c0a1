package sequence

import (
	"math/rand"
	"time"

	"github.com/0xlemi/staffdrill/internal/staff"
)

const (
	// Generated steps stay within the visible staff
	minStep = -4
	maxStep = 4

	// How many times to re-draw before accepting a repeat of the
	// previous note
	maxRetries = 6
)

// Note is a single drill question: a position on one of the two staves.
// Letter is always derived from (Clef, Step); ID is unique per generated
// note so the render layer can tell a fresh instance from a repeated
// position.
type Note struct {
	ID     int
	Clef   staff.Clef
	Step   int
	Letter string
}

// SamePosition reports whether two notes occupy the same staff position
func (n Note) SamePosition(o Note) bool {
	return n.Clef == o.Clef && n.Step == o.Step
}

// Sequencer generates random drill notes. It owns the ID counter and
// the random source, so two sequencers never share state.
type Sequencer struct {
	rng    *rand.Rand
	nextID int
}

// New creates a sequencer seeded from the given value. A zero seed uses
// the current time.
func New(seed int64) *Sequencer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sequencer{rng: rand.New(rand.NewSource(seed)), nextID: 1}
}

// Next generates a new note. If prev is non-nil the sequencer re-draws
// up to 6 times to avoid landing on prev's exact staff position; if
// every attempt collides the last candidate is accepted anyway, so Next
// always returns and may very occasionally repeat.
func (s *Sequencer) Next(prev *Note) Note {
	var clef staff.Clef
	var step int
	for i := 0; i < maxRetries; i++ {
		clef = staff.Treble
		if s.rng.Intn(2) == 1 {
			clef = staff.Bass
		}
		step = minStep + s.rng.Intn(maxStep-minStep+1)
		if prev == nil || prev.Clef != clef || prev.Step != step {
			break
		}
	}

	n := Note{
		ID:     s.nextID,
		Clef:   clef,
		Step:   step,
		Letter: staff.LetterForStep(clef, step),
	}
	s.nextID++
	return n
}
