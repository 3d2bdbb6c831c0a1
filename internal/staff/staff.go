package staff

// Clef identifies which staff a note sits on
type Clef int

const (
	Treble Clef = iota
	Bass
)

// String returns the clef name
func (c Clef) String() string {
	if c == Bass {
		return "bass"
	}
	return "treble"
}

// Layout constants for the rendered staff. Staff lines sit on even steps
// (+4, +2, 0, -2, -4), spaces on odd steps. One step is one half-line.
const (
	// HalfLineSpacing is the vertical distance of a single step in cells
	HalfLineSpacing = 1

	// AnchorY is the row of the middle staff line (step 0)
	AnchorY = 8

	// TopLineStep and BottomLineStep bound the visible 5-line staff
	TopLineStep    = 4
	BottomLineStep = -4
)

// The seven natural letters in ascending cyclic order
var letters = []string{"C", "D", "E", "F", "G", "A", "B"}

// Anchor letter of the middle staff line for each clef.
// Treble middle line is B4, bass middle line is D3.
var anchorIndex = map[Clef]int{
	Treble: 6, // B
	Bass:   1, // D
}

// LetterForStep returns the natural letter name of a staff position.
// Steps count in half-line increments from the middle staff line, so
// each step up or down moves one diatonic letter.
func LetterForStep(clef Clef, step int) string {
	idx := mod(anchorIndex[clef]+step, len(letters))
	return letters[idx]
}

// PixelY returns the vertical cell position of a staff step. Rows grow
// downward, so higher steps map to smaller values.
func PixelY(clef Clef, step int) int {
	return AnchorY - step*HalfLineSpacing
}

// LedgerLines returns the vertical positions of the short lines needed
// for a note outside the 5-line staff, ordered from the staff outward.
// Notes within the staff need none. Lines fall every second step from
// the first position past the staff through the note itself, on the
// side of the excursion.
func LedgerLines(clef Clef, step int) []int {
	var ys []int
	switch {
	case step > TopLineStep:
		for s := TopLineStep + 1; s <= step; s += 2 {
			ys = append(ys, PixelY(clef, s))
		}
	case step < BottomLineStep:
		for s := BottomLineStep - 1; s >= step; s -= 2 {
			ys = append(ys, PixelY(clef, s))
		}
	}
	return ys
}

// mod is a true modulo that stays non-negative for negative inputs,
// unlike the % operator
func mod(n, m int) int {
	return ((n % m) + m) % m
}
