package midiin

import "testing"

func TestLetterForKey(t *testing.T) {
	tests := []struct {
		key    uint8
		letter string
		ok     bool
	}{
		{60, "C", true}, // middle C
		{62, "D", true},
		{64, "E", true},
		{65, "F", true},
		{67, "G", true},
		{69, "A", true}, // A4
		{71, "B", true},
		{72, "C", true}, // octave above answers the same letter
		{48, "C", true}, // octave below too
		{61, "", false}, // C#
		{66, "", false}, // F#
		{70, "", false}, // A#
	}
	for _, tt := range tests {
		letter, ok := LetterForKey(tt.key)
		if ok != tt.ok || letter != tt.letter {
			t.Errorf("LetterForKey(%d) = %q, %v; want %q, %v", tt.key, letter, ok, tt.letter, tt.ok)
		}
	}
}
