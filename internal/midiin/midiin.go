package midiin

import (
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// ErrNoInputs is returned when no MIDI input port is available
var ErrNoInputs = errors.New("no MIDI input ports found")

// Key classes within an octave for the seven natural letters. Black
// keys have no letter answer and are ignored.
var pitchClassLetter = map[uint8]string{
	0:  "C",
	2:  "D",
	4:  "E",
	5:  "F",
	7:  "G",
	9:  "A",
	11: "B",
}

// LetterForKey maps a MIDI key number to its natural letter name. The
// second return is false for accidentals.
func LetterForKey(key uint8) (string, bool) {
	letter, ok := pitchClassLetter[key%12]
	return letter, ok
}

// Listener feeds natural-note presses from a MIDI keyboard into the
// drill. Octave is discarded: any C on the keyboard answers "C".
type Listener struct {
	drv  *rtmididrv.Driver
	in   drivers.In
	stop func()
}

// Open connects to the first available MIDI input port and invokes
// onLetter for every natural-note NoteOn until Close is called.
func Open(onLetter func(letter string)) (*Listener, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	if len(ins) == 0 {
		drv.Close()
		return nil, ErrNoInputs
	}

	in := ins[0]
	if err := in.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("open %q: %w", in.String(), err)
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		var ch, key, vel uint8
		if !msg.GetNoteStart(&ch, &key, &vel) {
			return
		}
		if letter, ok := LetterForKey(key); ok {
			onLetter(letter)
		}
	})
	if err != nil {
		in.Close()
		drv.Close()
		return nil, fmt.Errorf("listen %q: %w", in.String(), err)
	}

	return &Listener{drv: drv, in: in, stop: stop}, nil
}

// Name returns the connected port name
func (l *Listener) Name() string {
	return l.in.String()
}

// Close stops listening and releases the MIDI driver
func (l *Listener) Close() {
	if l.stop != nil {
		l.stop()
	}
	l.in.Close()
	l.drv.Close()
}
