package tone

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 512

// Synth plays answer tones through the default output device using
// PortAudio. The device is acquired lazily on the first Play and shared
// across all tones; if it cannot be acquired the synth permanently
// degrades to a silent no-op.
type Synth struct {
	mu       sync.Mutex
	stream   *portaudio.Stream
	started  bool
	disabled bool
	muted    bool

	// active is the tone currently feeding the output callback; pos is
	// the next sample to emit
	active []float32
	pos    int

	// rendered tones, one per letter
	cache map[string][]float32
}

// NewSynth creates a tone synthesizer. No audio resources are acquired
// until the first Play.
func NewSynth() *Synth {
	return &Synth{cache: make(map[string][]float32)}
}

// Play sounds the tone for a letter, replacing any tone still sounding.
// Missing audio capability is not an error: the call silently does
// nothing.
func (s *Synth) Play(letter string) {
	freq := Frequency(letter)
	if freq == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled || s.muted {
		return
	}
	if err := s.ensureStream(); err != nil {
		s.disabled = true
		return
	}

	pcm, ok := s.cache[letter]
	if !ok {
		pcm = RenderTone(freq)
		s.cache[letter] = pcm
	}
	s.active = pcm
	s.pos = 0
}

// ensureStream lazily initializes PortAudio and opens the shared output
// stream, restarting it if the host stopped it. Caller holds s.mu.
func (s *Synth) ensureStream() error {
	if s.stream == nil {
		if err := portaudio.Initialize(); err != nil {
			return err
		}
		stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, framesPerBuffer, s.fillOutput)
		if err != nil {
			portaudio.Terminate()
			return err
		}
		s.stream = stream
	}
	if !s.started {
		if err := s.stream.Start(); err != nil {
			return err
		}
		s.started = true
	}
	return nil
}

// fillOutput is the PortAudio output callback. It streams the active
// tone and pads with silence once it runs out.
func (s *Synth) fillOutput(out []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	if s.pos < len(s.active) {
		n = copy(out, s.active[s.pos:])
		s.pos += n
	}
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// SetMuted silences or restores playback. Muting also cuts off a tone
// already sounding.
func (s *Synth) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	if muted {
		s.active = nil
		s.pos = 0
	}
}

// Muted reports whether playback is silenced
func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Close stops the shared stream and releases PortAudio. The stream is
// stopped outside the mutex: Stop waits for the output callback, which
// takes the same lock.
func (s *Synth) Close() error {
	s.mu.Lock()
	stream := s.stream
	started := s.started
	s.stream = nil
	s.started = false
	s.active = nil
	s.mu.Unlock()

	if stream == nil {
		return nil
	}
	if started {
		if err := stream.Stop(); err != nil {
			return err
		}
	}
	if err := stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
