package tone

import "math"

// Player defines the interface for sounding answer tones
type Player interface {
	// Play sounds a short tone for a natural letter. It never blocks
	// and never fails; letters it does not know are ignored.
	Play(letter string)

	// SetMuted silences or restores playback without releasing the
	// audio device
	SetMuted(muted bool)

	// Muted reports whether playback is silenced
	Muted() bool

	// Close releases the audio device
	Close() error
}

// Synthesis settings
const (
	sampleRate = 44100

	// Percussive envelope: a fast linear attack, an exponential decay
	// to near-silence, then a hard stop.
	attackTime = 5 * msec
	decayTime  = 200 * msec
	totalTime  = 250 * msec

	peakGain = 0.5

	// Fraction of peak remaining at the end of the decay
	decayFloor = 0.001

	msec = sampleRate / 1000 // samples per millisecond
)

// Reference pitch numbers for the seven natural letters, fourth octave
// (middle C = 60, A4 = 69)
var letterPitch = map[string]int{
	"C": 60,
	"D": 62,
	"E": 64,
	"F": 65,
	"G": 67,
	"A": 69,
	"B": 71,
}

// Frequency returns the equal-temperament frequency of a letter's
// reference pitch, tuned to A4 = 440 Hz. Unknown letters return 0.
func Frequency(letter string) float64 {
	pitch, ok := letterPitch[letter]
	if !ok {
		return 0
	}
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

// RenderTone synthesizes the PCM samples of one percussive tone at the
// given frequency. The result is mono float32 at 44100 Hz.
func RenderTone(freq float64) []float32 {
	samples := make([]float32, totalTime)
	decayRate := math.Log(decayFloor) / float64(decayTime-attackTime)

	for i := range samples {
		var gain float64
		if i < attackTime {
			gain = peakGain * float64(i) / float64(attackTime)
		} else {
			gain = peakGain * math.Exp(decayRate*float64(i-attackTime))
		}
		phase := 2 * math.Pi * freq * float64(i) / sampleRate
		samples[i] = float32(gain * math.Sin(phase))
	}
	return samples
}

// NopPlayer discards every tone. It stands in for the real synthesizer
// when sound is disabled or no output device exists.
type NopPlayer struct{}

func (NopPlayer) Play(string)   {}
func (NopPlayer) SetMuted(bool) {}
func (NopPlayer) Muted() bool   { return true }
func (NopPlayer) Close() error  { return nil }
