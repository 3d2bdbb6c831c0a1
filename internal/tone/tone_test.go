package tone

import (
	"math"
	"testing"
)

func TestFrequency(t *testing.T) {
	tests := []struct {
		letter string
		want   float64
	}{
		{"A", 440.0},
		{"C", 261.63},
		{"D", 293.66},
		{"E", 329.63},
		{"F", 349.23},
		{"G", 392.00},
		{"B", 493.88},
	}
	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			got := Frequency(tt.letter)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Frequency(%q) = %.2f, want %.2f", tt.letter, got, tt.want)
			}
		})
	}
}

func TestFrequencyUnknownLetter(t *testing.T) {
	for _, letter := range []string{"", "H", "c#", "x"} {
		if got := Frequency(letter); got != 0 {
			t.Errorf("Frequency(%q) = %f, want 0", letter, got)
		}
	}
}

func peakIn(samples []float32, from, to int) float64 {
	peak := 0.0
	for _, v := range samples[from:to] {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}

func TestRenderToneEnvelope(t *testing.T) {
	pcm := RenderTone(440)

	if len(pcm) != totalTime {
		t.Fatalf("tone length = %d samples, want %d", len(pcm), totalTime)
	}

	// Near-silent start.
	if a := math.Abs(float64(pcm[0])); a > 0.01 {
		t.Errorf("first sample amplitude %.4f, want near zero", a)
	}

	// The attack reaches moderate volume within ~5ms.
	attackPeak := peakIn(pcm, 0, 2*attackTime)
	if attackPeak < peakGain*0.8 {
		t.Errorf("attack peak %.3f, want near %.3f", attackPeak, peakGain)
	}

	// Decayed to near-silence by ~200ms.
	tailPeak := peakIn(pcm, decayTime, totalTime)
	if tailPeak > peakGain*0.01 {
		t.Errorf("tail peak %.5f, not near-silent", tailPeak)
	}

	// Envelope is monotonically fading past the attack, comparing
	// window peaks to ride over individual cycles.
	window := 10 * msec
	prev := math.Inf(1)
	for i := attackTime; i+window <= len(pcm); i += window {
		p := peakIn(pcm, i, i+window)
		if p > prev*1.05 {
			t.Fatalf("envelope rose during decay near sample %d: %.4f > %.4f", i, p, prev)
		}
		prev = p
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = NopPlayer{}
	p.Play("A")
	p.SetMuted(false)
	if !p.Muted() {
		t.Error("NopPlayer reports unmuted")
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
