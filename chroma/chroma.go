package chroma

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	// NumBins is the number of pitch classes, C=0 through B=11.
	NumBins = 12

	// Spectral band folded into the chroma bins. Below ~80 Hz the FFT
	// bins are too coarse to separate semitones; above 8 kHz there is
	// little harmonic content left.
	minFreq = 80.0
	maxFreq = 8000.0

	tuningFreq = 440.0
)

// Matrix is a NumBins x T pitch-class energy matrix, indexed
// [pitchClass][frame].
type Matrix [][]float64

func (m Matrix) Frames() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Mean reduces the frame range [from, to) to a single 12-d vector.
func (m Matrix) Mean(from, to int) []float64 {
	vec := make([]float64, len(m))
	if to <= from {
		return vec
	}
	for pc := range m {
		var sum float64
		for t := from; t < to; t++ {
			sum += m[pc][t]
		}
		vec[pc] = sum / float64(to-from)
	}
	return vec
}

// Extract computes a Hann-windowed STFT of the waveform and folds the
// energy of every bin between 80 Hz and 8 kHz into the bin's pitch
// class, one column per analysis frame. Frames of a silent signal stay
// all-zero; no input raises. Waveforms shorter than one window still
// produce a single zero-padded frame, so Frames() >= 1 whenever samples
// exist.
func Extract(samples []float64, sampleRate, hopLength, windowSize int) Matrix {
	m := make(Matrix, NumBins)
	if len(samples) == 0 {
		return m
	}

	mapping := binMapping(windowSize, sampleRate)
	win := window.Hann(windowSize)

	var cols [][]float64
	for start := 0; start+windowSize <= len(samples); start += hopLength {
		cols = append(cols, frameEnergy(samples[start:start+windowSize], win, mapping))
	}
	if len(cols) == 0 {
		padded := make([]float64, windowSize)
		copy(padded, samples)
		cols = append(cols, frameEnergy(padded, win, mapping))
	}

	for pc := range m {
		m[pc] = make([]float64, len(cols))
		for t, col := range cols {
			m[pc][t] = col[pc]
		}
	}
	return m
}

// frameEnergy windows one frame, transforms it and folds the spectrum
// into pitch-class energy, normalized to unit sum unless silent.
func frameEnergy(frame, win []float64, mapping []int) []float64 {
	windowed := make([]float64, len(frame))
	for i := range frame {
		windowed[i] = frame[i] * win[i]
	}
	spectrum := fft.FFTReal(windowed)

	bins := make([]float64, NumBins)
	for k := 1; k <= len(frame)/2; k++ {
		pc := mapping[k]
		if pc < 0 {
			continue
		}
		mag := cmplx.Abs(spectrum[k])
		bins[pc] += mag * mag
	}

	var total float64
	for _, e := range bins {
		total += e
	}
	if total > 1e-10 {
		for i := range bins {
			bins[i] /= total
		}
	}
	return bins
}

// binMapping assigns each FFT bin index up to Nyquist a pitch class, or
// -1 outside the folded band. MIDI note = 69 + 12*log2(f/440).
func binMapping(windowSize, sampleRate int) []int {
	mapping := make([]int, windowSize/2+1)
	for k := range mapping {
		freq := float64(k) * float64(sampleRate) / float64(windowSize)
		if freq < minFreq || freq > maxFreq {
			mapping[k] = -1
			continue
		}
		midiNote := 69.0 + 12.0*math.Log2(freq/tuningFreq)
		mapping[k] = ((int(math.Round(midiNote)) % NumBins) + NumBins) % NumBins
	}
	return mapping
}
