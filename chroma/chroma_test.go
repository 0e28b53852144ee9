package chroma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testRate   = 22050
	testHop    = 512
	testWindow = 2048
)

func sine(freq float64, seconds float64) []float64 {
	n := int(seconds * testRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / testRate)
	}
	return out
}

func TestExtractConcentratesEnergyAtThePitchClass(t *testing.T) {
	// A4 = 440 Hz = pitch class 9
	m := Extract(sine(440, 1.0), testRate, testHop, testWindow)

	assert := assert.New(t)
	assert.True(m.Frames() > 0)

	totals := m.Mean(0, m.Frames())
	best := 0
	for pc := range totals {
		if totals[pc] > totals[best] {
			best = pc
		}
	}
	assert.Equal(9, best)
}

func TestExtractEmptySignal(t *testing.T) {
	m := Extract(nil, testRate, testHop, testWindow)
	assert.Equal(t, 0, m.Frames())
}

func TestExtractSilentSignalStaysZeroWithoutError(t *testing.T) {
	m := Extract(make([]float64, testRate), testRate, testHop, testWindow)

	assert := assert.New(t)
	assert.True(m.Frames() > 0)
	for pc := range m {
		for frame := range m[pc] {
			assert.Zero(m[pc][frame])
		}
	}
}

func TestExtractShorterThanOneWindowStillYieldsAFrame(t *testing.T) {
	m := Extract(sine(440, 0.01), testRate, testHop, testWindow)
	assert.Equal(t, 1, m.Frames())
}

func TestMean(t *testing.T) {
	m := make(Matrix, NumBins)
	for pc := range m {
		m[pc] = []float64{1, 3, 5}
	}
	vec := m.Mean(0, 2)

	assert := assert.New(t)
	assert.Len(vec, NumBins)
	assert.Equal(2.0, vec[0])
	assert.Equal(2.0, vec[11])
}

func TestFrameCountTracksHopLength(t *testing.T) {
	samples := sine(440, 2.0)
	m := Extract(samples, testRate, testHop, testWindow)
	want := (len(samples)-testWindow)/testHop + 1
	assert.Equal(t, want, m.Frames())
}
