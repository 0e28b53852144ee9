package recognizer

import (
	"github.com/jsphweid/chordsmith/chroma"
	"github.com/jsphweid/chordsmith/pitch"
)

// NoChord is the sentinel label for spans with no harmonic content.
const NoChord = "N"

// Recognizer turns a prepared waveform into a collapsed chord timeline.
// Implementations must be safe for concurrent use.
type Recognizer interface {
	Recognize(samples []float64, sampleRate int) ([]string, error)
}

// Bank holds the 24-template triad vocabulary. Label order doubles as
// the classifier tie-break order: per pitch class, major then minor,
// C first.
type Bank struct {
	labels    []string
	templates [][]float64
}

// NewBank builds major {i, i+4, i+7} and minor {i, i+3, i+7} templates
// for all 12 pitch classes under their canonical sharp names. The bank
// is immutable after construction.
func NewBank() *Bank {
	var b Bank
	for i := 0; i < chroma.NumBins; i++ {
		major := make([]float64, chroma.NumBins)
		major[i] = 1
		major[(i+4)%chroma.NumBins] = 1
		major[(i+7)%chroma.NumBins] = 1
		b.add(pitch.Names[i], major)

		minor := make([]float64, chroma.NumBins)
		minor[i] = 1
		minor[(i+3)%chroma.NumBins] = 1
		minor[(i+7)%chroma.NumBins] = 1
		b.add(pitch.Names[i]+"m", minor)
	}
	return &b
}

func (b *Bank) add(label string, template []float64) {
	b.labels = append(b.labels, label)
	b.templates = append(b.templates, template)
}

// Labels returns the vocabulary in tie-break order.
func (b *Bank) Labels() []string {
	return b.labels
}

// Template returns the activation vector for a label, or nil.
func (b *Bank) Template(label string) []float64 {
	for i, l := range b.labels {
		if l == label {
			return b.templates[i]
		}
	}
	return nil
}

// Best returns the label whose template has the highest dot product
// with the chroma vector. First entry wins ties, so an all-zero vector
// yields "C".
func (b *Bank) Best(vec []float64) string {
	best := 0
	bestScore := dot(vec, b.templates[0])
	for i := 1; i < len(b.templates); i++ {
		if score := dot(vec, b.templates[i]); score > bestScore {
			best, bestScore = i, score
		}
	}
	return b.labels[best]
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Classify assigns one chord label per fixed-duration segment of the
// chroma matrix. A matrix shorter than one segment still yields exactly
// one label; an empty matrix yields a single no-chord label.
func Classify(m chroma.Matrix, frameDuration float64, sampleRate, hopLength int, bank *Bank) []string {
	framesPerSegment := int(frameDuration * float64(sampleRate) / float64(hopLength))
	if framesPerSegment < 1 {
		framesPerSegment = 1
	}

	total := m.Frames()
	if total == 0 {
		return []string{NoChord}
	}

	numSegments := total / framesPerSegment
	if numSegments == 0 {
		return []string{bank.Best(m.Mean(0, total))}
	}

	labels := make([]string, 0, numSegments)
	for i := 0; i < numSegments; i++ {
		labels = append(labels, bank.Best(m.Mean(i*framesPerSegment, (i+1)*framesPerSegment)))
	}
	return labels
}

// Collapse merges runs of consecutive identical labels, keeping the
// first element of each run. Pure and idempotent.
func Collapse(labels []string) []string {
	var out []string
	for i, label := range labels {
		if i == 0 || label != labels[i-1] {
			out = append(out, label)
		}
	}
	return out
}

// TemplateMatchRecognizer is the always-available recognizer: chroma
// extraction followed by per-segment template matching.
type TemplateMatchRecognizer struct {
	bank          *Bank
	hopLength     int
	windowSize    int
	frameDuration float64
}

func NewTemplateMatch(hopLength, windowSize int, frameDuration float64) *TemplateMatchRecognizer {
	return &TemplateMatchRecognizer{
		bank:          NewBank(),
		hopLength:     hopLength,
		windowSize:    windowSize,
		frameDuration: frameDuration,
	}
}

func (r *TemplateMatchRecognizer) Recognize(samples []float64, sampleRate int) ([]string, error) {
	m := chroma.Extract(samples, sampleRate, r.hopLength, r.windowSize)
	return Collapse(Classify(m, r.frameDuration, sampleRate, r.hopLength, r.bank)), nil
}
