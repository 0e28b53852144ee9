package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/chordsmith/chroma"
	"github.com/jsphweid/chordsmith/constants"
)

// matrixOf builds a 12 x frames matrix repeating the given column.
func matrixOf(column []float64, frames int) chroma.Matrix {
	m := make(chroma.Matrix, chroma.NumBins)
	for pc := range m {
		m[pc] = make([]float64, frames)
		for t := 0; t < frames; t++ {
			m[pc][t] = column[pc]
		}
	}
	return m
}

func framesPerSegment() int {
	frameDuration := float64(constants.FrameDurationS)
	return int(frameDuration * float64(constants.AnalysisSampleRate) / float64(constants.HopLength))
}

func TestEveryTemplateHasExactlyThreeActivations(t *testing.T) {
	bank := NewBank()
	assert := assert.New(t)
	assert.Len(bank.Labels(), 24)
	for _, label := range bank.Labels() {
		template := bank.Template(label)
		var sum float64
		for _, v := range template {
			assert.Contains([]float64{0, 1}, v, label)
			sum += v
		}
		assert.Equal(3.0, sum, label)
	}
}

func TestVocabularyOrderInterleavesMajorAndMinor(t *testing.T) {
	bank := NewBank()
	assert.Equal(t, []string{"C", "Cm", "C#", "C#m", "D", "Dm"}, bank.Labels()[:6])
}

func TestAllZeroVectorWinsFirstVocabularyEntry(t *testing.T) {
	bank := NewBank()
	assert.Equal(t, "C", bank.Best(make([]float64, chroma.NumBins)))
}

func TestBestMatchesOwnTemplate(t *testing.T) {
	bank := NewBank()
	assert := assert.New(t)
	for _, label := range []string{"C", "Am", "F#", "G#m"} {
		assert.Equal(label, bank.Best(bank.Template(label)), label)
	}
}

func TestClassifyEmptyMatrixYieldsNoChord(t *testing.T) {
	bank := NewBank()
	labels := Classify(make(chroma.Matrix, chroma.NumBins), constants.FrameDurationS,
		constants.AnalysisSampleRate, constants.HopLength, bank)
	assert.Equal(t, []string{NoChord}, labels)
}

func TestClassifyShortMatrixYieldsOneLabel(t *testing.T) {
	bank := NewBank()
	m := matrixOf(bank.Template("G"), framesPerSegment()/4)
	labels := Classify(m, constants.FrameDurationS,
		constants.AnalysisSampleRate, constants.HopLength, bank)
	assert.Equal(t, []string{"G"}, labels)
}

func TestClassifySilentMatrixYieldsTieBreakWinner(t *testing.T) {
	bank := NewBank()
	m := matrixOf(make([]float64, chroma.NumBins), framesPerSegment())
	labels := Classify(m, constants.FrameDurationS,
		constants.AnalysisSampleRate, constants.HopLength, bank)
	assert.Equal(t, []string{"C"}, labels)
}

func TestRepeatedTemplateCollapsesToSingleChord(t *testing.T) {
	bank := NewBank()
	m := matrixOf(bank.Template("C"), 10*framesPerSegment())
	labels := Classify(m, constants.FrameDurationS,
		constants.AnalysisSampleRate, constants.HopLength, bank)

	assert := assert.New(t)
	assert.Len(labels, 10)
	assert.Equal([]string{"C"}, Collapse(labels))
}

func TestCollapse(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"C", "G", "C"}, Collapse([]string{"C", "C", "G", "G", "G", "C"}))
	assert.Equal([]string{"N"}, Collapse([]string{"N", "N", "N"}))
	assert.Nil(Collapse(nil))
}

func TestTemplateMatchRecognizerOnSilence(t *testing.T) {
	r := NewTemplateMatch(constants.HopLength, constants.WindowSize, constants.FrameDurationS)
	chords, err := r.Recognize(make([]float64, constants.AnalysisSampleRate), constants.AnalysisSampleRate)

	assert := assert.New(t)
	assert.NoError(err)
	// all-zero chroma, so the tie-break winner repeats and collapses
	assert.Equal([]string{"C"}, chords)
}
