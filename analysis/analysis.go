package analysis

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jsphweid/chordsmith/audio"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/midi"
	"github.com/jsphweid/chordsmith/model"
	"github.com/jsphweid/chordsmith/recognizer"
	"github.com/jsphweid/chordsmith/util"
)

// Capabilities describes the optional collaborators, detected once at
// startup and passed explicitly to whoever needs to branch on them. The
// zero value means template matching only, no preview, no result store.
type Capabilities struct {
	// Probabilistic is an alternate, higher-accuracy recognizer. Nil
	// when no such implementation is linked in.
	Probabilistic recognizer.Recognizer
	SoundFontPath string
	AnalysesTable string
}

// DetectCapabilities reads the environment once. Pass the result
// around instead of re-reading globals.
func DetectCapabilities() Capabilities {
	return Capabilities{
		SoundFontPath: os.Getenv("SOUNDFONT"),
		AnalysesTable: os.Getenv("ANALYSES_TABLE"),
	}
}

// Pipeline runs chord estimation and MIDI reduction end to end for one
// audio file at a time. Safe for concurrent use: the template bank is
// read-only after construction and requests share nothing else.
type Pipeline struct {
	caps     Capabilities
	template recognizer.Recognizer
}

func New(caps Capabilities) *Pipeline {
	return &Pipeline{
		caps: caps,
		template: recognizer.NewTemplateMatch(
			constants.HopLength, constants.WindowSize, constants.FrameDurationS),
	}
}

// AnalyzeChords decodes the audio at path and returns the collapsed
// chord timeline. Failures never propagate as errors: the result is a
// best-effort timeline plus a status describing what happened. Silent
// or empty signals degrade to a single no-chord entry.
func (p *Pipeline) AnalyzeChords(path string) ([]string, model.Status) {
	samples, err := audio.Load(path, constants.AnalysisSampleRate)
	if err != nil {
		logrus.WithError(err).Errorf("could not decode %v", path)
		return nil, model.StatusDecodeError
	}
	if silent(samples) {
		return []string{recognizer.NoChord}, model.StatusNoSignal
	}
	return p.recognize(samples), model.StatusSuccess
}

func (p *Pipeline) recognize(samples []float64) []string {
	if p.caps.Probabilistic != nil {
		chords, err := p.caps.Probabilistic.Recognize(samples, constants.AnalysisSampleRate)
		if err == nil {
			return chords
		}
		logrus.WithError(err).Warn("probabilistic recognizer failed, falling back to template matching")
	}
	chords, _ := p.template.Recognize(samples, constants.AnalysisSampleRate)
	return chords
}

// RenderMidi writes the timeline as a single-track midi file at
// outputPath, creating the directory if needed. An empty timeline still
// produces a valid zero-note file.
func (p *Pipeline) RenderMidi(timeline []string, outputPath string, chordDuration float64) (string, model.Status) {
	lower := strings.ToLower(outputPath)
	if !strings.HasSuffix(lower, ".mid") && !strings.HasSuffix(lower, ".midi") {
		return "", model.StatusUnsupportedFormat
	}
	if err := util.EnsureDir(filepath.Dir(outputPath)); err != nil {
		logrus.WithError(err).Errorf("could not create output dir for %v", outputPath)
		return "", model.StatusIOError
	}
	events := midi.Synthesize(timeline, chordDuration)
	if err := midi.WriteFile(events, outputPath); err != nil {
		logrus.WithError(err).Errorf("could not write %v", outputPath)
		return "", model.StatusIOError
	}
	return outputPath, model.StatusSuccess
}

// OutputName derives the collision-free midi filename for a request. An
// empty identifier gets a fresh uuid so concurrent anonymous requests
// never clash.
func OutputName(id string) string {
	if id == "" {
		id = uuid.New().String()
	}
	return util.SafeFileBase(id) + "_chords.mid"
}

func silent(samples []float64) bool {
	for _, s := range samples {
		if math.Abs(s) > 1e-6 {
			return false
		}
	}
	return true
}
