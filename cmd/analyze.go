package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/remeh/sizedwaitgroup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsmith/analysis"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/model"
	"github.com/jsphweid/chordsmith/preview"
)

var analyzeMidiDir string
var analyzePreview bool
var analyzeWorkers int

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMidiDir, "midi-dir", "",
		"also render each timeline to a midi file in this directory")
	analyzeCmd.Flags().BoolVar(&analyzePreview, "preview", false,
		"render a wav preview next to each midi file (needs SOUNDFONT)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 4,
		"max files analyzed in parallel")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Prints the chord timeline of audio files",
	Long:  `Prints the chord timeline of audio files`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			panic("need at least one audio file")
		}
		analyzeFiles(args)
	},
}

func analyzeFiles(paths []string) {
	caps := analysis.DetectCapabilities()
	p := analysis.New(caps)

	results := make([]string, len(paths))
	swg := sizedwaitgroup.New(analyzeWorkers)
	for i, path := range paths {
		swg.Add()
		go func(i int, path string) {
			defer swg.Done()
			results[i] = analyzeOne(p, caps, path)
		}(i, path)
	}
	swg.Wait()

	for _, line := range results {
		fmt.Print(line)
	}
}

func analyzeOne(p *analysis.Pipeline, caps analysis.Capabilities, path string) string {
	chords, status := p.AnalyzeChords(path)
	line := fmt.Sprintf("%v [%v]: %v\n", path, status, strings.Join(chords, " "))
	if analyzeMidiDir == "" || len(chords) == 0 {
		return line
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(analyzeMidiDir, analysis.OutputName(base))
	rendered, midiStatus := p.RenderMidi(chords, outPath, constants.ChordDurationS)
	line += fmt.Sprintf("  midi [%v]: %v\n", midiStatus, rendered)

	if analyzePreview && midiStatus == model.StatusSuccess {
		if caps.SoundFontPath == "" {
			logrus.Warn("preview requested but SOUNDFONT is not set")
			return line
		}
		wavPath := strings.TrimSuffix(rendered, ".mid") + ".wav"
		if err := preview.Render(rendered, caps.SoundFontPath, wavPath); err != nil {
			logrus.WithError(err).Warnf("preview failed for %v", rendered)
		} else {
			line += "  preview: " + wavPath + "\n"
		}
	}
	return line
}
