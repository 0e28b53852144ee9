package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsmith/analysis"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/model"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <out.mid> [chords...]",
	Short: "Renders a chord timeline to a midi file",
	Long:  `Renders a chord timeline to a midi file, one fixed-duration slot per chord`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			panic("need an output path")
		}
		render(args[0], args[1:])
	},
}

func render(outPath string, chords []string) {
	p := analysis.New(analysis.DetectCapabilities())
	rendered, status := p.RenderMidi(chords, outPath, constants.ChordDurationS)
	if status != model.StatusSuccess {
		panic(fmt.Sprintf("render failed: %v", status))
	}
	fmt.Printf("wrote %v\n", rendered)
}
