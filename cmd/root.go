package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordsmith",
	Short: "Chord estimation and MIDI reduction",
	Long:  `Estimates the chord progression of an audio recording and renders it as a simplified MIDI file.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
