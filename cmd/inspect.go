package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chordsmith/midi"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Dumps the note events of a midi file",
	Long:  `Dumps the note events of a midi file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := midi.ReadFile(path)
	if err != nil {
		panic("could not read midi file: " + err.Error())
	}
	if info, err := os.Stat(path); err == nil {
		fmt.Printf("%v (%v)\n", path, humanize.Bytes(uint64(info.Size())))
	}
	notes := midi.Notes(s)
	fmt.Printf("%v note events\n", len(notes))
	spew.Dump(notes)
}
