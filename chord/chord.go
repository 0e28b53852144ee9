package chord

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/pitch"
)

// Roots spelled this way land too high when anchored at octave 4, so
// they get dropped an octave to keep triads clustered around middle C
// (Am comes out as A3 C4 E4).
var lowRoots = map[string]bool{
	"A": true, "A#": true, "Ab": true,
	"B": true, "Bb": true, "Cb": true,
}

// Notes parses a chord label and returns its triad as MIDI note
// numbers, ascending, duplicates removed. "N", "X" and unparseable
// labels produce no notes.
//
// Only a lowercase 'b' extends the root as a flat; an uppercase 'B'
// would collide with the note name B, so "BB" parses as root B. Known
// limitation of the label grammar, kept as-is.
func Notes(label string) []uint8 {
	if label == "" {
		return nil
	}
	if lower := strings.ToLower(label); lower == "n" || lower == "x" {
		return nil
	}

	root := label[:1]
	offset := 1
	if len(label) > 1 && (label[1] == '#' || label[1] == 'b') {
		root = label[:2]
		offset = 2
	}
	quality := strings.ToLower(label[offset:])

	pc, ok := pitch.Resolve(root)
	if !ok {
		logrus.Warnf("unknown root note %q in chord %q", root, label)
		return nil
	}

	rootNote := (constants.BaseOctave+1)*12 + pc
	if lowRoots[root] {
		rootNote -= 12
	}

	third := rootNote + 4
	fifth := rootNote + 7
	// Checked order matters: "dim" contains an 'm', so it must match
	// before the bare minor test or the fifth never flattens. The bare
	// "m" test still fires for any other suffix containing it, "maj"
	// included.
	switch {
	case strings.Contains(quality, "dim"):
		third = rootNote + 3
		fifth = rootNote + 6
	case strings.Contains(quality, "aug"):
		third = rootNote + 4
		fifth = rootNote + 8
	case strings.Contains(quality, "m") || strings.Contains(quality, "min"):
		third = rootNote + 3
	}

	notes := []int{rootNote, third, fifth}
	sort.Ints(notes)
	var out []uint8
	for i, n := range notes {
		if i > 0 && n == notes[i-1] {
			continue
		}
		out = append(out, uint8(n))
	}
	return out
}
