package pitch

// Names holds the canonical sharp spelling of each pitch class in index
// order. The recognizer vocabulary and the chromagram axis both follow
// this ordering.
var Names = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var classes = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"E#": 5, "F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11, "Cb": 11, "B#": 0,
}

// Resolve maps a note spelling to its pitch class. Lookup is exact: the
// table stores canonical casing only, so "db" does not resolve.
func Resolve(name string) (int, bool) {
	pc, ok := classes[name]
	return pc, ok
}
