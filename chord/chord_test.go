package chord

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriads(t *testing.T) {
	cases := []struct {
		label string
		want  []uint8
	}{
		{"C", []uint8{60, 64, 67}},
		{"G", []uint8{67, 71, 74}},
		{"Am", []uint8{57, 60, 64}},
		{"Bdim", []uint8{59, 62, 65}},
		{"Caug", []uint8{60, 64, 68}},
		{"Db", []uint8{61, 65, 68}},
		{"F#m", []uint8{66, 69, 73}},
		{"Bb", []uint8{58, 62, 65}},
	}

	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			assert.Equal(t, c.want, Notes(c.label))
		})
	}
}

func TestNoChordLabelsMapToNothing(t *testing.T) {
	assert := assert.New(t)
	for _, label := range []string{"", "N", "n", "X", "x"} {
		assert.Empty(Notes(label), fmt.Sprintf("label %q", label))
	}
}

func TestUnknownRootMapsToNothing(t *testing.T) {
	assert := assert.New(t)
	assert.Empty(Notes("H"))
	assert.Empty(Notes("Z#m"))
}

// "maj" contains an 'm', so the minor branch fires first. Faithful to
// the checked-order dispatch; changing it breaks existing timelines.
func TestMajSuffixHitsMinorBranch(t *testing.T) {
	assert.Equal(t, []uint8{60, 63, 67}, Notes("Cmaj"))
}

// "dim" contains an 'm' too: the diminished check must come before the
// bare minor check or the fifth stays perfect.
func TestDimSuffixBeatsMinorBranch(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]uint8{62, 65, 68}, Notes("Ddim"))
	assert.Equal([]uint8{59, 62, 65}, Notes("Bdim"))
}

// Uppercase 'B' is never a flat: "BB" parses as root B with quality
// "B", which matches no quality substring and falls through to major.
func TestUppercaseBIsNotAFlat(t *testing.T) {
	assert.Equal(t, []uint8{59, 63, 66}, Notes("BB"))
}

func TestLowRootsDropAnOctave(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(57), Notes("A")[0])
	assert.Equal(uint8(58), Notes("Bb")[0])
	assert.Equal(uint8(59), Notes("Cb")[0])
	// only the listed spellings are corrected: Ab drops, G# does not,
	// even though they share a pitch class
	assert.Equal(uint8(56), Notes("Ab")[0])
	assert.Equal(uint8(68), Notes("G#")[0])
}
