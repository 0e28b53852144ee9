package preview

import (
	"bytes"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/jsphweid/chordsmith/util"
)

const (
	sampleRate = 44100
	// render in fixed blocks so meltysynth's effect buffers never see
	// an odd boundary
	block = 1024
	// extra render time past the last note for release decay
	tailSeconds = 1
)

// Render synthesizes a listenable stereo wav from a generated midi file
// using the soundfont at soundFontPath.
func Render(midiPath, soundFontPath, outPath string) error {
	sfData, err := os.ReadFile(soundFontPath)
	if err != nil {
		return errors.Wrap(err, "reading soundfont")
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(sfData))
	if err != nil {
		return errors.Wrap(err, "parsing soundfont")
	}

	midiData, err := os.ReadFile(midiPath)
	if err != nil {
		return errors.Wrap(err, "reading midi file")
	}
	mf, err := meltysynth.NewMidiFile(bytes.NewReader(midiData))
	if err != nil {
		return errors.Wrap(err, "parsing midi file")
	}

	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	settings.BlockSize = block
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return errors.Wrap(err, "creating synthesizer")
	}

	sequencer := meltysynth.NewMidiFileSequencer(synth)
	sequencer.Play(mf, false)

	total := int(mf.GetLength().Seconds()*sampleRate) + tailSeconds*sampleRate
	left := make([]float32, total)
	right := make([]float32, total)
	for off := 0; off < total; off += block {
		n := util.Min(block, total-off)
		sequencer.Render(left[off:off+n], right[off:off+n])
	}

	return writeWav(outPath, left, right)
}

func writeWav(path string, left, right []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating wav file")
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	data := make([]int, 0, len(left)*2)
	for i := range left {
		data = append(data, clip(left[i]), clip(right[i]))
	}
	buf := &gaudio.IntBuffer{
		Data:   data,
		Format: &gaudio.Format{SampleRate: sampleRate, NumChannels: 2},
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "encoding wav")
	}
	return errors.Wrap(enc.Close(), "finalizing wav")
}

func clip(s float32) int {
	v := int(s * 32767)
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return v
}
