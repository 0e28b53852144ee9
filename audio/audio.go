package audio

import (
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Load decodes a wav file into the mono float stream the chroma
// extractor expects: downmixed, normalized to [-1, 1] and resampled to
// targetRate.
func Load(path string, targetRate int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening audio file")
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.Errorf("%v is not a decodable wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "decoding pcm")
	}
	return Prepare(buf, targetRate), nil
}

// Prepare converts an arbitrary PCM buffer to mono floats at targetRate.
func Prepare(buf *gaudio.IntBuffer, targetRate int) []float64 {
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		mono[i] = sum / float64(channels) / scale
	}
	return Resample(mono, buf.Format.SampleRate, targetRate)
}

// Resample interpolates linearly between neighboring samples. Good
// enough for pitch-class energy; not band-limited.
func Resample(in []float64, from, to int) []float64 {
	if from == to || from <= 0 || to <= 0 || len(in) == 0 {
		return in
	}
	n := int(float64(len(in)) * float64(to) / float64(from))
	if n == 0 {
		n = 1
	}
	out := make([]float64, n)
	ratio := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}
