package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
)

func writeTestWav(t *testing.T, path string, rate, channels int, samples []int) {
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &gaudio.IntBuffer{
		Data:   samples,
		Format: &gaudio.Format{SampleRate: rate, NumChannels: channels},
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMonoWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := make([]int, 22050)
	for i := range samples {
		samples[i] = int(10000 * math.Sin(2*math.Pi*440*float64(i)/22050))
	}
	writeTestWav(t, path, 22050, 1, samples)

	out, err := Load(path, 22050)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(out, len(samples))
	var peak float64
	for _, s := range out {
		if math.Abs(s) > peak {
			peak = math.Abs(s)
		}
	}
	assert.InDelta(10000.0/32768.0, peak, 0.01)
}

func TestLoadResamplesToTargetRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone44k.wav")
	writeTestWav(t, path, 44100, 1, make([]int, 44100))

	out, err := Load(path, 22050)

	assert := assert.New(t)
	assert.NoError(err)
	assert.InDelta(22050, len(out), 2)
}

func TestLoadDownmixesStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// left channel all 1000, right channel all -1000: downmix cancels
	samples := make([]int, 2000)
	for i := 0; i < len(samples); i += 2 {
		samples[i] = 1000
		samples[i+1] = -1000
	}
	writeTestWav(t, path, 22050, 2, samples)

	out, err := Load(path, 22050)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(out, 1000)
	for _, s := range out {
		assert.Zero(s)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	if err := os.WriteFile(path, []byte("definitely not riff"), 0666); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, 22050)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.wav"), 22050)
	assert.Error(t, err)
}

func TestResample(t *testing.T) {
	assert := assert.New(t)

	in := []float64{0, 1, 2, 3}
	assert.Equal(in, Resample(in, 22050, 22050))

	up := Resample(in, 1, 2)
	assert.Len(up, 8)
	assert.Equal(0.5, up[1])

	down := Resample(in, 2, 1)
	assert.Len(down, 2)
	assert.Equal(0.0, down[0])
	assert.Equal(2.0, down[1])
}
