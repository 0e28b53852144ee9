package constants

import "os"

func GetAudioDir() string {
	path := os.Getenv("AUDIO_PATH")
	if path != "" {
		return path
	}
	return "./temp_audio"
}

func GetMidiDir() string {
	path := os.Getenv("MIDI_PATH")
	if path != "" {
		return path
	}
	return "./static/midi"
}

// Analysis parameters. The recognized timeline depends on sample rate,
// hop and frame duration together, so change them together or not at all.
const (
	AnalysisSampleRate = 22050
	HopLength          = 512
	WindowSize         = 2048
	FrameDurationS     = 2.0
)

const (
	ChordDurationS = 2.0
	Velocity       = 100
	BaseOctave     = 4
)
