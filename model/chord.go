package model

// NoteEvent is one timed note of the MIDI reduction. Immutable once
// created; times are seconds from the start of the piece.
type NoteEvent struct {
	Pitch    uint8
	Velocity uint8
	Start    float64
	End      float64
}
