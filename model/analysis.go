package model

// AnalysisRecord is a finished analysis as kept in the result store.
type AnalysisRecord struct {
	Id       string   `json:"id"`
	Chords   []string `json:"chords"`
	MidiPath string   `json:"midi_path"`
}
