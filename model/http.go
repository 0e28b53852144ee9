package model

type AnalyzeRequestBody struct {
	Path string `json:"path"`
	Id   string `json:"id,omitempty"`
}

type AnalyzeResponse struct {
	Message      string   `json:"message"`
	AudioPath    string   `json:"audio_path,omitempty"`
	Chords       []string `json:"chords"`
	MidiFilePath string   `json:"midi_file_path,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
