package model

// Status describes how a pipeline stage ended. Stages report a
// (result, status) pair instead of raising past their boundary.
type Status string

const (
	StatusSuccess           Status = "success"
	StatusNoSignal          Status = "no-signal"
	StatusDecodeError       Status = "decode-error"
	StatusUnsupportedFormat Status = "unsupported-format"
	StatusIOError           Status = "io-error"
)
