package pcm

import "fmt"

// DecodeError reports that a media file could not be decoded to PCM.
type DecodeError struct {
	Path   string
	Op     string // "probe" or "decode"
	Stderr string // trimmed tool output, if any
	Err    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("pcm %s failed for %s", e.Op, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (" + e.Stderr + ")"
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
