package encode

import (
	"errors"
	"fmt"
)

// ErrFlushed is returned when an encoder is used after Flush.
var ErrFlushed = errors.New("encoder already flushed")

// EncodeError reports an invariant violation inside the frame encoder,
// such as a malformed block or use after flush.
type EncodeError struct {
	Op  string // "init", "block", "buffer", "flush"
	Msg string
	Err error
}

func (e *EncodeError) Error() string {
	if e.Msg == "" && e.Err != nil {
		return fmt.Sprintf("encode %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("encode %s: %s", e.Op, e.Msg)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
