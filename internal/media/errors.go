package media

import "fmt"

// ValidationError reports an input that failed an acceptance gate or a
// missing required input. It blocks a run from starting; it never aborts
// one already in progress.
type ValidationError struct {
	Input string // the gate that failed: "media", "artwork", "overrides", ...
	Name  string // offending item name, if any
	Msg   string
	Err   error // underlying cause, if any
}

func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q: %s", e.Input, e.Name, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Input, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
