package schema

import "fmt"

// Fatal error taxonomy. Per-frame failures are never errors; they are
// absorbed as invalid/missing samples and only affect coverage statistics.

// InputError means the video source is unusable and is raised before any
// decoding begins.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// DecodeError means the source cannot be opened, reports a zero or unknown
// frame rate, or fails its first read.
type DecodeError struct {
	Source string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot decode %s: %s", e.Source, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ModelUnavailableError means a detection or inference engine failed to
// initialize, so the requested analysis cannot be produced at all.
type ModelUnavailableError struct {
	Model string
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %s unavailable: %v", e.Model, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }
