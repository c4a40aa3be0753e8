package pipeline

import "fmt"

// LoadError marks a source image that is missing, unreadable, or empty.
// Fatal to the invocation and kept distinct from processing failures so the
// caller can decide whether retrying makes sense.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load failure: %s", e.Source)
	}
	return fmt.Sprintf("load failure: %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StageError names the pipeline stage that could not produce output. The
// orchestrator never suppresses one; the remaining stages are abandoned.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
