package app

import (
	"errors"
	"fmt"
)

// ErrStalled is matched by every *StalledError.
var ErrStalled = errors.New("schedule stalled")

// StalledError is returned by Run in strict mode when tasks were left
// without a worker.
type StalledError struct {
	Reason      string
	Unscheduled int
}

func (e *StalledError) Error() string {
	return fmt.Sprintf("schedule stalled (%s): %d task(s) left unscheduled", e.Reason, e.Unscheduled)
}

// Is reports ErrStalled as a match.
func (e *StalledError) Is(target error) bool {
	return target == ErrStalled
}
