package poller

import "fmt"

// BuildError is returned when a build reached a confirmed terminal error
// state that is not credits-related.
type BuildError struct {
	BuildID string
	Status  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s was terminated: %s", e.BuildID, e.Status)
}

// CreditsError is returned when a confirmed build failure is attributable to
// exhausted CI credits, detected by notification text matching.
type CreditsError struct {
	BuildID string
}

func (e *CreditsError) Error() string {
	return fmt.Sprintf("build %s ran out of CI credits", e.BuildID)
}

// TimeoutError is returned when the overall wall-clock budget runs out before
// the build reaches a confirmed terminal state.
type TimeoutError struct {
	BuildID string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("build %s timed out", e.BuildID)
}

// ProtocolError is returned when the service reports a status outside the
// known enumeration. It is never retried.
type ProtocolError struct {
	BuildID string
	Status  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("build %s returned unknown status: %s", e.BuildID, e.Status)
}
