package poller

// Build statuses reported by the Cirrus CI API, grouped by how the poller
// reacts to them. Anything outside these sets is a protocol violation.
var (
	activeStatuses = map[string]bool{
		"CREATED":   true,
		"TRIGGERED": true,
		"EXECUTING": true,
	}
	successStatuses = map[string]bool{
		"COMPLETED": true,
	}
	errorCandidateStatuses = map[string]bool{
		"NEEDS_APPROVAL": true,
		"FAILED":         true,
		"ABORTED":        true,
		"ERRORED":        true,
	}
)

// errorConfirmThreshold is the number of consecutive error-candidate
// observations required before a failure is considered confirmed.
const errorConfirmThreshold = 3

// decision is the machine's verdict for one observation.
type decision int

const (
	// decideWait: build is running, sleep the full interval and poll again.
	decideWait decision = iota
	// decideSuccess: build completed, stop polling.
	decideSuccess
	// decideRecheck: error candidate below the confirmation threshold,
	// re-check after a shortened sleep.
	decideRecheck
	// decideFailed: error candidate confirmed, stop polling and fail.
	decideFailed
	// decideUnknown: status outside the known enumeration, fail immediately.
	decideUnknown
)

// machine tracks consecutive error-candidate observations. Build status
// reporting is eventually consistent and occasionally flaps through an
// error-like state before settling; requiring errorConfirmThreshold
// consecutive observations converts that noisy signal into a confident
// terminal decision. Any active observation resets the counter.
type machine struct {
	errorsConfirmed int
}

func (m *machine) observe(status string) decision {
	switch {
	case successStatuses[status]:
		return decideSuccess
	case activeStatuses[status]:
		m.errorsConfirmed = 0
		return decideWait
	case errorCandidateStatuses[status]:
		m.errorsConfirmed++
		if m.errorsConfirmed < errorConfirmThreshold {
			return decideRecheck
		}
		return decideFailed
	default:
		return decideUnknown
	}
}
