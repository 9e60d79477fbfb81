package poller

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genActiveStatus generates statuses the machine treats as "still running".
func genActiveStatus() gopter.Gen {
	return gen.OneConstOf("CREATED", "TRIGGERED", "EXECUTING")
}

// genErrorCandidateStatus generates statuses that may be transient trouble.
func genErrorCandidateStatus() gopter.Gen {
	return gen.OneConstOf("NEEDS_APPROVAL", "FAILED", "ABORTED", "ERRORED")
}

// genRecognizedStatus generates any non-terminal-success recognized status.
func genRecognizedStatus() gopter.Gen {
	return gen.OneGenOf(genActiveStatus(), genErrorCandidateStatus())
}

func TestPropertyFailureRequiresThreeConsecutiveCandidates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Fewer than three consecutive error candidates never confirm a failure,
	// no matter what recognized statuses came before.
	properties.Property("short candidate runs never confirm", prop.ForAll(
		func(prefix []string, candidates []string) bool {
			m := &machine{}
			for _, status := range prefix {
				m.observe(status)
			}
			for _, status := range candidates {
				if m.observe(status) == decideFailed {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genActiveStatus()),
		gen.SliceOfN(2, genErrorCandidateStatus()),
	))

	// Exactly three consecutive error candidates always confirm on the third
	// observation, regardless of the active statuses seen before.
	properties.Property("three consecutive candidates confirm on the third", prop.ForAll(
		func(prefix []string, candidates []string) bool {
			m := &machine{}
			for _, status := range prefix {
				if m.observe(status) != decideWait {
					return false
				}
			}
			for i, status := range candidates {
				got := m.observe(status)
				if i < errorConfirmThreshold-1 {
					if got != decideRecheck {
						return false
					}
				} else if got != decideFailed {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genActiveStatus()),
		gen.SliceOfN(errorConfirmThreshold, genErrorCandidateStatus()),
	))

	// An active observation wipes out any accumulated confirmations: after a
	// recovery, two fresh candidates are still not enough.
	properties.Property("active observation resets the confirmation counter", prop.ForAll(
		func(candidatesBefore []string, active string, candidatesAfter []string) bool {
			m := &machine{}
			for _, status := range candidatesBefore {
				m.observe(status)
			}
			if m.observe(active) != decideWait {
				return false
			}
			for _, status := range candidatesAfter {
				if m.observe(status) == decideFailed {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(2, genErrorCandidateStatus()),
		genActiveStatus(),
		gen.SliceOfN(2, genErrorCandidateStatus()),
	))

	// Recognized statuses never produce the protocol-violation verdict.
	properties.Property("recognized statuses are never protocol violations", prop.ForAll(
		func(statuses []string) bool {
			m := &machine{}
			for _, status := range statuses {
				if m.observe(status) == decideUnknown {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genRecognizedStatus()),
	))

	properties.TestingRun(t)
}
