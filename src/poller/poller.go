// Package poller waits for a Cirrus CI build to reach a terminal outcome.
package poller

import (
	"context"
	"strings"
	"time"

	"cirrus-run/src/logger"
	"cirrus-run/src/queries"
)

// API is the slice of the transport the poller needs.
type API interface {
	Query(ctx context.Context, query string, params map[string]interface{}) (map[string]interface{}, error)
}

// Poller polls a build's status until it completes, fails or runs out of
// time. One Poller drives one build at a time; callers wanting to watch
// several builds run independent Poller instances, each with its own API
// session.
type Poller struct {
	api API
	log logger.Logger

	// Interval is the sleep between polls while the build is active.
	Interval time.Duration
	// Timeout is the overall wall-clock budget. It is checked at poll-cycle
	// boundaries only, so a single in-flight poll can overrun it by a bounded
	// amount; that approximation is deliberate.
	Timeout time.Duration
	// CreditsMessage, when non-empty, is the substring searched for in task
	// notifications to attribute a confirmed failure to exhausted CI credits.
	CreditsMessage string
	// OnStatus, when set, is invoked with each observed status.
	OnStatus func(status string)

	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a Poller with the default poll interval and timeout.
func New(api API, log logger.Logger) *Poller {
	return &Poller{
		api:      api,
		log:      log,
		Interval: 3 * time.Second,
		Timeout:  time.Hour,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Wait polls until the build reaches a terminal outcome. It returns nil on
// COMPLETED, or one of *BuildError, *CreditsError, *TimeoutError,
// *ProtocolError; transport failures and malformed replies propagate as-is.
func (p *Poller) Wait(ctx context.Context, buildID string) error {
	m := &machine{}
	start := p.now()

	for p.now().Sub(start) < p.Timeout {
		reply, err := p.api.Query(ctx, queries.BuildStatusQuery, map[string]interface{}{
			"build": buildID,
		})
		if err != nil {
			return err
		}
		status, tasks, err := queries.BuildStatus(reply)
		if err != nil {
			return err
		}

		p.log.Info("build https://cirrus-ci.com/build/%s: %s", buildID, status)
		if p.OnStatus != nil {
			p.OnStatus(status)
		}

		switch m.observe(status) {
		case decideSuccess:
			return nil
		case decideWait:
			p.sleep(p.Interval)
		case decideRecheck:
			// Re-check sooner than a full interval so flaky observations are
			// confirmed or dismissed quickly.
			p.sleep(p.Interval * 2 / 3)
		case decideFailed:
			if p.CreditsMessage != "" && hasNotification(tasks, p.CreditsMessage) {
				return &CreditsError{BuildID: buildID}
			}
			return &BuildError{BuildID: buildID, Status: status}
		case decideUnknown:
			return &ProtocolError{BuildID: buildID, Status: status}
		}
	}

	return &TimeoutError{BuildID: buildID}
}

// hasNotification reports whether any task notification contains the given
// substring. The match is a plain substring by contract: the service reports
// credit exhaustion as free text, not a structured error code, so this is
// inherently sensitive to upstream wording changes.
func hasNotification(tasks []queries.Task, substring string) bool {
	for _, task := range tasks {
		for _, message := range task.Notifications {
			if strings.Contains(message, substring) {
				return true
			}
		}
	}
	return false
}
