package main

import (
	"errors"

	"cirrus-run/src/api"
	"cirrus-run/src/poller"
	"cirrus-run/src/queries"
)

// Process exit codes, one per error kind, so CI wrappers can react to the
// specific outcome (e.g. re-queue on credits exhaustion).
const (
	exitOK       = 0
	exitBuild    = 1
	exitCredits  = 2
	exitTimeout  = 3
	exitHTTP     = 4
	exitQuery    = 5
	exitProtocol = 6
)

// exitCode maps an error from the core to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var creditsErr *poller.CreditsError
	if errors.As(err, &creditsErr) {
		return exitCredits
	}
	var timeoutErr *poller.TimeoutError
	if errors.As(err, &timeoutErr) {
		return exitTimeout
	}
	var protocolErr *poller.ProtocolError
	if errors.As(err, &protocolErr) {
		return exitProtocol
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return exitHTTP
	}
	var queryErr *queries.QueryError
	if errors.As(err, &queryErr) {
		return exitQuery
	}
	return exitBuild
}

// isBuildFailure reports whether the build itself failed, i.e. there is a
// finished build whose log is worth showing.
func isBuildFailure(err error) bool {
	if err == nil {
		return false
	}
	var buildErr *poller.BuildError
	var creditsErr *poller.CreditsError
	return errors.As(err, &buildErr) || errors.As(err, &creditsErr)
}
