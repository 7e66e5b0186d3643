package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// retry a failed submission.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSession is returned when the runner has nothing to drive.
	ErrNoSession = errors.New("tui: session is required")
)
