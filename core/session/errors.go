package session

import "errors"

var (
	// ErrNotFound is returned by stores when a session row does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrCreateSession is returned when persisting a new session fails.
	ErrCreateSession = errors.New("failed to create session")
	// ErrDeleteSession is returned when deleting a session fails.
	ErrDeleteSession = errors.New("failed to delete session")
)
