package server

import "errors"

var (
	ErrMissingAddress = errors.New("server address is required")
	ErrAlreadyRunning = errors.New("server is already running")
)
