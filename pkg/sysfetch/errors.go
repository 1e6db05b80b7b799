package sysfetch

import "errors"

var (
	// ErrInvalidConfig is returned when the configuration file or the
	// options cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRemoteUnavailable is returned when a remote host cannot be reached
	// or refuses the connection.
	ErrRemoteUnavailable = errors.New("remote host unavailable")
)
