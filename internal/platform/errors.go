package platform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
)

// ErrorKind classifies why a readout could not be produced.
type ErrorKind int

const (
	// KindMetricNotAvailable means the fact does not exist on this host or platform.
	KindMetricNotAvailable ErrorKind = iota
	// KindWarning is a soft, semantically valid condition (e.g. no separate desktop environment).
	KindWarning
	// KindBackend is a technical failure reaching an OS primitive.
	KindBackend
	// KindOther is an unexpected parse or encoding failure.
	KindOther
)

// String returns the kind name used in diagnostics and exports.
func (k ErrorKind) String() string {
	switch k {
	case KindMetricNotAvailable:
		return "metric_not_available"
	case KindWarning:
		return "warning"
	case KindBackend:
		return "backend_error"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// ReadoutError is the single error type returned by every capability accessor.
// It preserves the original error for inspection via errors.Is/errors.As.
type ReadoutError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ReadoutError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *ReadoutError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ReadoutError of the same kind.
// This lets callers write errors.Is(err, ErrMetricNotAvailable).
func (e *ReadoutError) Is(target error) bool {
	var t *ReadoutError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
}

// Message returns the human readable reason, falling back to the wrapped error.
func (e *ReadoutError) Message() string {
	if e.Reason != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s (%v)", e.Reason, e.Err)
		}
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind == KindMetricNotAvailable {
		return "this metric is not available on this system"
	}
	return e.Kind.String()
}

// ErrMetricNotAvailable is the universal default of every accessor.
var ErrMetricNotAvailable = &ReadoutError{Kind: KindMetricNotAvailable}

// NotAvailable returns a MetricNotAvailable error carrying a reason.
func NotAvailable(reason string) *ReadoutError {
	return &ReadoutError{Kind: KindMetricNotAvailable, Reason: reason}
}

// Warning returns a soft error for a semantically valid condition.
func Warning(reason string) *ReadoutError {
	return &ReadoutError{Kind: KindWarning, Reason: reason}
}

// BackendError returns an error for a failure reaching an OS primitive.
func BackendError(reason string, err error) *ReadoutError {
	return &ReadoutError{Kind: KindBackend, Reason: reason, Err: err}
}

// Other returns an error for unexpected parse or encoding failures.
func Other(reason string, err error) *ReadoutError {
	return &ReadoutError{Kind: KindOther, Reason: reason, Err: err}
}

// AsReadoutError extracts a ReadoutError from err.
// Errors of any other type are classified as Other so that callers always
// receive a member of the taxonomy. Returns nil for a nil error.
func AsReadoutError(err error) *ReadoutError {
	if err == nil {
		return nil
	}
	var re *ReadoutError
	if errors.As(err, &re) {
		return re
	}
	return Other("unexpected error", err)
}

// FromOSError maps an error from a file, control node or syscall into the taxonomy.
// what names the resource that was being read.
func FromOSError(what string, err error) error {
	if err == nil {
		return nil
	}
	var re *ReadoutError
	if errors.As(err, &re) {
		return re
	}
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ENOENT),
		errors.Is(err, syscall.ENOTSUP),
		errors.Is(err, syscall.EOPNOTSUPP):
		return NotAvailable(what + " does not exist")
	case errors.Is(err, fs.ErrPermission):
		return BackendError("permission denied reading "+what, err)
	case errors.Is(err, context.DeadlineExceeded):
		return BackendError("timed out reading "+what, err)
	case errors.Is(err, context.Canceled):
		return BackendError("cancelled reading "+what, err)
	default:
		return BackendError("failed to read "+what, err)
	}
}

// FromProbeError maps an error from spawning an external utility into the taxonomy.
func FromProbeError(name string, err error) error {
	if err == nil {
		return nil
	}
	var re *ReadoutError
	if errors.As(err, &re) {
		return re
	}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return NotAvailable(name + " is not installed")
	case errors.Is(err, context.DeadlineExceeded):
		return BackendError(name+" timed out", err)
	case errors.As(err, &exitErr):
		return BackendError(fmt.Sprintf("%s exited with status %d", name, exitErr.ExitCode()), err)
	default:
		return BackendError("failed to run "+name, err)
	}
}
