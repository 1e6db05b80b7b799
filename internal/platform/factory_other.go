//go:build !linux && !darwin && !windows && !netbsd

package platform

import (
	"context"
	"runtime"
)

// NewPlatform returns a backend set whose every accessor reports
// MetricNotAvailable. It lets sysfetch build and run on any target.
func NewPlatform(opts ...Option) (Platform, error) {
	return newReadoutSet(runtime.GOOS, func(context.Context) (readouts, error) {
		return readouts{}, nil
	}), nil
}
