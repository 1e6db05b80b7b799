//go:build linux && !android

package platform

// NewPlatform creates the Linux backend set.
func NewPlatform(opts ...Option) (Platform, error) {
	return NewLinuxPlatform(opts...), nil
}
