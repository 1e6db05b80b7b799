//go:build windows

package platform

// NewPlatform creates the Windows backend set.
func NewPlatform(opts ...Option) (Platform, error) {
	return NewWindowsPlatform(opts...), nil
}
