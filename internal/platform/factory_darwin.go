//go:build darwin

package platform

// NewPlatform creates the macOS backend set.
func NewPlatform(opts ...Option) (Platform, error) {
	return NewDarwinPlatform(opts...), nil
}
