//go:build android

package platform

// NewPlatform creates the Android backend set.
func NewPlatform(opts ...Option) (Platform, error) {
	return NewAndroidPlatform(opts...), nil
}
