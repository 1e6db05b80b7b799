//go:build netbsd

package platform

// NewPlatform creates the NetBSD backend set.
func NewPlatform(opts ...Option) (Platform, error) {
	return NewNetBSDPlatform(opts...), nil
}
