package platform

import (
	"context"
)

// controlNodeKernel implements KernelReadout by reading named kernel
// parameters from the /proc/sys control namespace.
type controlNodeKernel struct {
	src         Source
	releasePath string
	typePath    string
}

func newLinuxKernel(src Source) *controlNodeKernel {
	return &controlNodeKernel{
		src:         src,
		releasePath: "/proc/sys/kernel/osrelease",
		typePath:    "/proc/sys/kernel/ostype",
	}
}

func (k *controlNodeKernel) OSRelease(ctx context.Context) (string, error) {
	return readString(ctx, k.src, k.releasePath)
}

func (k *controlNodeKernel) OSType(ctx context.Context) (string, error) {
	return readString(ctx, k.src, k.typePath)
}

func (k *controlNodeKernel) PrettyKernel(ctx context.Context) (string, error) {
	return prettyKernel(ctx, k)
}

// prettyKernel joins OSType and OSRelease, failing with the first sub-failure.
func prettyKernel(ctx context.Context, k KernelReadout) (string, error) {
	osType, err := k.OSType(ctx)
	if err != nil {
		return "", err
	}
	release, err := k.OSRelease(ctx)
	if err != nil {
		return "", err
	}
	return osType + " " + release, nil
}
