package platform

import (
	"context"
	"path"
)

// dmiProduct implements ProductReadout over the SMBIOS attributes the kernel
// exports in /sys/class/dmi/id.
type dmiProduct struct {
	src Source
	dir string
}

func newLinuxProduct(src Source) *dmiProduct {
	return &dmiProduct{src: src, dir: "/sys/class/dmi/id"}
}

func (p *dmiProduct) read(ctx context.Context, name string) (string, error) {
	return readString(ctx, p.src, path.Join(p.dir, name))
}

func (p *dmiProduct) Vendor(ctx context.Context) (string, error) {
	return p.read(ctx, "sys_vendor")
}

func (p *dmiProduct) Family(ctx context.Context) (string, error) {
	return p.read(ctx, "product_family")
}

func (p *dmiProduct) Name(ctx context.Context) (string, error) {
	return p.read(ctx, "product_name")
}

func (p *dmiProduct) Version(ctx context.Context) (string, error) {
	return p.read(ctx, "product_version")
}
