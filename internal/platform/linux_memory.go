package platform

import (
	"context"
)

// meminfoMemory implements MemoryReadout by scanning a meminfo-style
// "Key:  value kB" table.
type meminfoMemory struct {
	src  Source
	path string
	// freeOnly computes Used as total - free. NetBSD's emulated
	// /proc/meminfo does not account cache the way Linux does.
	freeOnly bool
}

func newLinuxMemory(src Source) *meminfoMemory {
	return &meminfoMemory{src: src, path: "/proc/meminfo"}
}

func (m *meminfoMemory) lookup(ctx context.Context, key string) (uint64, error) {
	data, err := m.src.ReadFile(ctx, m.path)
	if err != nil {
		return 0, FromOSError(m.path, err)
	}
	return parseMeminfoValue(data, key)
}

func (m *meminfoMemory) Total(ctx context.Context) (uint64, error) {
	return m.lookup(ctx, "MemTotal")
}

func (m *meminfoMemory) Free(ctx context.Context) (uint64, error) {
	return m.lookup(ctx, "MemFree")
}

func (m *meminfoMemory) Buffers(ctx context.Context) (uint64, error) {
	return m.lookup(ctx, "Buffers")
}

func (m *meminfoMemory) Cached(ctx context.Context) (uint64, error) {
	return m.lookup(ctx, "Cached")
}

func (m *meminfoMemory) Reclaimable(ctx context.Context) (uint64, error) {
	return m.lookup(ctx, "SReclaimable")
}

func (m *meminfoMemory) Used(ctx context.Context) (uint64, error) {
	data, err := m.src.ReadFile(ctx, m.path)
	if err != nil {
		return 0, FromOSError(m.path, err)
	}
	total, err := parseMeminfoValue(data, "MemTotal")
	if err != nil {
		return 0, err
	}
	free, err := parseMeminfoValue(data, "MemFree")
	if err != nil {
		return 0, err
	}
	if m.freeOnly {
		return saturatingSub(total, free), nil
	}
	cached, err := parseMeminfoValue(data, "Cached")
	if err != nil {
		return 0, err
	}
	buffers, err := parseMeminfoValue(data, "Buffers")
	if err != nil {
		return 0, err
	}
	// Older kernels do not report SReclaimable; treat it as zero.
	reclaimable, err := parseMeminfoValue(data, "SReclaimable")
	if err != nil {
		reclaimable = 0
	}
	return UsedMemory(total, free, cached, buffers, reclaimable), nil
}
