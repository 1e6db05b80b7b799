package platform

import (
	"context"
	"errors"
	"sync"
)

// readouts is one backend per capability plus the handles to release on Close.
type readouts struct {
	battery  BatteryReadout
	kernel   KernelReadout
	memory   MemoryReadout
	product  ProductReadout
	packages PackageReadout
	general  GeneralReadout
	closers  []func() error
}

// readoutSet implements Platform for every backend. Each OS supplies a build
// function that assembles its readouts; accessors called before Initialize,
// or for a capability the build left nil, fall back to the unsupported
// defaults.
type readoutSet struct {
	mu    sync.RWMutex
	name  string
	build func(ctx context.Context) (readouts, error)
	r     readouts
	ready bool
}

func newReadoutSet(name string, build func(ctx context.Context) (readouts, error)) *readoutSet {
	return &readoutSet{name: name, build: build}
}

func (p *readoutSet) Name() string {
	return p.name
}

func (p *readoutSet) Initialize(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	r, err := p.build(ctx)
	if err != nil {
		return err
	}
	p.r = r
	p.ready = true
	return nil
}

func (p *readoutSet) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, closeFn := range p.r.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	p.r = readouts{}
	p.ready = false
	return errors.Join(errs...)
}

func (p *readoutSet) Battery() BatteryReadout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.r.battery == nil {
		return UnsupportedBattery{}
	}
	return p.r.battery
}

func (p *readoutSet) Kernel() KernelReadout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.r.kernel == nil {
		return UnsupportedKernel{}
	}
	return p.r.kernel
}

func (p *readoutSet) Memory() MemoryReadout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.r.memory == nil {
		return UnsupportedMemory{}
	}
	return p.r.memory
}

func (p *readoutSet) Product() ProductReadout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.r.product == nil {
		return UnsupportedProduct{}
	}
	return p.r.product
}

func (p *readoutSet) Packages() PackageReadout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.r.packages == nil {
		return UnsupportedPackages{}
	}
	return p.r.packages
}

func (p *readoutSet) General() GeneralReadout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.r.general == nil {
		return UnsupportedGeneral{}
	}
	return p.r.general
}
