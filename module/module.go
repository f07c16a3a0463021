package module

import (
	"context"
	"sync/atomic"
)

// Module is the embedded module's single entry point. Run reports faults
// raised inside the module instead of letting them escape.
//
// The adapter calls Run on every mount. A Module must therefore either
// tolerate repeated calls (re-render) or be built to start from fresh
// state each time, e.g. a Wasm handle with WithFreshInstance.
type Module interface {
	Run(ctx context.Context) error
}

// Func adapts a plain function to Module.
type Func func(ctx context.Context) error

// Run calls f.
func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}

// Counter wraps a Module and counts entry point invocations.
type Counter struct {
	Module
	runs   atomic.Int64
	faults atomic.Int64
}

// Count wraps m.
func Count(m Module) *Counter {
	return &Counter{Module: m}
}

// Run invokes the wrapped module and records the outcome.
func (c *Counter) Run(ctx context.Context) error {
	c.runs.Add(1)
	err := c.Module.Run(ctx)
	if err != nil {
		c.faults.Add(1)
	}
	return err
}

// Runs returns how many times the entry point was invoked.
func (c *Counter) Runs() int64 {
	return c.runs.Load()
}

// Faults returns how many invocations failed.
func (c *Counter) Faults() int64 {
	return c.faults.Load()
}
