package lifecycle

import (
	"context"

	"go.uber.org/zap"

	wasmfragment "github.com/wippyai/wasm-fragment"
	"github.com/wippyai/wasm-fragment/errors"
	"github.com/wippyai/wasm-fragment/module"
)

// Geometry applies the container height.
type Geometry interface {
	ApplyHeight(px float64) error
}

// Adapter implements wasmfragment.Lifecycle for one embedded module.
//
// Transitions:
//
//	Unregistered --bootstrap--> Bootstrapped
//	Bootstrapped|Unmounted --mount--> Mounted
//	Mounted --update--> Mounted
//	Mounted --unmount--> Unmounted
//
// Standalone is terminal and accepts nothing. A call the current state does not accept returns an invalid_state error
// and changes nothing. Adapter is NOT safe for concurrent use; the host
// serializes lifecycle calls.
type Adapter struct {
	geometry Geometry
	module   module.Module
	log      *zap.Logger
	state    State
}

var _ wasmfragment.Lifecycle = (*Adapter)(nil)

// NewAdapter returns an Unregistered adapter.
func NewAdapter(geometry Geometry, mod module.Module) *Adapter {
	return &Adapter{
		geometry: geometry,
		module:   mod,
		log:      Logger(),
		state:    Unregistered,
	}
}

// State returns the current lifecycle state.
func (a *Adapter) State() State {
	return a.state
}

// Bootstrap runs once before the first mount. It only logs.
func (a *Adapter) Bootstrap(_ context.Context) error {
	if a.state != Unregistered {
		return errors.InvalidTransition(errors.PhaseBootstrap, a.state)
	}
	a.log.Info("bootstrap")
	a.state = Bootstrapped
	return nil
}

// Mount sizes the container from props and runs the module. The module
// runs on every mount.
//
// If the height cannot be applied the module is not run and the state is
// unchanged. If the module faults the fragment still counts as mounted and
// the fault is returned.
func (a *Adapter) Mount(ctx context.Context, props wasmfragment.Props) error {
	if a.state != Bootstrapped && a.state != Unmounted {
		return errors.InvalidTransition(errors.PhaseMount, a.state)
	}
	a.log.Info("mount", zap.Any("props", props))

	if err := a.syncHeight(errors.PhaseMount, props); err != nil {
		return err
	}
	a.state = Mounted

	return a.module.Run(ctx)
}

// Update re-applies the height from props. The module is not run.
func (a *Adapter) Update(_ context.Context, props wasmfragment.Props) error {
	if a.state != Mounted {
		return errors.InvalidTransition(errors.PhaseUpdate, a.state)
	}
	a.log.Info("update", zap.Any("props", props))

	return a.syncHeight(errors.PhaseUpdate, props)
}

// Unmount detaches the fragment. Neither the container nor the module is
// touched.
func (a *Adapter) Unmount(_ context.Context, props wasmfragment.Props) error {
	if a.state != Mounted {
		return errors.InvalidTransition(errors.PhaseUnmount, a.state)
	}
	a.log.Info("unmount", zap.Any("props", props))
	a.state = Unmounted
	return nil
}

func (a *Adapter) syncHeight(phase errors.Phase, props wasmfragment.Props) error {
	h, err := props.Height(phase)
	if err != nil {
		return err
	}
	if err := a.geometry.ApplyHeight(h); err != nil {
		a.log.Error("apply height", zap.Float64("height", h), zap.Error(err))
		return err
	}
	return nil
}
