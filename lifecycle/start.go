package lifecycle

import (
	"context"

	"go.uber.org/zap"

	wasmfragment "github.com/wippyai/wasm-fragment"
	"github.com/wippyai/wasm-fragment/errors"
	"github.com/wippyai/wasm-fragment/mode"
	"github.com/wippyai/wasm-fragment/module"
)

// DefaultName is the application name registered with the host.
const DefaultName = "kline"

// Options wires an adapter at process start.
type Options struct {
	Geometry Geometry
	Module   module.Module
	// Registrar receives the adapter. Optional in standalone mode.
	Registrar wasmfragment.Registrar
	Name      string
	Detector  mode.Detector
}

// Start consults the detector once. Standalone: the module runs
// immediately, exactly once, and no height is resolved. Embedded: nothing
// runs until the host mounts. In both modes the adapter is registered when
// a Registrar is given; a standalone adapter is inert and every host call
// on it returns invalid_state.
func Start(ctx context.Context, opts Options) (*Adapter, error) {
	if opts.Module == nil {
		return nil, errors.InvalidInput(errors.PhaseConfig, "module is required")
	}
	if opts.Geometry == nil {
		return nil, errors.InvalidInput(errors.PhaseConfig, "geometry is required")
	}
	name := opts.Name
	if name == "" {
		name = DefaultName
	}

	embedded := opts.Detector.IsEmbedded()
	log := Logger().With(zap.String("app", name), zap.String("mode", opts.Detector.String()))

	if embedded && opts.Registrar == nil {
		return nil, errors.InvalidInput(errors.PhaseConfig, "embedded mode requires a registrar")
	}

	a := NewAdapter(opts.Geometry, opts.Module)
	a.log = log
	if !embedded {
		a.state = Standalone
	}

	if opts.Registrar != nil {
		if err := opts.Registrar.Register(name, a); err != nil {
			return nil, err
		}
		log.Debug("registered")
	}

	if !embedded {
		log.Info("standalone start")
		if err := opts.Module.Run(ctx); err != nil {
			return a, err
		}
	}
	return a, nil
}
