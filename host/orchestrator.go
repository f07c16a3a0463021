package host

import (
	"context"
	"sort"

	"go.uber.org/zap"

	wasmfragment "github.com/wippyai/wasm-fragment"
	"github.com/wippyai/wasm-fragment/dom"
	"github.com/wippyai/wasm-fragment/errors"
)

type app struct {
	lifecycle    wasmfragment.Lifecycle
	bootstrapped bool
}

// Orchestrator registers fragment applications and drives their
// lifecycle. Calls are not safe for concurrent use; like a browser host it
// issues one lifecycle call at a time.
type Orchestrator struct {
	page *dom.Document
	apps map[string]*app
	log  *zap.Logger
}

var _ wasmfragment.Registrar = (*Orchestrator)(nil)

// New returns an orchestrator for page.
func New(page *dom.Document) *Orchestrator {
	return &Orchestrator{
		page: page,
		apps: make(map[string]*app),
		log:  Logger(),
	}
}

// Page returns the host page.
func (o *Orchestrator) Page() *dom.Document {
	return o.page
}

// Register adds an application. Names are unique.
func (o *Orchestrator) Register(name string, l wasmfragment.Lifecycle) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseHost, "app name cannot be empty")
	}
	if l == nil {
		return errors.InvalidInput(errors.PhaseHost, "lifecycle cannot be nil")
	}
	if _, exists := o.apps[name]; exists {
		return errors.InvalidInput(errors.PhaseHost, "app "+name+" already registered")
	}
	o.apps[name] = &app{lifecycle: l}
	o.log.Debug("app registered", zap.String("app", name))
	return nil
}

// Apps returns the registered application names, sorted.
func (o *Orchestrator) Apps() []string {
	names := make([]string, 0, len(o.apps))
	for name := range o.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o *Orchestrator) lookup(name string) (*app, error) {
	a, ok := o.apps[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseHost, "app", name)
	}
	return a, nil
}

// Bootstrap bootstraps the application if it has not been yet.
func (o *Orchestrator) Bootstrap(ctx context.Context, name string) error {
	a, err := o.lookup(name)
	if err != nil {
		return err
	}
	return o.bootstrap(ctx, a)
}

func (o *Orchestrator) bootstrap(ctx context.Context, a *app) error {
	if a.bootstrapped {
		return nil
	}
	if err := a.lifecycle.Bootstrap(ctx); err != nil {
		return err
	}
	a.bootstrapped = true
	return nil
}

// Mount mounts the application, bootstrapping it first when needed.
func (o *Orchestrator) Mount(ctx context.Context, name string, props wasmfragment.Props) error {
	a, err := o.lookup(name)
	if err != nil {
		return err
	}
	if err := o.bootstrap(ctx, a); err != nil {
		return err
	}
	return a.lifecycle.Mount(ctx, props)
}

// Update passes new props to a mounted application.
func (o *Orchestrator) Update(ctx context.Context, name string, props wasmfragment.Props) error {
	a, err := o.lookup(name)
	if err != nil {
		return err
	}
	return a.lifecycle.Update(ctx, props)
}

// Unmount detaches the application.
func (o *Orchestrator) Unmount(ctx context.Context, name string, props wasmfragment.Props) error {
	a, err := o.lookup(name)
	if err != nil {
		return err
	}
	return a.lifecycle.Unmount(ctx, props)
}
