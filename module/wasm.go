package module

import (
	"context"
	stderrors "errors"
	"io"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-fragment/errors"
)

const (
	// HostNamespace is the import module name of the functions the host
	// provides to the guest.
	HostNamespace = "fragment"

	// DefaultEntry is the exported entry point called on Run.
	DefaultEntry = "main"

	heightImport = "container_height"
)

// HeightSource reports the container's current height in pixels.
type HeightSource interface {
	Height() (px float64, ok bool)
}

type hostImport struct {
	fn  any
	sig Signature
}

type options struct {
	imports map[string]hostImport
	height  HeightSource
	stdout  io.Writer
	stderr  io.Writer
	entry   string
	name    string
	fresh   bool
	wasi    bool
}

// Option configures a Wasm handle.
type Option func(*options)

// WithEntry sets the exported function called on Run.
func WithEntry(name string) Option {
	return func(o *options) { o.entry = name }
}

// WithName sets the name used in logs.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithFreshInstance instantiates the module anew for every Run, closing the
// previous instance. Use it for modules that must not be entered twice.
func WithFreshInstance() Option {
	return func(o *options) { o.fresh = true }
}

// WithWASI provides wasi_snapshot_preview1 to the guest.
func WithWASI() Option {
	return func(o *options) { o.wasi = true }
}

// WithOutput routes the guest's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithHeightSource backs the fragment.container_height import. The import
// returns -1 when src has no height.
func WithHeightSource(src HeightSource) Option {
	return func(o *options) { o.height = src }
}

// WithImport exposes fn to the guest as fragment.<name>. fn follows the
// wazero GoFunc conventions and must flatten to sig.
func WithImport(name string, sig Signature, fn any) Option {
	return func(o *options) { o.imports[name] = hostImport{fn: fn, sig: sig} }
}

// Wasm is the handle to a WebAssembly module. It compiles and instantiates
// lazily on the first Run and keeps the instance for later runs.
//
// Wasm is NOT safe for concurrent use.
type Wasm struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	instance api.Module
	loadErr  error
	log      *zap.Logger
	wasm     []byte
	opts     options
	loadOnce sync.Once
	closed   bool
}

// NewWasm returns a handle for the module binary. Nothing is compiled until
// the first Run.
func NewWasm(wasm []byte, opts ...Option) *Wasm {
	o := options{
		entry:   DefaultEntry,
		name:    "fragment",
		imports: make(map[string]hostImport),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Wasm{
		wasm: wasm,
		opts: o,
		log:  Logger().With(zap.String("module", o.name)),
	}
}

// Run calls the entry point. A guest trap or non-zero exit is returned as
// a module_fault error; proc_exit(0) counts as success.
func (w *Wasm) Run(ctx context.Context) error {
	if w.closed {
		return errors.InvalidInput(errors.PhaseModule, "module closed")
	}
	if err := w.load(ctx); err != nil {
		return err
	}

	if w.instance == nil || w.instance.IsClosed() || w.opts.fresh {
		if err := w.instantiate(ctx); err != nil {
			return err
		}
	}

	w.log.Debug("run", zap.String("entry", w.opts.entry))
	_, err := w.instance.ExportedFunction(w.opts.entry).Call(ctx)
	if err != nil {
		var exit *sys.ExitError
		if stderrors.As(err, &exit) && exit.ExitCode() == 0 {
			return nil
		}
		w.log.Warn("entry point failed", zap.Error(err))
		return errors.ModuleFault(w.opts.entry, err)
	}
	return nil
}

func (w *Wasm) load(ctx context.Context) error {
	w.loadOnce.Do(func() {
		w.loadErr = w.compile(ctx)
		if w.loadErr != nil {
			w.log.Error("load failed", zap.Error(w.loadErr))
		}
	})
	return w.loadErr
}

func (w *Wasm) compile(ctx context.Context) error {
	rt := wazero.NewRuntime(ctx)

	compiled, err := rt.CompileModule(ctx, w.wasm)
	if err != nil {
		_ = rt.Close(ctx)
		return errors.Load("compile module", err)
	}

	if err := w.validate(compiled); err != nil {
		_ = rt.Close(ctx)
		return err
	}

	if w.opts.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			_ = rt.Close(ctx)
			return errors.Instantiation(err)
		}
	}

	if err := w.instantiateHost(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return errors.Instantiation(err)
	}

	w.runtime = rt
	w.compiled = compiled
	w.log.Debug("compiled",
		zap.Int("bytes", len(w.wasm)),
		zap.Int("imports", len(compiled.ImportedFunctions())))
	return nil
}

// validate checks the entry export and every guest import from
// HostNamespace against the declared signatures.
func (w *Wasm) validate(compiled wazero.CompiledModule) error {
	entry, ok := compiled.ExportedFunctions()[w.opts.entry]
	if !ok {
		return errors.NotFound(errors.PhaseLoad, "export", w.opts.entry)
	}
	if match, _ := EntrySignature.Matches(entry); !match {
		return errors.SignatureMismatch(w.opts.entry, EntrySignature.String(), coreSignature(entry))
	}

	for _, def := range compiled.ImportedFunctions() {
		moduleName, name, _ := def.Import()
		if moduleName != HostNamespace {
			continue
		}
		sig, declared := w.signatureOf(name)
		if !declared {
			return errors.NotFound(errors.PhaseLoad, "host import", HostNamespace+"."+name)
		}
		match, err := sig.Matches(def)
		if err != nil {
			return errors.Wrap(errors.PhaseLoad, errors.KindSignatureMismatch, err, HostNamespace+"."+name)
		}
		if !match {
			return errors.SignatureMismatch(HostNamespace+"."+name, sig.String(), coreSignature(def))
		}
	}
	return nil
}

func (w *Wasm) signatureOf(name string) (Signature, bool) {
	if imp, ok := w.opts.imports[name]; ok {
		return imp.sig, true
	}
	if name == heightImport {
		return HeightSignature, true
	}
	return Signature{}, false
}

func (w *Wasm) instantiateHost(ctx context.Context, rt wazero.Runtime) error {
	b := rt.NewHostModuleBuilder(HostNamespace)

	if _, overridden := w.opts.imports[heightImport]; !overridden {
		src := w.opts.height
		b.NewFunctionBuilder().
			WithFunc(func(context.Context) float64 {
				if src == nil {
					return -1
				}
				px, ok := src.Height()
				if !ok {
					return -1
				}
				return px
			}).
			Export(heightImport)
	}

	for name, imp := range w.opts.imports {
		b.NewFunctionBuilder().WithFunc(imp.fn).Export(name)
	}

	_, err := b.Instantiate(ctx)
	return err
}

func (w *Wasm) instantiate(ctx context.Context) error {
	if w.instance != nil && !w.instance.IsClosed() {
		if err := w.instance.Close(ctx); err != nil {
			w.log.Warn("close previous instance", zap.Error(err))
		}
	}

	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions()
	if w.opts.stdout != nil {
		cfg = cfg.WithStdout(w.opts.stdout)
	}
	if w.opts.stderr != nil {
		cfg = cfg.WithStderr(w.opts.stderr)
	}

	inst, err := w.runtime.InstantiateModule(ctx, w.compiled, cfg)
	if err != nil {
		w.instance = nil
		return errors.Instantiation(err)
	}
	w.instance = inst
	w.log.Debug("instantiated", zap.Bool("fresh", w.opts.fresh))
	return nil
}

// Close releases the runtime and every instance. The handle cannot be
// used afterwards.
func (w *Wasm) Close(ctx context.Context) error {
	w.closed = true
	if w.runtime == nil {
		return nil
	}
	err := w.runtime.Close(ctx)
	w.runtime = nil
	w.instance = nil
	return err
}
