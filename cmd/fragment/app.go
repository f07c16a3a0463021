package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-fragment/config"
	"github.com/wippyai/wasm-fragment/dom"
	"github.com/wippyai/wasm-fragment/geometry"
	"github.com/wippyai/wasm-fragment/host"
	"github.com/wippyai/wasm-fragment/lifecycle"
	"github.com/wippyai/wasm-fragment/mode"
	"github.com/wippyai/wasm-fragment/module"
)

//go:embed page.html
var defaultPage []byte

// app is the fragment wired to an in-process host.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	page    *dom.Document
	geom    *geometry.Synchronizer
	handle  *module.Wasm
	counter *module.Counter
	host    *host.Orchestrator
	adapter *lifecycle.Adapter
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Fragment.Wasm == "" {
		return nil, nil, fmt.Errorf("no module binary: set --wasm or fragment.wasm")
	}

	log, err := cfg.Logging.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	lifecycle.SetLogger(log.Named("lifecycle"))
	module.SetLogger(log.Named("module"))
	host.SetLogger(log.Named("host"))
	return cfg, log, nil
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	pageData := defaultPage
	if cfg.Host.Page != "" {
		data, err := os.ReadFile(cfg.Host.Page)
		if err != nil {
			return nil, fmt.Errorf("read host page: %w", err)
		}
		pageData = data
	}
	page, err := dom.Parse(bytes.NewReader(pageData))
	if err != nil {
		return nil, err
	}

	wasm, err := os.ReadFile(cfg.Fragment.Wasm)
	if err != nil {
		return nil, fmt.Errorf("read module: %w", err)
	}

	geom := geometry.New(page, cfg.Host.Container)

	opts := []module.Option{
		module.WithName(cfg.Fragment.Name),
		module.WithEntry(cfg.Fragment.Entry),
		module.WithHeightSource(geom),
		module.WithOutput(os.Stderr, os.Stderr),
	}
	if cfg.Fragment.WASI {
		opts = append(opts, module.WithWASI())
	}
	if cfg.Fragment.FreshInstance {
		opts = append(opts, module.WithFreshInstance())
	}
	handle := module.NewWasm(wasm, opts...)

	return &app{
		cfg:     cfg,
		log:     log,
		page:    page,
		geom:    geom,
		handle:  handle,
		counter: module.Count(handle),
		host:    host.New(page),
	}, nil
}

// start consults the embedded flag once and registers the fragment.
func (a *app) start(ctx context.Context) error {
	adapter, err := lifecycle.Start(ctx, lifecycle.Options{
		Name:      a.cfg.Fragment.Name,
		Geometry:  a.geom,
		Module:    a.counter,
		Registrar: a.host,
		Detector:  mode.New(a.cfg.Host.Embedded),
	})
	a.adapter = adapter
	return err
}

func (a *app) close(ctx context.Context) {
	if err := a.handle.Close(ctx); err != nil {
		a.log.Warn("close module", zap.Error(err))
	}
	_ = a.log.Sync()
}
