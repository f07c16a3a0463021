// Package wasmfragment embeds a WebAssembly UI fragment in a micro-frontend
// host page, or runs it standalone when no host is present.
//
// A host orchestrator drives a fixed four-phase lifecycle (bootstrap,
// mount, update, unmount). The adapter keeps the fragment's container
// height in step with the host's props and enters the module at the right
// transitions.
//
// # Architecture Overview
//
//	wasmfragment/        Lifecycle and Registrar contracts, Props
//	├── lifecycle/       Adapter state machine and process start
//	├── geometry/        Container height synchronization
//	├── dom/             Host page render tree
//	├── module/          Embedded module capability, wazero-backed handle
//	├── mode/            Embedded/standalone detection
//	├── host/            In-process host orchestrator and scenarios
//	├── config/          viper configuration
//	└── errors/          Structured error types
//
// # Quick Start
//
//	page := dom.MustParse(`<div class="parent"></div>`)
//	orch := host.New(page)
//
//	adapter, err := lifecycle.Start(ctx, lifecycle.Options{
//	    Geometry:  geometry.New(page, ".parent"),
//	    Module:    module.NewWasm(wasmBytes),
//	    Registrar: orch,
//	    Detector:  mode.New(embedded),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = orch.Mount(ctx, lifecycle.DefaultName, wasmfragment.Props{"height": 480})
//
// Standalone (embedded == false), Start runs the module once and the host
// never mounts it.
//
// # Module Re-entry
//
// Every mount enters the module again. The module must tolerate that, or
// be loaded with module.WithFreshInstance so each mount starts from a new
// instance.
//
// # Thread Safety
//
// Lifecycle calls are serialized by the host. Adapter, Orchestrator and
// module.Wasm are NOT safe for concurrent use.
package wasmfragment
