package host

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	wasmfragment "github.com/wippyai/wasm-fragment"
	"github.com/wippyai/wasm-fragment/dom"
	"github.com/wippyai/wasm-fragment/errors"
	"github.com/wippyai/wasm-fragment/geometry"
	"github.com/wippyai/wasm-fragment/lifecycle"
	"github.com/wippyai/wasm-fragment/mode"
	"github.com/wippyai/wasm-fragment/module"
)

const page = `<main><section class="parent"></section></main>`

func setup(t *testing.T) (*Orchestrator, *module.Counter) {
	t.Helper()
	o := New(dom.MustParse(page))
	counter := module.Count(module.Func(func(context.Context) error { return nil }))
	_, err := lifecycle.Start(context.Background(), lifecycle.Options{
		Name:      "kline",
		Geometry:  geometry.New(o.Page(), ""),
		Module:    counter,
		Registrar: o,
		Detector:  mode.New(true),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return o, counter
}

func containerHeight(t *testing.T, o *Orchestrator) float64 {
	t.Helper()
	px, ok := geometry.New(o.Page(), "").Height()
	if !ok {
		t.Fatal("container has no height")
	}
	return px
}

func TestOrchestrator_MountBootstrapsOnce(t *testing.T) {
	ctx := context.Background()
	o, counter := setup(t)

	if err := o.Mount(ctx, "kline", wasmfragment.Props{"height": 480}); err != nil {
		t.Fatal(err)
	}
	if err := o.Unmount(ctx, "kline", nil); err != nil {
		t.Fatal(err)
	}
	if err := o.Mount(ctx, "kline", wasmfragment.Props{"height": 300}); err != nil {
		t.Fatalf("remount: %v", err)
	}

	if h := containerHeight(t, o); h != 300 {
		t.Errorf("height = %v, want 300", h)
	}
	if counter.Runs() != 2 {
		t.Errorf("runs = %d, want 2", counter.Runs())
	}
}

func TestOrchestrator_Register(t *testing.T) {
	o, _ := setup(t)
	noop := lifecycle.NewAdapter(geometry.New(o.Page(), ""), module.Func(func(context.Context) error { return nil }))

	if err := o.Register("kline", noop); err == nil {
		t.Error("duplicate register should fail")
	}
	if err := o.Register("", noop); err == nil {
		t.Error("empty name should fail")
	}
	if err := o.Register("orders", nil); err == nil {
		t.Error("nil lifecycle should fail")
	}
	if err := o.Register("orders", noop); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(o.Apps(), ","); got != "kline,orders" {
		t.Errorf("apps = %s", got)
	}
}

func TestOrchestrator_UnknownApp(t *testing.T) {
	o, _ := setup(t)
	err := o.Mount(context.Background(), "missing", wasmfragment.Props{"height": 1})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNotFound || e.Phase != errors.PhaseHost {
		t.Fatalf("expected host/not_found, got %v", err)
	}
}

func TestScenario_Play(t *testing.T) {
	sc, err := LoadScenario(strings.NewReader(`
app: kline
steps:
  - op: bootstrap
  - op: mount
    props: {height: 480, user: alice}
  - op: update
    props: {height: 200}
  - op: update
    props: {height: 360.5}
  - op: unmount
`))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	o, counter := setup(t)
	if err := o.Play(context.Background(), "", sc); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if h := containerHeight(t, o); h != 360.5 {
		t.Errorf("height = %v, want 360.5", h)
	}
	if counter.Runs() != 1 {
		t.Errorf("runs = %d, want 1", counter.Runs())
	}
}

func TestScenario_StopsAtFailingStep(t *testing.T) {
	sc := &Scenario{Steps: []Step{
		{Op: OpMount, Props: wasmfragment.Props{"height": 100}},
		{Op: OpUpdate, Props: wasmfragment.Props{}},
		{Op: OpUpdate, Props: wasmfragment.Props{"height": 900}},
	}}

	o, _ := setup(t)
	err := o.Play(context.Background(), "kline", sc)

	var stepErr *StepError
	if !stderrors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %v", err)
	}
	if stepErr.Index != 1 || stepErr.Op != OpUpdate {
		t.Errorf("failed at %d (%s), want 1 (update)", stepErr.Index, stepErr.Op)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindFieldMissing {
		t.Errorf("expected field_missing cause, got %v", err)
	}
	if h := containerHeight(t, o); h != 100 {
		t.Errorf("height = %v, later steps ran", h)
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown op", "steps:\n  - op: remount\n"},
		{"unknown field", "steps:\n  - op: mount\n    prop: {height: 1}\n"},
		{"not yaml", "steps: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScenario(strings.NewReader(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
