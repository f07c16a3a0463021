package host

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	wasmfragment "github.com/wippyai/wasm-fragment"
	"github.com/wippyai/wasm-fragment/errors"
)

// Op is a lifecycle call issued by a scenario step.
type Op string

const (
	OpBootstrap Op = "bootstrap"
	OpMount     Op = "mount"
	OpUpdate    Op = "update"
	OpUnmount   Op = "unmount"
)

// Step is one lifecycle call.
type Step struct {
	Props wasmfragment.Props `yaml:"props"`
	Op    Op                 `yaml:"op"`
}

// Scenario is an ordered list of lifecycle calls against one application.
type Scenario struct {
	App   string `yaml:"app"`
	Steps []Step `yaml:"steps"`
}

// StepError reports which step of a scenario failed.
type StepError struct {
	Err   error
	Op    Op
	Index int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// LoadScenario decodes a YAML scenario and checks every op.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "decode scenario")
	}
	for i, step := range sc.Steps {
		switch step.Op {
		case OpBootstrap, OpMount, OpUpdate, OpUnmount:
		default:
			return nil, errors.New(errors.PhaseHost, errors.KindInvalidInput).
				Path("steps", fmt.Sprint(i), "op").
				Value(step.Op).
				Detail("unknown op %q", step.Op).
				Build()
		}
	}
	return &sc, nil
}

// Play runs the scenario's steps against the named application, or the
// scenario's own app when name is empty. It stops at the first failing
// step and returns a *StepError.
func (o *Orchestrator) Play(ctx context.Context, name string, sc *Scenario) error {
	if name == "" {
		name = sc.App
	}
	for i, step := range sc.Steps {
		var err error
		switch step.Op {
		case OpBootstrap:
			err = o.Bootstrap(ctx, name)
		case OpMount:
			err = o.Mount(ctx, name, step.Props)
		case OpUpdate:
			err = o.Update(ctx, name, step.Props)
		case OpUnmount:
			err = o.Unmount(ctx, name, step.Props)
		default:
			err = errors.InvalidInput(errors.PhaseHost, fmt.Sprintf("unknown op %q", step.Op))
		}
		if err != nil {
			o.log.Warn("scenario step failed", zap.Int("step", i), zap.String("op", string(step.Op)), zap.Error(err))
			return &StepError{Index: i, Op: step.Op, Err: err}
		}
	}
	return nil
}
