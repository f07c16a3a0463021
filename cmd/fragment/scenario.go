package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-fragment/errors"
	"github.com/wippyai/wasm-fragment/host"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario FILE",
	Short: "Act as the host and replay a YAML lifecycle scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		sc, err := host.LoadScenario(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		// This process is the host, so the fragment is embedded.
		cfg.Host.Embedded = true

		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		if err := a.start(ctx); err != nil {
			return err
		}
		playErr := a.play(ctx, sc)

		log.Info("scenario finished",
			zap.Int("steps", len(sc.Steps)),
			zap.Int64("runs", a.counter.Runs()),
			zap.Int64("faults", a.counter.Faults()),
			zap.Stringer("state", a.adapter.State()))

		if err := a.page.Render(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
		return playErr
	},
}

// play replays sc against the configured fragment. A scenario written for
// another app is rejected before any step runs.
func (a *app) play(ctx context.Context, sc *host.Scenario) error {
	name := a.cfg.Fragment.Name
	if sc.App != "" && sc.App != name {
		return errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Detail("scenario targets app %q, fragment is registered as %q", sc.App, name).
			Value(sc.App).
			Build()
	}
	return a.host.Play(ctx, name, sc)
}
