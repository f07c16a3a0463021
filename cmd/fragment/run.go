package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wasmfragment "github.com/wippyai/wasm-fragment"
)

var runHeight float64

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the fragment and print the resulting host page",
	Long: `Start the fragment. Standalone, the module runs once. Embedded, the
built-in host mounts the fragment with --height.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		if err := a.start(ctx); err != nil {
			return err
		}
		if cfg.Host.Embedded {
			props := wasmfragment.Props{wasmfragment.HeightKey: runHeight}
			if err := a.host.Mount(ctx, cfg.Fragment.Name, props); err != nil {
				return err
			}
		}

		if err := a.page.Render(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
		return nil
	},
}

func init() {
	runCmd.Flags().Float64Var(&runHeight, "height", 480, "container height in pixels for the embedded mount")
}
