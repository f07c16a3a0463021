package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wippyai/wasm-fragment/config"
)

var rootCmd = &cobra.Command{
	Use:   "fragment",
	Short: "Run a WebAssembly UI fragment standalone or under a host orchestrator",
	Long: `fragment loads a WebAssembly module and drives it through the
bootstrap/mount/update/unmount lifecycle of a micro-frontend host,
keeping the container height in the host page in step with the props.

Without a host (FRAGMENT_HOST_EMBEDDED unset) the module runs once at start.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/wasm-fragment/config.yaml)")
	rootCmd.PersistentFlags().String("wasm", "", "path to the module binary")
	rootCmd.PersistentFlags().String("page", "", "host page HTML file (default: built-in page)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("fragment.wasm", rootCmd.PersistentFlags().Lookup("wasm"))
	_ = viper.BindPFlag("host.page", rootCmd.PersistentFlags().Lookup("page"))

	rootCmd.AddCommand(runCmd, scenarioCmd, interactiveCmd)
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	config.BindEnv(viper.GetViper())

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
