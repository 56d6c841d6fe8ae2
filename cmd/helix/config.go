package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/helix/internal/config"
)

var (
	flagCfgPath   string
	flagCfgFormat string
	flagCfgPreset string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Resolve the module configuration the way 'helix run' does and print
it. The search order is --config, ~/.helix/configs/helix.yaml,
./configs/helix.yaml, then the built-in defaults.

Examples:
  helix config > ~/.helix/configs/helix.yaml
  helix config --format toml
  helix config --gravity moon`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCfgPath, "config", "", "Path to a module config")
	configCmd.Flags().StringVar(&flagCfgFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.Flags().StringVar(&flagCfgPreset, "gravity", "earth", "Gravity preset to apply: earth, moon, heavy")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagCfgFormat != "yaml" && flagCfgFormat != "toml" {
		fatal("unknown format %q (want yaml or toml)", flagCfgFormat)
	}
	preset, err := config.ParseGravityPreset(flagCfgPreset)
	if err != nil {
		fatal("%v", err)
	}

	cfg, err := config.Load(flagCfgPath)
	if err != nil {
		fatal("%v", err)
	}
	config.ApplyGravityPreset(&cfg, preset)

	source := config.Resolve(flagCfgPath)
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", source)

	if err := config.Write(os.Stdout, cfg, flagCfgFormat); err != nil {
		fatal("%v", err)
	}
}
