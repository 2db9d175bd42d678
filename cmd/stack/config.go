package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stack/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective stack configuration",
	Long: `Print the configuration the game would load, as YAML.

Search order: --config, ~/.stack/configs/stack.yaml, ./configs/stack.yaml,
then the built-in defaults. --difficulty is applied on top.

Examples:
  stack config
  stack config --defaults > ~/.stack/configs/stack.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagConfigDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, src, err := config.LoadStack(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, parseErr := config.ParsePreset(flagDifficulty)
		if parseErr != nil {
			return parseErr
		}
		config.ApplyStackPreset(&cfg, preset)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "# source: %s\n", src)
	_, err = out.Write(data)
	return err
}
