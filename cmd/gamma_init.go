package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/paths"
)

var gammaInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .claude/rt-gamma.toml with default settings",
	Long:  `Creates the presentation generator settings file in the project's .claude directory.`,
	Args:  cobra.NoArgs,
	RunE:  runGammaInit,
}

func init() {
	gammaCmd.AddCommand(gammaInitCmd)
}

func runGammaInit(cmd *cobra.Command, _ []string) error {
	configPath := paths.GammaConfigPath(projectRoot)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := config.WriteDefaultConfig(configPath, config.DefaultGammaTemplate()); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Created %s\n", configPath)
	_, _ = fmt.Fprintln(out, "Set api_key (or RT_GAMMA_API_KEY) before generating.")
	return nil
}
