package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/paths"
)

var voiceInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .claude/rt-voice.toml with default settings",
	Args:  cobra.NoArgs,
	RunE:  runVoiceInit,
}

func init() {
	voiceCmd.AddCommand(voiceInitCmd)
}

func runVoiceInit(cmd *cobra.Command, _ []string) error {
	configPath := paths.VoiceConfigPath(projectRoot)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := config.WriteDefaultConfig(configPath, config.DefaultVoiceTemplate()); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
