package cmd

import (
	"github.com/spf13/cobra"
)

var pluginRoot string

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Play themed sound cues for hook events",
	Long: `Plays a sound for an editor hook event from the theme configured in
.claude/rt-voice.toml. Themes live under <plugin-root>/themes.`,
}

func init() {
	voiceCmd.PersistentFlags().StringVar(&pluginRoot, "plugin-root", "",
		"directory holding themes/ (default $CLAUDE_PLUGIN_ROOT)")
	rootCmd.AddCommand(voiceCmd)
}
