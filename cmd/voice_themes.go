package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/paths"
	"github.com/zjrosen/rtkit/internal/sound"
)

var voiceThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List installed sound themes and their events",
	Args:  cobra.NoArgs,
	RunE:  runVoiceThemes,
}

func init() {
	voiceCmd.AddCommand(voiceThemesCmd)
}

func runVoiceThemes(cmd *cobra.Command, _ []string) error {
	resolver := sound.NewResolver(paths.PluginRoot(pluginRoot))
	themes, err := resolver.Themes()
	if err != nil {
		return fmt.Errorf("listing themes: %w", err)
	}

	cfg, err := config.LoadVoice(paths.VoiceConfigPath(projectRoot))
	if err != nil {
		return err
	}

	rows := lo.Map(themes, func(t sound.Theme, _ int) listRow {
		name := t.Name
		if name == cfg.Theme {
			name += " *"
		}
		events := strings.Join(t.Events, ", ")
		if events == "" {
			events = dimStyle.Render("(no sounds)")
		}
		return listRow{name: name, detail: events}
	})

	out := cmd.OutOrStdout()
	printList(out, "Sound themes in "+resolver.ThemesDir()+":", rows, "(none installed)")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "Active theme: %s (enabled: %t, volume: %.2f)\n", cfg.Theme, cfg.Enabled, cfg.Volume)
	return nil
}
