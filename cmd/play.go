package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/log"
	"github.com/zjrosen/rtkit/internal/paths"
	"github.com/zjrosen/rtkit/internal/sound"
)

// newSoundService builds the player; tests swap it to avoid real audio.
var newSoundService = func(configPath, root string) sound.SoundService {
	return sound.NewService(configPath, root)
}

var playCmd = &cobra.Command{
	Use:   "play <event>",
	Short: "Play the sound for an event",
	Long: `Plays the configured theme's sound for the event. Prints nothing and
always exits 0 so a hook is never interrupted.`,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	Run:                runPlay,
}

func init() {
	voiceCmd.AddCommand(playCmd)
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) < 1 {
		log.Debug(log.CatSound, "No event given")
		return
	}
	root := paths.PluginRoot(pluginRoot)
	newSoundService(paths.VoiceConfigPath(projectRoot), root).Play(args[0])
}
