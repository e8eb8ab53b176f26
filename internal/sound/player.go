package sound

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/rtkit/internal/log"
)

// maxPlayDuration bounds a single playback so a wedged player cannot hang a
// hook.
const maxPlayDuration = 30 * time.Second

// playerCommand is one OS audio player and how to invoke it.
type playerCommand struct {
	name string
	path string
	args func(file string, volume float64) []string
}

// Player plays sound files through OS-native audio commands.
type Player struct {
	commands []playerCommand
	run      func(ctx context.Context, name string, args ...string) error
}

// NewPlayer detects the audio players available on this platform.
func NewPlayer() *Player {
	p := &Player{
		commands: detectPlayers(runtime.GOOS, exec.LookPath),
		run:      runCommand,
	}
	log.Debug(log.CatSound, "Sound player initialized",
		"platform", runtime.GOOS,
		"players", len(p.commands),
	)
	return p
}

// Available reports whether any audio player was found.
func (p *Player) Available() bool {
	return len(p.commands) > 0
}

// Play plays file at volume (0.0 - 1.0), trying each detected player in
// order until one succeeds. It blocks until playback ends. Failures are
// logged and reported as false.
func (p *Player) Play(file string, volume float64) bool {
	if !p.Available() {
		log.Debug(log.CatSound, "No audio player available", "file", file)
		return false
	}

	for _, c := range p.commands {
		ctx, cancel := context.WithTimeout(context.Background(), maxPlayDuration)
		err := p.run(ctx, c.path, c.args(file, volume)...)
		cancel()
		if err == nil {
			log.Debug(log.CatSound, "Played sound", "file", file, "player", c.name)
			return true
		}
		log.Debug(log.CatSound, "Audio playback failed", "file", file, "player", c.name, "error", err)
	}
	return false
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run() //nolint:gosec // name resolved via LookPath
}

// detectPlayers returns the players for goos that lookPath can find, in
// preference order.
func detectPlayers(goos string, lookPath func(string) (string, error)) []playerCommand {
	var candidates []playerCommand
	switch goos {
	case "darwin":
		candidates = []playerCommand{
			{name: "afplay", args: func(f string, v float64) []string {
				return []string{"-v", formatVolume(v), f}
			}},
		}
	case "windows":
		candidates = []playerCommand{
			{name: "powershell.exe", args: func(f string, v float64) []string {
				return []string{"-NoProfile", "-NonInteractive", "-c", mediaPlayerScript(f, v)}
			}},
		}
	default:
		candidates = []playerCommand{
			{name: "paplay", args: func(f string, v float64) []string {
				return []string{"--volume=" + strconv.Itoa(int(v*65536)), f}
			}},
			{name: "mpg123", args: func(f string, v float64) []string {
				return []string{"-q", "-f", strconv.Itoa(int(v * 32768)), f}
			}},
			{name: "ffplay", args: func(f string, v float64) []string {
				return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", strconv.Itoa(int(v * 100)), f}
			}},
			{name: "aplay", args: func(f string, _ float64) []string {
				return []string{"-q", f}
			}},
		}
	}

	var found []playerCommand
	for _, c := range candidates {
		path, err := lookPath(c.name)
		if err != nil {
			continue
		}
		c.path = path
		found = append(found, c)
	}
	return found
}

func formatVolume(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// mediaPlayerScript plays file through WPF's MediaPlayer, which handles mp3
// and supports volume, and waits for it to finish.
func mediaPlayerScript(file string, volume float64) string {
	quoted := "'" + strings.ReplaceAll(file, "'", "''") + "'"
	return fmt.Sprintf(`Add-Type -AssemblyName PresentationCore; `+
		`$p = New-Object System.Windows.Media.MediaPlayer; `+
		`$p.Volume = %s; $p.Open([uri]%s); $p.Play(); `+
		`$i = 0; while (-not $p.NaturalDuration.HasTimeSpan -and $i -lt 50) { Start-Sleep -Milliseconds 100; $i++ }; `+
		`if ($p.NaturalDuration.HasTimeSpan) { Start-Sleep -Milliseconds ([int]$p.NaturalDuration.TimeSpan.TotalMilliseconds) }; `+
		`$p.Close()`, formatVolume(volume), quoted)
}
