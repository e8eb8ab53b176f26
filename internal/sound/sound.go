// Package sound plays short audio cues for editor hook events.
//
// Nothing in this package reports failure to its caller: a missing theme,
// absent player or broken file is logged at debug level and ignored so the
// host tool is never interrupted.
package sound

import (
	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/log"
)

// SoundService plays the cue for an event. Implementations handle all errors
// internally.
type SoundService interface {
	Play(event string)
}

// NoopService is a SoundService that does nothing.
type NoopService struct{}

// Play does nothing.
func (NoopService) Play(string) {}

// Service resolves events against the configured theme and plays them.
type Service struct {
	configPath string
	resolver   *Resolver
	player     *Player
}

// NewService creates a service that reads settings from configPath on every
// Play and looks for themes under pluginRoot.
func NewService(configPath, pluginRoot string) *Service {
	return &Service{
		configPath: configPath,
		resolver:   NewResolver(pluginRoot),
		player:     NewPlayer(),
	}
}

// Play plays the sound for event if sounds are enabled and the theme has
// one. It blocks until playback ends.
func (s *Service) Play(event string) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug(log.CatSound, "Recovered from panic during playback", "event", event, "panic", r)
		}
	}()

	cfg, err := config.LoadVoice(s.configPath)
	if err != nil {
		log.Debug(log.CatSound, "Using default voice config", "path", s.configPath, "error", err)
	}
	if !cfg.Enabled {
		log.Debug(log.CatSound, "Sounds disabled by config", "event", event)
		return
	}

	file, ok := s.resolver.Find(cfg.Theme, event)
	if !ok {
		log.Debug(log.CatSound, "No sound for event", "event", event, "theme", cfg.Theme)
		return
	}

	s.player.Play(file, cfg.Volume)
}
