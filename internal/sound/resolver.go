package sound

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Formats lists the playable extensions in lookup order.
var Formats = []string{".mp3", ".wav", ".ogg"}

// ThemesDirName is the directory under the plugin root holding sound themes.
const ThemesDirName = "themes"

// Resolver maps an event to a sound file inside a theme.
//
// A theme is a directory under <root>/themes. An event resolves to a random
// file from the theme's <event>/ folder when that folder exists, otherwise to
// <event>.mp3, <event>.wav or <event>.ogg in the theme directory.
type Resolver struct {
	root string
	pick func(n int) int
}

// NewResolver creates a resolver for the themes under pluginRoot.
func NewResolver(pluginRoot string) *Resolver {
	return &Resolver{
		root: pluginRoot,
		pick: rand.IntN, //nolint:gosec // variety, not security
	}
}

// ThemesDir returns the directory holding all themes.
func (r *Resolver) ThemesDir() string {
	return filepath.Join(r.root, ThemesDirName)
}

// Find returns the sound file for event in theme. The second result is false
// when nothing matches.
func (r *Resolver) Find(theme, event string) (string, bool) {
	if !validName(theme) || !validName(event) {
		return "", false
	}
	themeDir := filepath.Join(r.ThemesDir(), theme)

	eventDir := filepath.Join(themeDir, event)
	if info, err := os.Stat(eventDir); err == nil && info.IsDir() {
		files := soundFiles(eventDir)
		if len(files) == 0 {
			return "", false
		}
		return files[r.pick(len(files))], true
	}

	for _, ext := range Formats {
		p := filepath.Join(themeDir, event+ext)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Theme is an installed sound theme and the events it provides.
type Theme struct {
	Name   string
	Events []string
}

// Themes lists the installed themes sorted by name. A missing themes
// directory yields no themes.
func (r *Resolver) Themes() ([]Theme, error) {
	entries, err := os.ReadDir(r.ThemesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var themes []Theme
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		themes = append(themes, Theme{
			Name:   e.Name(),
			Events: themeEvents(filepath.Join(r.ThemesDir(), e.Name())),
		})
	}
	return themes, nil
}

// themeEvents returns the event names a theme directory provides.
func themeEvents(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var events []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			if len(soundFiles(filepath.Join(dir, e.Name()))) > 0 {
				events = append(events, e.Name())
			}
		case isSoundFile(e.Name()):
			events = append(events, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		}
	}
	events = lo.Uniq(events)
	sort.Strings(events)
	return events
}

// soundFiles returns the playable regular files directly inside dir, sorted.
func soundFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if !e.Type().IsRegular() || !isSoundFile(e.Name()) {
			return "", false
		}
		return filepath.Join(dir, e.Name()), true
	})
	sort.Strings(files)
	return files
}

func isSoundFile(name string) bool {
	return lo.Contains(Formats, strings.ToLower(filepath.Ext(name)))
}

// validName rejects names that would escape the theme directory.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
