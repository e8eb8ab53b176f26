// Package paths resolves the project-relative locations rt reads and writes.
package paths

import (
	"os"
	"path/filepath"
)

// SettingsDirName is the per-project directory holding rt settings files.
const SettingsDirName = ".claude"

const (
	gammaConfigFile = "rt-gamma.toml"
	voiceConfigFile = "rt-voice.toml"
	debugLogFile    = "rt-debug.log"
)

// FindProjectRoot walks up from start looking for a directory that contains
// a .claude directory. Returns start (cleaned) when no ancestor has one.
func FindProjectRoot(start string) string {
	start = filepath.Clean(start)
	for dir := start; ; {
		if info, err := os.Stat(filepath.Join(dir, SettingsDirName)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// ProjectRoot returns FindProjectRoot for the current working directory,
// or "." if the working directory cannot be determined.
func ProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return FindProjectRoot(cwd)
}

// GammaConfigPath returns the presentation generator settings file for root.
func GammaConfigPath(root string) string {
	return filepath.Join(root, SettingsDirName, gammaConfigFile)
}

// VoiceConfigPath returns the sound player settings file for root.
func VoiceConfigPath(root string) string {
	return filepath.Join(root, SettingsDirName, voiceConfigFile)
}

// DebugLogPath returns the log file used when --debug is set.
func DebugLogPath(root string) string {
	return filepath.Join(root, SettingsDirName, debugLogFile)
}

// DotEnvPath returns the optional .env file in the project root.
func DotEnvPath(root string) string {
	return filepath.Join(root, ".env")
}

// PluginRoot resolves the directory holding sound themes. An explicit value
// wins, then the CLAUDE_PLUGIN_ROOT environment variable, then the parent of
// the directory containing the running executable.
func PluginRoot(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("CLAUDE_PLUGIN_ROOT"); env != "" {
		return env
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}
