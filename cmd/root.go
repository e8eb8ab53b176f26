// Package cmd implements the rt command line.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/log"
	"github.com/zjrosen/rtkit/internal/paths"
)

var (
	debug       bool
	projectRoot string
	logCleanup  func()
)

// errReported signals a failure whose output has already been written, so
// Execute only sets the exit code.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   "rt",
	Short: "Presentation generation and sound cues for Claude Code projects",
	Long: `rt turns markdown files into Gamma presentations and plays themed sound
cues for editor hook events. Settings live in the project's .claude directory.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs to .claude/rt-debug.log")
}

func setup(cmd *cobra.Command, _ []string) error {
	projectRoot = paths.ProjectRoot()

	if debug && logCleanup == nil {
		cleanup, err := log.Init(paths.DebugLogPath(projectRoot))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: debug log disabled: %v\n", err)
			return nil
		}
		logCleanup = cleanup
	}

	log.Debug(log.CatCLI, "Command started", "command", cmd.CommandPath(), "root", projectRoot)
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// loadDotEnv makes credentials in the project's .env visible to config
// loading. Problems are logged and otherwise ignored.
func loadDotEnv() {
	if err := config.LoadDotEnv(paths.DotEnvPath(projectRoot)); err != nil {
		log.Warn(log.CatConfig, "Ignoring .env file", "error", err)
	}
}

// writeJSON encodes v to w, indented when indent is set.
func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// failure is the JSON shape printed for errors outside the workflow.
type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// reportFailure prints msg as a JSON failure and returns errReported.
func reportFailure(cmd *cobra.Command, msg string) error {
	if err := writeJSON(cmd.OutOrStdout(), failure{Error: msg}, false); err != nil {
		return err
	}
	return errReported
}
