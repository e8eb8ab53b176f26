package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/generation"
)

var gammaCmd = &cobra.Command{
	Use:   "gamma",
	Short: "Generate Gamma presentations from markdown",
	Long: `Generate hosted Gamma presentations from markdown files.

Settings are read from .claude/rt-gamma.toml in the project root. Run
'rt gamma init' to create it, then set api_key.`,
}

// newGammaAPI builds the vendor client; tests swap it for a fake.
var newGammaAPI generation.APIFactory = generation.NewGammaAPI

// generationOptions tune the poll loop; tests shorten the interval.
var generationOptions []generation.Option

func init() {
	rootCmd.AddCommand(gammaCmd)
}
