package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/generation"
	"github.com/zjrosen/rtkit/internal/paths"
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Generate presentations for every pending file in a directory",
	Long: `Walks the directory recursively for files matching batch_pattern that do
not yet have an .html redirect, and generates them one at a time. Prints a
summary as JSON.`,
	RunE: runBatch,
}

func init() {
	gammaCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return reportFailure(cmd, "Usage: rt gamma batch <directory>")
	}

	loadDotEnv()
	sum := generation.GenerateBatch(cmd.Context(), paths.GammaConfigPath(projectRoot), args[0],
		newGammaAPI, generationOptions...)

	if err := writeJSON(cmd.OutOrStdout(), sum, true); err != nil {
		return err
	}
	if !sum.Success {
		return errReported
	}
	return nil
}
