package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/generation"
	"github.com/zjrosen/rtkit/internal/paths"
)

var generateCmd = &cobra.Command{
	Use:   "generate <markdown-file>",
	Short: "Generate a presentation from one markdown file",
	Long: `Submits the markdown file to Gamma, waits for the presentation and writes
an HTML redirect beside the source. Prints the result as JSON.`,
	RunE: runGenerate,
}

func init() {
	gammaCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return reportFailure(cmd, "Usage: rt gamma generate <markdown-file>")
	}

	loadDotEnv()
	res := generation.GenerateFile(cmd.Context(), paths.GammaConfigPath(projectRoot), args[0],
		newGammaAPI, generationOptions...)

	if err := writeJSON(cmd.OutOrStdout(), res, false); err != nil {
		return err
	}
	if !res.Success {
		return errReported
	}
	return nil
}
