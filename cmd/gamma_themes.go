package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zjrosen/rtkit/internal/gamma"
	"github.com/zjrosen/rtkit/internal/generation"
	"github.com/zjrosen/rtkit/internal/log"
	"github.com/zjrosen/rtkit/internal/paths"
)

var gammaThemesJSON bool

var gammaThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the Gamma themes available to your workspace",
	Long:  `Lists standard and custom themes. Use a theme's ID as 'theme' in rt-gamma.toml.`,
	Args:  cobra.NoArgs,
	RunE:  runGammaThemes,
}

func init() {
	gammaThemesCmd.Flags().BoolVar(&gammaThemesJSON, "json", false, "print themes as JSON")
	gammaCmd.AddCommand(gammaThemesCmd)
}

// themesResult is the JSON shape printed with --json.
type themesResult struct {
	Success bool          `json:"success"`
	Themes  []gamma.Theme `json:"themes"`
}

func runGammaThemes(cmd *cobra.Command, _ []string) error {
	themes, err := fetchThemes(cmd)
	if err != nil {
		log.ErrorErr(log.CatGamma, "Listing themes failed", err)
		if gammaThemesJSON {
			return reportFailure(cmd, err.Error())
		}
		return err
	}

	if gammaThemesJSON {
		return writeJSON(cmd.OutOrStdout(), themesResult{Success: true, Themes: themes}, true)
	}

	rows := lo.Map(themes, func(t gamma.Theme, _ int) listRow {
		detail := t.Name
		if t.Type != "" {
			detail += dimStyle.Render(" (" + t.Type + ")")
		}
		if len(t.ColorKeywords) > 0 {
			detail += dimStyle.Render("  " + strings.Join(t.ColorKeywords, ", "))
		}
		return listRow{name: t.ID, detail: detail}
	})

	out := cmd.OutOrStdout()
	printList(out, "Available Gamma themes:", rows, "(none)")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Use in .claude/rt-gamma.toml:")
	_, _ = fmt.Fprintln(out, `  theme = "<id>"`)
	return nil
}

func fetchThemes(cmd *cobra.Command) ([]gamma.Theme, error) {
	loadDotEnv()
	cfg, err := generation.LoadConfig(paths.GammaConfigPath(projectRoot))
	if err != nil {
		return nil, err
	}

	client, err := gamma.NewClient(cfg.APIKey, gamma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, err
	}
	themes, err := client.ListThemes(cmd.Context())
	if err != nil {
		return nil, err
	}
	if themes == nil {
		themes = []gamma.Theme{}
	}
	return themes, nil
}
