package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/cli/styles"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	return render(cmd, app.BuildInfo, func(*styles.ResultRenderer) string {
		return styles.NewAboutRenderer(app.Theme).Render(app.BuildInfo)
	})
}
