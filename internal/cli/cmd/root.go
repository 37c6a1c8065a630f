// Package cmd provides Cobra CLI commands for urlkit.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/cli"
	"github.com/bnema/urlkit/internal/domain/build"
	"github.com/bnema/urlkit/internal/logging"
)

var (
	app       *cli.App
	buildInfo build.Info

	configFile  string
	jsonOutput  bool
	asciiOutput bool

	rootCmd = &cobra.Command{
		Use:   "urlkit",
		Short: "Normalize, compare and resolve URLs, hosts, paths and query strings",
		Long: `urlkit - canonical forms for URLs and their parts.

Every value is normalized before it is printed or compared:
  - paths have "." and ".." segments resolved and duplicate slashes removed
  - query strings are decoded into nested keys and sorted at every level
  - hosts are lower-cased and converted between Unicode and punycode
  - URLs combine the three and can be resolved against a base

Defaults for output and comparison flags come from
$XDG_CONFIG_HOME/urlkit/config.toml and URLKIT_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", cobra.ShellCompRequestCmd:
				return nil
			}

			var err error
			app, err = cli.NewApp(cmd.Context(), cli.Options{
				ConfigFile: configFile,
				Out:        cmd.OutOrStdout(),
				LogOutput:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			cmd.SetContext(logging.WithComponent(app.Ctx(), cmd.CommandPath()))
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/urlkit/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON (default from output.json)")
	rootCmd.PersistentFlags().BoolVar(&asciiOutput, "ascii", false, "print hosts in punycode (default from output.ascii)")
}

// Execute runs the root command.
func Execute(ctx context.Context) {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return
	}

	if app != nil {
		logCtx := logging.With(app.Ctx(), map[string]any{
			"command": cmd.CommandPath(),
			"args":    cmd.Flags().Args(),
		})
		logging.FromContext(logCtx).Debug().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, app.Renderer.Error(err))
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
