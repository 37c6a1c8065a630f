package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/application/port"
	"github.com/bnema/urlkit/internal/infrastructure/config"
	xdgadapter "github.com/bnema/urlkit/internal/infrastructure/xdg"
)

var xdgPaths port.XDGPaths = xdgadapter.New()

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Show the effective configuration, its JSON schema, or write a default
config file to $XDG_CONFIG_HOME/urlkit/config.toml.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML (or JSON with --json)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigSchema,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSchemaCmd, configInitCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()

	if useJSON(cmd) {
		return render(cmd, app.Config, nil)
	}

	data, err := config.EncodeTOML(app.Config)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), app.Renderer.ConfigPath(app.ConfigFile))
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	data, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	app := GetApp()

	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		path, err = xdgPaths.ConfigFile()
		if err != nil {
			return err
		}
	}

	if err := config.WriteConfigOrdered(config.DefaultConfig(), path, configForce); err != nil {
		return err
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), app.Renderer.ConfigPath(path))
	return err
}
