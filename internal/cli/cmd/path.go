package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/application/port"
	"github.com/bnema/urlkit/internal/application/usecase"
	"github.com/bnema/urlkit/internal/cli/styles"
	"github.com/bnema/urlkit/internal/domain/path"
)

var (
	pathURLStyle bool
	pathLevels   int
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Normalize and navigate slash-separated paths",
}

var pathNormalizeCmd = &cobra.Command{
	Use:   "normalize <path>...",
	Short: "Resolve . and .. segments and collapse slashes",
	Long: `Resolve . and .. segments and collapse repeated slashes.

With --url the URL path rules apply: every "." is dropped and a trailing
slash is kept.

Examples:
  urlkit path normalize /var//www/./site/   # /var/www/site
  urlkit path normalize ./../               # ./..
  urlkit path normalize --url path/./       # path/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPathNormalize,
}

var pathInfoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show a normalized path and its file, name and extension",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathInfo,
}

var pathParentCmd = &cobra.Command{
	Use:   "parent <path>",
	Short: "Go up one or more directories",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathParent,
}

var pathChildCmd = &cobra.Command{
	Use:   "child <path> <relative>",
	Short: "Join a relative path below a path",
	Args:  cobra.ExactArgs(2),
	RunE:  runPathChild,
}

var pathAbsCmd = &cobra.Command{
	Use:   "abs <path>",
	Short: "Resolve a path on the filesystem, following symlinks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathAbs,
}

func init() {
	rootCmd.AddCommand(pathCmd)
	pathCmd.AddCommand(pathNormalizeCmd, pathInfoCmd, pathParentCmd, pathChildCmd, pathAbsCmd)
	pathNormalizeCmd.Flags().BoolVar(&pathURLStyle, "url", false, "apply URL path rules")
	pathParentCmd.Flags().IntVarP(&pathLevels, "levels", "n", 1, "number of directories to go up")
}

type pathResult struct {
	Input    string `json:"input"`
	Path     string `json:"path"`
	File     string `json:"file,omitempty"`
	Name     string `json:"name,omitempty"`
	Ext      string `json:"ext,omitempty"`
	Absolute bool   `json:"absolute"`
	RealPath string `json:"real_path,omitempty"`
}

func newPathResult(input string, out *usecase.ResolvePathOutput) pathResult {
	return pathResult{
		Input:    input,
		Path:     out.Info.Path(),
		File:     out.Info.File(),
		Name:     out.Info.Name(),
		Ext:      out.Info.Ext(),
		Absolute: out.Info.IsAbsolute(),
		RealPath: out.RealPath,
	}
}

func (p pathResult) fields() []styles.Field {
	fields := []styles.Field{
		{Key: "path", Value: p.Path},
		{Key: "file", Value: p.File},
		{Key: "name", Value: p.Name},
		{Key: "ext", Value: p.Ext},
		{Key: "absolute", Value: strconv.FormatBool(p.Absolute)},
	}
	if p.RealPath != "" {
		fields = append(fields, styles.Field{Key: "real path", Value: p.RealPath})
	}
	return fields
}

func runPathNormalize(cmd *cobra.Command, args []string) error {
	normalize := path.Normalize
	if pathURLStyle {
		normalize = path.NormalizeURL
	}

	results := make([]pathResult, len(args))
	normalized := make([]string, len(args))
	for i, arg := range args {
		normalized[i] = normalize(arg)
		results[i] = pathResult{Input: arg, Path: normalized[i], Absolute: path.IsAbsolute(normalized[i])}
	}

	return render(cmd, results, func(r *styles.ResultRenderer) string {
		return r.List(normalized)
	})
}

func resolvePath(cmd *cobra.Command, input usecase.ResolvePathInput) (pathResult, error) {
	app := GetApp()
	out, err := app.ResolvePathUC.Execute(cmd.Context(), input)
	if err != nil {
		return pathResult{}, err
	}
	return newPathResult(input.Path, out), nil
}

func runPathInfo(cmd *cobra.Command, args []string) error {
	res, err := resolvePath(cmd, usecase.ResolvePathInput{Path: args[0]})
	if err != nil {
		return err
	}
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.Fields(res.fields())
	})
}

func runPathParent(cmd *cobra.Command, args []string) error {
	res, err := resolvePath(cmd, usecase.ResolvePathInput{Path: args[0], Levels: pathLevels})
	if err != nil {
		return err
	}
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.List([]string{res.Path})
	})
}

func runPathChild(cmd *cobra.Command, args []string) error {
	res, err := resolvePath(cmd, usecase.ResolvePathInput{Path: args[0], Child: args[1]})
	if err != nil {
		return err
	}
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.List([]string{res.Path})
	})
}

func runPathAbs(cmd *cobra.Command, args []string) error {
	app := GetApp()
	out, err := app.ResolvePathUC.Execute(cmd.Context(), usecase.ResolvePathInput{Path: args[0], Absolute: true})
	if err != nil {
		return err
	}
	if !out.Resolved {
		return fmt.Errorf("%s: %w", args[0], port.ErrPathNotFound)
	}

	res := newPathResult(args[0], out)
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.List([]string{res.RealPath})
	})
}
