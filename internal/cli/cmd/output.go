package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/cli/styles"
)

// flagBool returns the flag value when it was given on the command line
// and fallback otherwise.
func flagBool(cmd *cobra.Command, name string, fallback bool) bool {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return fallback
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback
	}
	return v
}

func useJSON(cmd *cobra.Command) bool {
	return flagBool(cmd, "json", GetApp().Config.Output.JSON)
}

func useASCII(cmd *cobra.Command) bool {
	return flagBool(cmd, "ascii", GetApp().Config.Output.ASCII)
}

// render writes data as indented JSON with --json, or text otherwise.
func render(cmd *cobra.Command, data any, text func(r *styles.ResultRenderer) string) error {
	out := cmd.OutOrStdout()
	if useJSON(cmd) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	_, err := fmt.Fprintln(out, text(GetApp().Renderer))
	return err
}

// argsOrStdin returns args, or the non-empty lines of stdin when args is
// empty. Lines starting with # are skipped.
func argsOrStdin(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
