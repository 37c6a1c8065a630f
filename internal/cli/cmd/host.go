package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/cli/styles"
	"github.com/bnema/urlkit/internal/domain/host"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Normalize and compare domain names",
}

var hostNormalizeCmd = &cobra.Command{
	Use:   "normalize <host>...",
	Short: "Extract and normalize the host of a domain or URL",
	Long: `Extract the host from a domain, "host:port" or URL and normalize it:
lower-cased, punycode decoded to Unicode, empty labels removed.

Examples:
  urlkit host normalize "HTTP://Site.RU:8080/path"   # site.ru
  urlkit host normalize xn--80aswg.xn--p1ai          # сайт.рф
  urlkit host normalize --ascii сайт.рф              # xn--80aswg.xn--p1ai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHostNormalize,
}

var hostASCIICmd = &cobra.Command{
	Use:   "ascii <host>...",
	Short: "Convert hosts to punycode",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHostConvert(cmd, args, host.ToASCII)
	},
}

var hostUnicodeCmd = &cobra.Command{
	Use:   "unicode <host>...",
	Short: "Convert punycode hosts to Unicode",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHostConvert(cmd, args, host.ToUnicode)
	},
}

var hostRelatedCmd = &cobra.Command{
	Use:   "related <a> <b>",
	Short: "Check whether one host is the other or a subdomain of it",
	Args:  cobra.ExactArgs(2),
	RunE:  runHostRelated,
}

var hostSubdomainCmd = &cobra.Command{
	Use:   "subdomain <domain> <parent>",
	Short: "Show the subdomain part of domain below parent",
	Args:  cobra.ExactArgs(2),
	RunE:  runHostSubdomain,
}

func init() {
	rootCmd.AddCommand(hostCmd)
	hostCmd.AddCommand(hostNormalizeCmd, hostASCIICmd, hostUnicodeCmd, hostRelatedCmd, hostSubdomainCmd)
}

type hostResult struct {
	Input string `json:"input"`
	Host  string `json:"host,omitempty"`
	Error string `json:"error,omitempty"`
	err   error
}

func renderHosts(cmd *cobra.Command, results []hostResult) error {
	return render(cmd, results, func(r *styles.ResultRenderer) string {
		from := make([]string, len(results))
		to := make([]string, len(results))
		errs := make([]error, len(results))
		for i, res := range results {
			from[i], to[i], errs[i] = res.Input, res.Host, res.err
		}
		return r.Mapping(from, to, errs)
	})
}

func runHostNormalize(cmd *cobra.Command, args []string) error {
	ascii := useASCII(cmd)

	results := make([]hostResult, len(args))
	for i, arg := range args {
		h, err := host.Normalize(arg)
		if err == nil && ascii {
			h, err = host.ToASCII(h)
		}
		results[i] = hostResult{Input: arg, Host: h, Error: errString(err), err: err}
	}
	return renderHosts(cmd, results)
}

func runHostConvert(cmd *cobra.Command, args []string, convert func(string) (string, error)) error {
	results := make([]hostResult, len(args))
	for i, arg := range args {
		h, err := convert(arg)
		results[i] = hostResult{Input: arg, Host: h, Error: errString(err), err: err}
	}
	return renderHosts(cmd, results)
}

type relatedResult struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Related bool   `json:"related"`
}

func runHostRelated(cmd *cobra.Command, args []string) error {
	related, err := host.IsRelated(args[0], args[1])
	if err != nil {
		return err
	}

	res := relatedResult{A: args[0], B: args[1], Related: related}
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.Verdict(args[0]+" ~ "+args[1], related)
	})
}

type subdomainResult struct {
	Domain      string `json:"domain"`
	Parent      string `json:"parent"`
	IsSubdomain bool   `json:"is_subdomain"`
	Subdomain   string `json:"subdomain"`
}

func runHostSubdomain(cmd *cobra.Command, args []string) error {
	name, ok, err := host.Subdomain(args[0], args[1])
	if err != nil {
		return err
	}

	res := subdomainResult{Domain: args[0], Parent: args[1], IsSubdomain: ok, Subdomain: name}
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.Fields([]styles.Field{
			{Key: "subdomain", Value: strconv.FormatBool(ok)},
			{Key: "name", Value: name},
		})
	})
}
