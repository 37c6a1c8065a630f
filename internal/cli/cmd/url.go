package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/application/usecase"
	"github.com/bnema/urlkit/internal/cli/styles"
	"github.com/bnema/urlkit/internal/domain/url"
)

var (
	urlBase          string
	urlWorkers       int
	urlSubdomains    bool
	urlSubpath       bool
	urlStripTracking bool
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Parse, resolve and compare URLs",
}

var urlParseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Show the normalized parts of a URL",
	Long: `Show the normalized parts of a URL: lower-case scheme, Unicode host,
resolved path and sorted query.

Example:
  urlkit url parse "HTTP://User@Site.RU:80/a/./b/../c?b=2&a=1#top"`,
	Args: cobra.ExactArgs(1),
	RunE: runURLParse,
}

var urlResolveCmd = &cobra.Command{
	Use:   "resolve --base <url> [ref...]",
	Short: "Resolve references against a base URL",
	Long: `Resolve references against a base URL. References are read from stdin,
one per line, when none are given as arguments.

Example:
  urlkit url resolve --base https://site.ru/docs/index.html ../img/a.png ?page=2`,
	RunE: runURLResolve,
}

var urlSameSiteCmd = &cobra.Command{
	Use:   "same-site <a> <b>",
	Short: "Check whether two URLs point to the same site",
	Args:  cobra.ExactArgs(2),
	RunE:  runURLSameSite,
}

var urlRobotsCmd = &cobra.Command{
	Use:   "robots <url> <mask>...",
	Short: "Match a URL against robots.txt path rules",
	Long: `Match the request URI of a URL against robots.txt path rules.
"*" matches any sequence and a trailing "$" anchors the end.

Example:
  urlkit url robots https://site.ru/private/a.php "/private/*.php$" /public`,
	Args: cobra.MinimumNArgs(2),
	RunE: runURLRobots,
}

var urlCanonicalCmd = &cobra.Command{
	Use:   "canonical <request-uri> <canonical-url>",
	Short: "Decide whether a request must redirect to its canonical URL",
	Long: `Compare a request URI with its canonical URL. Tracking parameters such
as utm_source are ignored for the comparison and kept on the redirect
target.

Example:
  urlkit url canonical "/item?b=2&a=1&utm_source=mail" https://shop.ru/item?a=1&b=2`,
	Args: cobra.ExactArgs(2),
	RunE: runURLCanonical,
}

var urlDedupeCmd = &cobra.Command{
	Use:   "dedupe [url...]",
	Short: "Drop URLs that normalize to one already seen",
	Long: `Drop URLs that normalize to one already seen and print the rest in
normalized form, in input order. URLs are read from stdin, one per line,
when none are given as arguments.`,
	RunE: runURLDedupe,
}

func init() {
	rootCmd.AddCommand(urlCmd)
	urlCmd.AddCommand(urlParseCmd, urlResolveCmd, urlSameSiteCmd, urlRobotsCmd, urlCanonicalCmd, urlDedupeCmd)

	urlResolveCmd.Flags().StringVar(&urlBase, "base", "", "base URL (required)")
	urlResolveCmd.Flags().IntVar(&urlWorkers, "workers", 0, "parallel workers (default from batch.workers)")
	_ = urlResolveCmd.MarkFlagRequired("base")

	urlSameSiteCmd.Flags().BoolVar(&urlSubdomains, "subdomains", false, "accept subdomains (default from same_site.subdomains)")
	urlSameSiteCmd.Flags().BoolVar(&urlSubpath, "subpath", false, "require b below the path of a (default from same_site.subpath)")

	urlDedupeCmd.Flags().StringVar(&urlBase, "base", "", "resolve relative URLs against this base")
	urlDedupeCmd.Flags().BoolVar(&urlStripTracking, "strip-tracking", false, "ignore tracking parameters (default from query.strip_tracking)")
}

type urlResult struct {
	URL        string `json:"url"`
	ASCII      string `json:"ascii"`
	Absolute   bool   `json:"absolute"`
	HostInfo   string `json:"host_info,omitempty"`
	RequestURI string `json:"request_uri,omitempty"`
	// EffectivePort falls back to the default port of the scheme.
	EffectivePort int    `json:"effective_port,omitempty"`
	Fingerprint   string `json:"fingerprint"`
	url.Fields
}

func newURLResult(u *url.URL, ascii bool) urlResult {
	fields := u.Fields()
	fields.Scheme = u.Scheme()
	if ascii {
		fields.Host = u.HostASCII()
	}
	return urlResult{
		URL:           u.String(),
		ASCII:         u.ASCIIString(),
		Absolute:      u.IsAbsolute(),
		HostInfo:      u.HostInfo(ascii),
		RequestURI:    u.RequestURI(),
		EffectivePort: u.Port(),
		Fingerprint:   fmt.Sprintf("%016x", u.Fingerprint()),
		Fields:        fields,
	}
}

func (r urlResult) fields() []styles.Field {
	port := ""
	if r.EffectivePort != 0 {
		port = strconv.Itoa(r.EffectivePort)
	}
	q := ""
	if r.Query != nil {
		q = r.Query.String()
	}
	return []styles.Field{
		{Key: "url", Value: r.URL},
		{Key: "ascii", Value: r.ASCII},
		{Key: "scheme", Value: r.Scheme},
		{Key: "user", Value: r.User},
		{Key: "pass", Value: r.Pass},
		{Key: "host", Value: r.Host},
		{Key: "port", Value: port},
		{Key: "path", Value: r.Path},
		{Key: "query", Value: q},
		{Key: "fragment", Value: r.Fragment},
		{Key: "request uri", Value: r.RequestURI},
		{Key: "fingerprint", Value: r.Fingerprint},
	}
}

func runURLParse(cmd *cobra.Command, args []string) error {
	u, err := url.Parse(args[0])
	if err != nil {
		return err
	}

	res := newURLResult(u, useASCII(cmd))
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.Fields(res.fields())
	})
}

type resolveItem struct {
	Ref   string `json:"ref"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

func runURLResolve(cmd *cobra.Command, args []string) error {
	app := GetApp()

	refs, err := argsOrStdin(cmd, args)
	if err != nil {
		return err
	}

	uc := app.ResolveURLsUC
	if cmd.Flags().Changed("workers") {
		uc = usecase.NewResolveURLsUseCase(urlWorkers)
	}

	out, err := uc.Execute(cmd.Context(), usecase.ResolveURLsInput{
		Base:  urlBase,
		Refs:  refs,
		ASCII: useASCII(cmd),
	})
	if err != nil {
		return err
	}

	items := make([]resolveItem, len(out.Results))
	from := make([]string, len(out.Results))
	to := make([]string, len(out.Results))
	errs := make([]error, len(out.Results))
	for i, res := range out.Results {
		items[i] = resolveItem{Ref: res.Ref, URL: res.URL, Error: errString(res.Err)}
		from[i], to[i], errs[i] = res.Ref, res.URL, res.Err
	}

	return render(cmd, items, func(r *styles.ResultRenderer) string {
		text := r.Mapping(from, to, errs)
		if out.Failed > 0 {
			text += "\n" + r.Warning(fmt.Sprintf("%d of %d references failed", out.Failed, len(items)))
		}
		return text
	})
}

type sameSiteResult struct {
	A          string `json:"a"`
	B          string `json:"b"`
	Subdomains bool   `json:"subdomains"`
	Subpath    bool   `json:"subpath"`
	SameSite   bool   `json:"same_site"`
}

func runURLSameSite(cmd *cobra.Command, args []string) error {
	cfg := GetApp().Config

	a, err := url.Parse(args[0])
	if err != nil {
		return err
	}
	b, err := url.Parse(args[1])
	if err != nil {
		return err
	}

	opts := url.SameSiteOptions{
		Subdomains: flagBool(cmd, "subdomains", cfg.SameSite.Subdomains),
		Subpath:    flagBool(cmd, "subpath", cfg.SameSite.Subpath),
	}
	same, err := a.IsSameSite(b, opts)
	if err != nil {
		return err
	}

	res := sameSiteResult{A: a.String(), B: b.String(), Subdomains: opts.Subdomains, Subpath: opts.Subpath, SameSite: same}
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.Verdict("same site", same)
	})
}

type robotsResult struct {
	Mask  string `json:"mask"`
	Match bool   `json:"match"`
}

func runURLRobots(cmd *cobra.Command, args []string) error {
	u, err := url.Parse(args[0])
	if err != nil {
		return err
	}

	results := make([]robotsResult, 0, len(args)-1)
	for _, mask := range args[1:] {
		results = append(results, robotsResult{Mask: mask, Match: u.MatchRobotsMask(mask)})
	}

	return render(cmd, results, func(r *styles.ResultRenderer) string {
		lines := make([]string, len(results))
		for i, res := range results {
			lines[i] = r.Verdict(res.Mask, res.Match)
		}
		return r.List(lines)
	})
}

type canonicalResult struct {
	Current       string `json:"current"`
	Canonical     string `json:"canonical"`
	NeedsRedirect bool   `json:"needs_redirect"`
	Target        string `json:"target,omitempty"`
}

func runURLCanonical(cmd *cobra.Command, args []string) error {
	out, err := GetApp().CheckCanonicalUC.Execute(cmd.Context(), usecase.CheckCanonicalInput{
		RequestURI: args[0],
		Canonical:  args[1],
	})
	if err != nil {
		return err
	}

	res := canonicalResult{
		Current:       out.Current,
		Canonical:     out.Canonical,
		NeedsRedirect: out.NeedsRedirect,
		Target:        out.Target,
	}
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.Fields([]styles.Field{
			{Key: "current", Value: res.Current},
			{Key: "canonical", Value: res.Canonical},
			{Key: "redirect", Value: strconv.FormatBool(res.NeedsRedirect)},
			{Key: "target", Value: res.Target},
		})
	})
}

type dedupeResult struct {
	Unique     []string      `json:"unique"`
	Duplicates int           `json:"duplicates"`
	Invalid    []resolveItem `json:"invalid,omitempty"`
}

func runURLDedupe(cmd *cobra.Command, args []string) error {
	app := GetApp()

	urls, err := argsOrStdin(cmd, args)
	if err != nil {
		return err
	}

	out, err := app.DedupeURLsUC.Execute(cmd.Context(), usecase.DedupeURLsInput{
		URLs:          urls,
		Base:          urlBase,
		StripTracking: flagBool(cmd, "strip-tracking", app.Config.Query.StripTracking),
	})
	if err != nil {
		return err
	}

	res := dedupeResult{Unique: out.Unique, Duplicates: out.Duplicates}
	if res.Unique == nil {
		res.Unique = []string{}
	}
	for _, inv := range out.Invalid {
		res.Invalid = append(res.Invalid, resolveItem{Ref: inv.Raw, Error: errString(inv.Err)})
	}

	return render(cmd, res, func(r *styles.ResultRenderer) string {
		text := r.List(res.Unique)
		for _, inv := range out.Invalid {
			text += "\n" + r.Error(fmt.Errorf("%s: %w", inv.Raw, inv.Err))
		}
		return text + "\n" + r.Summary(
			fmt.Sprintf("%d unique", len(res.Unique)),
			fmt.Sprintf("%d duplicate", res.Duplicates),
			fmt.Sprintf("%d invalid", len(res.Invalid)),
		)
	})
}
