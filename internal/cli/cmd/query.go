package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/urlkit/internal/cli/styles"
	"github.com/bnema/urlkit/internal/domain/entity"
	"github.com/bnema/urlkit/internal/domain/query"
)

var queryIgnoreCase bool

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Parse, normalize and compare query strings",
	Long: `Parse, normalize and compare query strings.

Bracketed keys build nested values: "a[b][]=1&a[b][]=2" is a map "a"
holding a list "b". Normalization sorts keys at every level, so two
query strings with the same content normalize to the same text.`,
}

var queryNormalizeCmd = &cobra.Command{
	Use:   "normalize <query>",
	Short: "Sort keys at every level and rebuild the query string",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryNormalize,
}

var queryParseCmd = &cobra.Command{
	Use:   "parse <query>",
	Short: "Show the nested structure of a query string in input order",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryParse,
}

var queryBuildCmd = &cobra.Command{
	Use:   "build <json-object>",
	Short: "Build a query string from a JSON object",
	Long: `Build a query string from a JSON object.

Numbers and booleans become strings, arrays become lists and null
drops the key.

Example:
  urlkit query build '{"a":{"b":[1,2]},"c":null}'   # a[b][]=1&a[b][]=2`,
	Args: cobra.ExactArgs(1),
	RunE: runQueryBuild,
}

var queryFilterCmd = &cobra.Command{
	Use:   "filter <query>",
	Short: "Drop empty values and empty nested maps",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryFilter,
}

var queryDiffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Show the key=value pairs of a missing from b",
	Args:  cobra.ExactArgs(2),
	RunE:  runQueryDiff,
}

var queryFlattenCmd = &cobra.Command{
	Use:   "flatten <query>",
	Short: "List the key=value tokens of a normalized query",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryFlatten,
}

var queryUnflattenCmd = &cobra.Command{
	Use:   "unflatten <token>...",
	Short: "Build a normalized query from key=value tokens",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQueryUnflatten,
}

var queryTrackingCmd = &cobra.Command{
	Use:   "tracking <query>",
	Short: "Split utm_* and click id parameters from the rest",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryTracking,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(
		queryNormalizeCmd,
		queryParseCmd,
		queryBuildCmd,
		queryFilterCmd,
		queryDiffCmd,
		queryFlattenCmd,
		queryUnflattenCmd,
		queryTrackingCmd,
	)
	queryDiffCmd.Flags().BoolVar(&queryIgnoreCase, "ignore-case", false, "compare values case-insensitively (default from query.ignore_case)")
}

type queryResult struct {
	Query string       `json:"query"`
	Value *query.Query `json:"value"`
}

func newQueryResult(q *query.Query) queryResult {
	return queryResult{Query: query.Build(q), Value: q}
}

func renderQuery(cmd *cobra.Command, q *query.Query) error {
	res := newQueryResult(q)
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.List([]string{res.Query})
	})
}

func runQueryNormalize(cmd *cobra.Command, args []string) error {
	return renderQuery(cmd, query.NormalizeString(args[0]))
}

func runQueryParse(cmd *cobra.Command, args []string) error {
	q := query.Parse(args[0])
	res := newQueryResult(q)
	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.List(query.Flatten(q))
	})
}

func runQueryBuild(cmd *cobra.Command, args []string) error {
	var m map[string]any
	if err := json.Unmarshal([]byte(args[0]), &m); err != nil {
		return fmt.Errorf("%w: expected a JSON object: %w", entity.ErrInvalidArgument, err)
	}
	return renderQuery(cmd, query.FromMap(m))
}

func runQueryFilter(cmd *cobra.Command, args []string) error {
	return renderQuery(cmd, query.Filter(query.Parse(args[0])))
}

func runQueryDiff(cmd *cobra.Command, args []string) error {
	var opts []query.DiffOption
	if flagBool(cmd, "ignore-case", GetApp().Config.Query.IgnoreCase) {
		opts = append(opts, query.IgnoreCase())
	}

	a := query.NormalizeString(args[0])
	b := query.NormalizeString(args[1])
	return renderQuery(cmd, query.Diff(a, b, opts...))
}

func runQueryFlatten(cmd *cobra.Command, args []string) error {
	tokens := query.Flatten(query.NormalizeString(args[0]))
	if tokens == nil {
		tokens = []string{}
	}
	return render(cmd, tokens, func(r *styles.ResultRenderer) string {
		return r.List(tokens)
	})
}

func runQueryUnflatten(cmd *cobra.Command, args []string) error {
	return renderQuery(cmd, query.Unflatten(args))
}

type trackingResult struct {
	Rest     queryResult `json:"rest"`
	Tracking queryResult `json:"tracking"`
}

func runQueryTracking(cmd *cobra.Command, args []string) error {
	rest, tracking := query.ExtractTracking(query.NormalizeString(args[0]))
	res := trackingResult{Rest: newQueryResult(rest), Tracking: newQueryResult(tracking)}

	return render(cmd, res, func(r *styles.ResultRenderer) string {
		return r.Fields([]styles.Field{
			{Key: "rest", Value: res.Rest.Query},
			{Key: "tracking", Value: res.Tracking.Query},
		})
	})
}
