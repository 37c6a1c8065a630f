package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlkit/internal/application/port"
	"github.com/bnema/urlkit/internal/domain/entity"
)

type runResult struct {
	stdout string
	stderr string
}

// resetFlags restores every flag of c and its subcommands to its default,
// since cobra commands are package globals shared between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeWithInput(t *testing.T, stdin string, args ...string) (runResult, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("URLKIT_OUTPUT_COLOR", "never")
	t.Chdir(t.TempDir())

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return runResult{stdout: stdout.String(), stderr: stderr.String()}, err
}

func execute(t *testing.T, args ...string) (runResult, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	res, err := execute(t, append(args, "--json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(res.stdout), v), res.stdout)
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestPathCommands(t *testing.T) {
	t.Run("normalize", func(t *testing.T) {
		res, err := execute(t, "path", "normalize", "/var//www/./site/", "./../")
		require.NoError(t, err)
		assert.Equal(t, []string{"/var/www/site", "./.."}, lines(res.stdout))
	})

	t.Run("normalize url rules", func(t *testing.T) {
		res, err := execute(t, "path", "normalize", "--url", "path/./")
		require.NoError(t, err)
		assert.Equal(t, "path/\n", res.stdout)
	})

	t.Run("info", func(t *testing.T) {
		var got pathResult
		executeJSON(t, &got, "path", "info", "/srv//www/index.html")
		assert.Equal(t, "/srv/www/index.html", got.Path)
		assert.Equal(t, "index.html", got.File)
		assert.Equal(t, "index", got.Name)
		assert.Equal(t, "html", got.Ext)
		assert.True(t, got.Absolute)
	})

	t.Run("parent", func(t *testing.T) {
		res, err := execute(t, "path", "parent", "-n", "2", "/a/b/c")
		require.NoError(t, err)
		assert.Equal(t, "/a\n", res.stdout)
	})

	t.Run("negative levels", func(t *testing.T) {
		_, err := execute(t, "path", "parent", "--levels=-1", "/a/b")
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
	})

	t.Run("child", func(t *testing.T) {
		res, err := execute(t, "path", "child", "/a/b", "../c/./d")
		require.NoError(t, err)
		assert.Equal(t, "/a/c/d\n", res.stdout)
	})

	t.Run("abs", func(t *testing.T) {
		dir := t.TempDir()
		want, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)

		res, err := execute(t, "path", "abs", dir)
		require.NoError(t, err)
		assert.Equal(t, want+"\n", res.stdout)
	})

	t.Run("abs missing", func(t *testing.T) {
		_, err := execute(t, "path", "abs", filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, port.ErrPathNotFound)
	})
}

func TestQueryCommands(t *testing.T) {
	t.Run("normalize", func(t *testing.T) {
		res, err := execute(t, "query", "normalize", "b=2&a[y]=1&a[x]=2")
		require.NoError(t, err)
		assert.Equal(t, "a[x]=2&a[y]=1&b=2\n", res.stdout)
	})

	t.Run("build", func(t *testing.T) {
		var got queryResult
		executeJSON(t, &got, "query", "build", `{"b":1,"a":{"c":[true,"x"]},"d":null}`)
		assert.Equal(t, "a[c][]=true&a[c][]=x&b=1", got.Query)
	})

	t.Run("build rejects non objects", func(t *testing.T) {
		_, err := execute(t, "query", "build", "[1,2]")
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
	})

	t.Run("diff", func(t *testing.T) {
		res, err := execute(t, "query", "diff", "a=1&b=X", "b=x")
		require.NoError(t, err)
		assert.Equal(t, "a=1&b=X\n", res.stdout)

		res, err = execute(t, "query", "diff", "--ignore-case", "a=1&b=X", "b=x")
		require.NoError(t, err)
		assert.Equal(t, "a=1\n", res.stdout)
	})

	t.Run("flatten", func(t *testing.T) {
		var got []string
		executeJSON(t, &got, "query", "flatten", "b=2&a[]=1")
		assert.Equal(t, []string{"a[]=1", "b=2"}, got)
	})

	t.Run("tracking", func(t *testing.T) {
		var got struct {
			Rest     struct{ Query string } `json:"rest"`
			Tracking struct{ Query string } `json:"tracking"`
		}
		executeJSON(t, &got, "query", "tracking", "utm_source=a&id=1&gclid=z")
		assert.Equal(t, "id=1", got.Rest.Query)
		assert.Equal(t, "gclid=z&utm_source=a", got.Tracking.Query)
	})
}

func TestHostCommands(t *testing.T) {
	t.Run("normalize", func(t *testing.T) {
		var got []hostResult
		executeJSON(t, &got, "host", "normalize", "HTTP://Site.RU:8080/path", "xn--80aswg.xn--p1ai")
		require.Len(t, got, 2)
		assert.Equal(t, "site.ru", got[0].Host)
		assert.Equal(t, "сайт.рф", got[1].Host)
	})

	t.Run("normalize ascii", func(t *testing.T) {
		var got []hostResult
		executeJSON(t, &got, "host", "normalize", "--ascii", "сайт.рф")
		require.Len(t, got, 1)
		assert.Equal(t, "xn--80aswg.xn--p1ai", got[0].Host)
	})

	t.Run("errors are reported per host", func(t *testing.T) {
		var got []hostResult
		executeJSON(t, &got, "host", "normalize", "http://[::1", "site.ru")
		require.Len(t, got, 2)
		assert.NotEmpty(t, got[0].Error)
		assert.Equal(t, "site.ru", got[1].Host)
	})

	t.Run("related rejects blank domains", func(t *testing.T) {
		_, err := execute(t, "host", "related", "", "")
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
	})

	t.Run("normalize authority with credentials", func(t *testing.T) {
		var got []hostResult
		executeJSON(t, &got, "host", "normalize", "user:pass@site.ru:8080")
		require.Len(t, got, 1)
		assert.Equal(t, "site.ru", got[0].Host)
		assert.Empty(t, got[0].Error)
	})

	t.Run("subdomain", func(t *testing.T) {
		var got subdomainResult
		executeJSON(t, &got, "host", "subdomain", "a.b.site.ru", "site.ru")
		assert.True(t, got.IsSubdomain)
		assert.Equal(t, "a.b", got.Subdomain)
	})
}

func TestURLCommands(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		var got urlResult
		executeJSON(t, &got, "url", "parse", "HTTP://User@Site.RU:80/a/./b/../c?b=2&a=1#top")
		assert.Equal(t, "http://User@site.ru/a/c?a=1&b=2#top", got.URL)
		assert.Equal(t, "http", got.Scheme)
		assert.Equal(t, "site.ru", got.Host)
		assert.Equal(t, "/a/c", got.Path)
		assert.Equal(t, "top", got.Fragment)
		assert.Equal(t, "/a/c?a=1&b=2", got.RequestURI)
		assert.Equal(t, 80, got.EffectivePort)
		assert.Len(t, got.Fingerprint, 16)
	})

	t.Run("resolve", func(t *testing.T) {
		var got []resolveItem
		executeJSON(t, &got, "url", "resolve", "--base", "https://site.ru/docs/index.html", "../img/a.png", "?page=2")
		require.Len(t, got, 2)
		assert.Equal(t, "https://site.ru/img/a.png", got[0].URL)
		assert.Equal(t, "https://site.ru/docs/index.html?page=2", got[1].URL)
	})

	t.Run("resolve from stdin", func(t *testing.T) {
		res, err := executeWithInput(t, "# refs\nb.html\n\n/c\n",
			"url", "resolve", "--base", "https://site.ru/a/", "--workers", "2", "--json")
		require.NoError(t, err)

		var got []resolveItem
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "https://site.ru/a/b.html", got[0].URL)
		assert.Equal(t, "https://site.ru/c", got[1].URL)
	})

	t.Run("resolve requires base", func(t *testing.T) {
		_, err := execute(t, "url", "resolve", "a")
		assert.Error(t, err)
	})

	t.Run("same site", func(t *testing.T) {
		var got sameSiteResult
		executeJSON(t, &got, "url", "same-site", "http://site.ru/a", "http://www.site.ru/b")
		assert.False(t, got.SameSite)

		executeJSON(t, &got, "url", "same-site", "--subdomains", "http://site.ru/a", "http://www.site.ru/b")
		assert.True(t, got.SameSite)
		assert.True(t, got.Subdomains)
	})

	t.Run("same site defaults from config", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("[same_site]\nsubdomains = true\n"), 0o644))

		var got sameSiteResult
		executeJSON(t, &got, "url", "same-site", "--config", cfgPath, "http://site.ru/a", "http://www.site.ru/b")
		assert.True(t, got.SameSite)
	})

	t.Run("robots", func(t *testing.T) {
		var got []robotsResult
		executeJSON(t, &got, "url", "robots", "https://site.ru/private/a.php", "/private/*.php$", "/public")
		assert.Equal(t, []robotsResult{
			{Mask: "/private/*.php$", Match: true},
			{Mask: "/public", Match: false},
		}, got)
	})

	t.Run("canonical", func(t *testing.T) {
		var got canonicalResult
		executeJSON(t, &got, "url", "canonical", "/item?b=2&a=1&utm_source=mail", "https://shop.ru/item?a=1&b=2")
		assert.True(t, got.NeedsRedirect)
		assert.Equal(t, "https://shop.ru/item?a=1&b=2&utm_source=mail", got.Target)
	})

	t.Run("dedupe", func(t *testing.T) {
		res, err := executeWithInput(t, "https://Site.ru/a/./b\nhttps://site.ru:443/a/b\nhttp://[::1\n",
			"url", "dedupe", "--json")
		require.NoError(t, err)

		var got dedupeResult
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, []string{"https://site.ru/a/b"}, got.Unique)
		assert.Equal(t, 1, got.Duplicates)
		require.Len(t, got.Invalid, 1)
		assert.Equal(t, "http://[::1", got.Invalid[0].Ref)
	})
}

func TestConfigCommands(t *testing.T) {
	t.Run("show toml", func(t *testing.T) {
		res, err := execute(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, res.stdout, "[batch]")
		assert.Contains(t, res.stdout, "[logging]")
		assert.Contains(t, res.stderr, "no config file")
	})

	t.Run("show json", func(t *testing.T) {
		var got map[string]any
		executeJSON(t, &got, "config", "show")
		assert.Contains(t, got, "logging")
		assert.Contains(t, got, "same_site")
	})

	t.Run("schema", func(t *testing.T) {
		res, err := execute(t, "config", "schema")
		require.NoError(t, err)
		assert.Contains(t, res.stdout, `"$defs"`)
	})

	t.Run("init", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "urlkit", "config.toml")

		_, err := execute(t, "config", "init", target)
		require.NoError(t, err)
		assert.FileExists(t, target)

		_, err = execute(t, "config", "init", target)
		assert.ErrorIs(t, err, fs.ErrExist)

		_, err = execute(t, "config", "init", "--force", target)
		assert.NoError(t, err)
	})

	t.Run("invalid explicit config", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("[batch]\nworkers = -3\n"), 0o644))

		_, err := execute(t, "config", "show", "--config", cfgPath)
		assert.ErrorIs(t, err, entity.ErrConfiguration)
	})
}

func TestVersionCommand(t *testing.T) {
	SetBuildInfo(buildInfo)

	var got map[string]any
	executeJSON(t, &got, "version")
	assert.Contains(t, got, "version")
}

func TestGenDocsMarkdown(t *testing.T) {
	out := t.TempDir()

	res, err := execute(t, "gen-docs", "--format", "markdown", "--output", out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "urlkit.md"))
	assert.FileExists(t, filepath.Join(out, "urlkit_url_resolve.md"))
	assert.NotEmpty(t, res.stdout)

	_, err = execute(t, "gen-docs", "--format", "pdf")
	assert.Error(t, err)
}
