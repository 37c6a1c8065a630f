package styles_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/urlkit/internal/cli/styles"
	"github.com/bnema/urlkit/internal/domain/build"
	"github.com/bnema/urlkit/internal/infrastructure/config"
)

func plainTheme() *styles.Theme {
	return styles.NewTheme(styles.NewRenderer(&bytes.Buffer{}, config.ColorNever))
}

func TestResultRenderer_FieldsAligned(t *testing.T) {
	r := styles.NewResultRenderer(plainTheme())

	out := r.Fields([]styles.Field{
		{Key: "scheme", Value: "https"},
		{Key: "host", Value: "site.ru"},
		{Key: "fragment", Value: ""},
	})

	assert.NotContains(t, out, "\x1b[")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "scheme    https", lines[0])
	assert.Equal(t, "host      site.ru", lines[1])
	assert.Equal(t, "fragment  -", lines[2])
}

func TestResultRenderer_Mapping(t *testing.T) {
	r := styles.NewResultRenderer(plainTheme())

	out := r.Mapping(
		[]string{"a", "b"},
		[]string{"http://x/a", ""},
		[]error{nil, errors.New("bad ref")},
	)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "a "))
	assert.True(t, strings.HasSuffix(lines[0], " http://x/a"))
	assert.True(t, strings.HasSuffix(lines[1], " bad ref"))
}

func TestResultRenderer_Verdict(t *testing.T) {
	r := styles.NewResultRenderer(plainTheme())

	assert.Equal(t, styles.IconCheck+" same site", r.Verdict("same site", true))
	assert.Equal(t, styles.IconX+" same site", r.Verdict("same site", false))
}

func TestResultRenderer_ConfigPath(t *testing.T) {
	r := styles.NewResultRenderer(plainTheme())

	assert.Contains(t, r.ConfigPath(""), "using defaults")
	assert.Contains(t, r.ConfigPath("/etc/urlkit/config.toml"), "/etc/urlkit/config.toml")
}

func TestNewRenderer_ColorAlways(t *testing.T) {
	theme := styles.NewTheme(styles.NewRenderer(&bytes.Buffer{}, config.ColorAlways))
	out := theme.Highlight.Render("x")
	assert.Contains(t, out, "\x1b[")
}

func TestAboutRenderer_Render(t *testing.T) {
	r := styles.NewAboutRenderer(plainTheme())

	out := r.Render(build.Info{Version: "v1.2.3", Commit: "abc123", BuildDate: "2026-01-01", GoVersion: "go1.25.3"})
	for _, want := range []string{"urlkit", "v1.2.3", "abc123", "2026-01-01", "go1.25.3", build.RepoURL()} {
		assert.Contains(t, out, want)
	}
}
