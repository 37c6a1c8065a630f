// Package styles provides lipgloss-based rendering for urlkit output.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bnema/urlkit/internal/infrastructure/config"
)

// Palette holds the base colors of a theme.
type Palette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
	Border     string
}

// Theme holds lipgloss colors and styles bound to one renderer.
type Theme struct {
	renderer *lipgloss.Renderer

	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	Badge        lipgloss.Style
	Box          lipgloss.Style
}

// DefaultDarkPalette returns hardcoded dark theme colors.
func DefaultDarkPalette() Palette {
	return Palette{
		Background: "#0a0a0b",
		Surface:    "#1a1a1b",
		Text:       "#ffffff",
		Muted:      "#909090",
		Accent:     "#4ade80",
		Border:     "#333333",
	}
}

// NewRenderer returns a renderer for w honoring the configured color mode.
// ColorAuto leaves profile detection to termenv.
func NewRenderer(w io.Writer, mode config.ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	}
	return r
}

// NewTheme creates the default dark theme on r.
func NewTheme(r *lipgloss.Renderer) *Theme {
	return NewThemeFromPalette(r, DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(r *lipgloss.Renderer, p Palette) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := &Theme{
		renderer:   r,
		Background: lipgloss.Color(p.Background),
		Surface:    lipgloss.Color(p.Surface),
		Text:       lipgloss.Color(p.Text),
		Muted:      lipgloss.Color(p.Muted),
		Accent:     lipgloss.Color(p.Accent),
		Border:     lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color(p.Accent),
	}

	t.buildStyles()
	return t
}

func (t *Theme) buildStyles() {
	r := t.renderer

	t.Title = r.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Normal = r.NewStyle().
		Foreground(t.Text)

	t.Subtle = r.NewStyle().
		Foreground(t.Muted)

	t.Highlight = r.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = r.NewStyle().
		Foreground(t.Error)

	t.WarningStyle = r.NewStyle().
		Foreground(t.Warning)

	t.SuccessStyle = r.NewStyle().
		Foreground(t.Success)

	t.Badge = r.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)

	t.Box = r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}

// Renderer returns the lipgloss renderer the theme is bound to.
func (t *Theme) Renderer() *lipgloss.Renderer {
	if t == nil {
		return lipgloss.DefaultRenderer()
	}
	return t.renderer
}
