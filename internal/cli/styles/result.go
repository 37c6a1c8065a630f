package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labeled value of a result.
type Field struct {
	Key   string
	Value string
}

// ResultRenderer renders command results.
type ResultRenderer struct {
	theme *Theme
}

// NewResultRenderer creates a new result renderer with the given theme.
func NewResultRenderer(theme *Theme) *ResultRenderer {
	return &ResultRenderer{theme: theme}
}

// Fields renders fields as aligned "key  value" lines. Empty values are
// shown as a muted dash.
func (r *ResultRenderer) Fields(fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Key))
	}

	keyStyle := r.theme.Subtle.Width(width)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		val := r.theme.Normal.Render(f.Value)
		if f.Value == "" {
			val = r.theme.Subtle.Render("-")
		}
		lines = append(lines, fmt.Sprintf("%s  %s", keyStyle.Render(f.Key), val))
	}
	return strings.Join(lines, "\n")
}

// List renders one value per line.
func (r *ResultRenderer) List(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = r.theme.Normal.Render(item)
	}
	return strings.Join(lines, "\n")
}

// Mapping renders "from -> to" lines, errors in place of failed targets.
func (r *ResultRenderer) Mapping(from, to []string, errs []error) string {
	arrow := r.theme.Subtle.Render(IconArrow)
	lines := make([]string, len(from))
	for i := range from {
		var target string
		if i < len(errs) && errs[i] != nil {
			target = r.theme.ErrorStyle.Render(errs[i].Error())
		} else {
			target = r.theme.Highlight.Render(to[i])
		}
		lines[i] = fmt.Sprintf("%s %s %s", r.theme.Normal.Render(from[i]), arrow, target)
	}
	return strings.Join(lines, "\n")
}

// Verdict renders a yes/no answer.
func (r *ResultRenderer) Verdict(label string, ok bool) string {
	if ok {
		return fmt.Sprintf("%s %s", r.theme.SuccessStyle.Render(IconCheck), r.theme.Normal.Render(label))
	}
	return fmt.Sprintf("%s %s", r.theme.ErrorStyle.Render(IconX), r.theme.Normal.Render(label))
}

// Section renders a title above body.
func (r *ResultRenderer) Section(title, body string) string {
	return r.theme.Title.Render(title) + "\n" + body
}

// Summary renders a muted count line like "3 unique, 1 duplicate".
func (r *ResultRenderer) Summary(parts ...string) string {
	return r.theme.Subtle.Render(strings.Join(parts, ", "))
}

// Warning renders a warning line.
func (r *ResultRenderer) Warning(msg string) string {
	return fmt.Sprintf("%s %s", r.theme.WarningStyle.Render(IconWarning), r.theme.WarningStyle.Render(msg))
}

// Error renders an error line.
func (r *ResultRenderer) Error(err error) string {
	return fmt.Sprintf("%s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// ConfigPath renders the active config file, or a note that defaults are
// in use.
func (r *ResultRenderer) ConfigPath(path string) string {
	icon := r.theme.Renderer().NewStyle().Foreground(r.theme.Accent).Render(IconConfig)
	if path == "" {
		return fmt.Sprintf("%s %s", icon, r.theme.Subtle.Render("no config file, using defaults"))
	}
	return fmt.Sprintf("%s %s", icon, r.theme.Subtle.Render(path))
}
