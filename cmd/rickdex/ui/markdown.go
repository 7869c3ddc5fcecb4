package ui

import (
	"fmt"
	"strings"

	"rickdex/internal/api"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
)

// CharacterMarkdown renders the detail view of a character as markdown.
func CharacterMarkdown(c api.Character) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", c.Name)

	kind := c.Species
	if c.Type != "" {
		kind = fmt.Sprintf("%s (%s)", c.Species, c.Type)
	}

	rows := [][2]string{
		{"Status", c.Status},
		{"Species", kind},
		{"Gender", c.Gender},
		{"Origin", c.Origin.Name},
		{"Location", c.Location.Name},
		{"Episodes", fmt.Sprintf("%d", len(c.Episode))},
	}
	if t, ok := c.CreatedAt(); ok {
		rows = append(rows, [2]string{"Created", humanize.Time(t)})
	}

	sb.WriteString("| Field | Value |\n|---|---|\n")
	for _, r := range rows {
		v := r[1]
		if v == "" {
			v = "unknown"
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", r[0], v)
	}

	if ids := c.EpisodeIDs(); len(ids) > 0 {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(&sb, "\nAppears in episodes %s.\n", strings.Join(parts, ", "))
	}
	return sb.String()
}

// NewRenderer creates a glamour renderer for the given theme name.
// A non-terminal output gets the plain "notty" style.
func NewRenderer(theme string, width int, tty bool) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch {
	case !tty:
		opts = append(opts, glamour.WithStandardStyle("notty"))
	case theme == "light" || theme == "dark":
		opts = append(opts, glamour.WithStandardStyle(theme))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}
	return glamour.NewTermRenderer(opts...)
}

// RenderMarkdown renders md, falling back to the raw text on error.
func RenderMarkdown(r *glamour.TermRenderer, md string) string {
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
