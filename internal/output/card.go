package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

const plainMarkdownStyle = "notty"

// markdownStyle is the glamour style for cards. Empty means auto-detect.
var markdownStyle = ""

// CardMarkdown returns the markdown for a drawn task card. remaining is the
// number of redraws left, or -1 to omit the line.
func CardMarkdown(t task.Task, remaining int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Name)
	fmt.Fprintf(&b, "| Time | Energy | Priority | Category |\n")
	fmt.Fprintf(&b, "|------|--------|----------|----------|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n\n",
		FormatMinutes(t.Duration), t.Energy, t.Priority, escapeCell(t.Category))
	fmt.Fprintf(&b, "*%s task #%d*\n", t.Kind.String(), t.ID)
	if remaining >= 0 {
		fmt.Fprintf(&b, "\nRedraws left: **%d**\n", remaining)
	}
	return b.String()
}

// RenderMarkdown renders md for a terminal of the given width. It falls back
// to the raw markdown if rendering fails.
func RenderMarkdown(md string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width, 20))} //nolint:mnd // minimum wrap
	if markdownStyle == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(markdownStyle))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// DrawCard writes the rendered card for a drawn task.
func DrawCard(w io.Writer, t task.Task, remaining int) {
	fmt.Fprint(w, RenderMarkdown(CardMarkdown(t, remaining), 60)) //nolint:mnd // card width
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
