// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/packmapper/pkg/convert"
	"github.com/arthur-debert/packmapper/pkg/ui/styles"
	"github.com/arthur-debert/packmapper/pkg/ui/summary"
)

// wordWrap is the width glamour wraps the advisory at
const wordWrap = 80

// Renderer provides styled output for interactive terminals
type Renderer struct {
	output  io.Writer
	verbose bool
}

// New creates a new terminal renderer
func New(output io.Writer, verbose bool) *Renderer {
	return &Renderer{output: output, verbose: verbose}
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *convert.RunResult:
		return r.renderRun(v)
	case *summary.Advisory:
		return r.renderMarkdown(v.Markdown())
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderRun(result *convert.RunResult) error {
	var b strings.Builder

	b.WriteString(styles.Render(styles.Success, "✓ "+summary.Headline(result)))
	b.WriteString("\n")
	b.WriteString(styles.Render(styles.Muted, fmt.Sprintf("%s, %s, %s",
		result.OutputKind,
		humanize.Bytes(uint64(result.OutputBytes)),
		result.Duration.Round(time.Millisecond))))
	b.WriteString("\n\n")

	table, err := passTable(summary.Rows(result))
	if err != nil {
		return err
	}
	b.WriteString(table)

	if warnings := summary.Warnings(result); len(warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Render(styles.Warning, fmt.Sprintf("%d file(s) left untouched:", len(warnings))))
		b.WriteString("\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "  %s %s\n",
				styles.Render(styles.Path, w.Path),
				styles.Render(styles.Muted, "("+w.Pass+") "+w.Reason))
		}
	}

	if hint := summary.AdvisoryHint(result); hint != "" {
		b.WriteString("\n")
		b.WriteString(styles.Render(styles.Muted, hint))
		b.WriteString("\n")
	}

	_, err = io.WriteString(r.output, b.String())
	return err
}

func passTable(rows []summary.Row) (string, error) {
	data := pterm.TableData{{"Pass", "Created", "Moved", "Renamed", "Rewritten", "Warnings"}}
	for _, row := range rows {
		data = append(data, []string{
			row.Pass,
			strconv.Itoa(row.Created),
			strconv.Itoa(row.Moved),
			strconv.Itoa(row.Renamed),
			strconv.Itoa(row.Rewritten),
			strconv.Itoa(row.Warnings),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render pass table: %w", err)
	}
	return out + "\n", nil
}

// renderMarkdown renders with glamour, falling back to the raw markdown
func (r *Renderer) renderMarkdown(md string) error {
	out := md
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err == nil {
		if rendered, err := renderer.Render(md); err == nil {
			out = rendered
		}
	}
	_, err = io.WriteString(r.output, out)
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	d := summary.Diagnose(err)
	var b strings.Builder
	b.WriteString(styles.Render(styles.Error, "Error: "+d.Headline()))
	b.WriteString("\n")
	if r.verbose {
		for _, link := range d.Chain[1:] {
			b.WriteString(styles.Render(styles.Detail, "caused by "+link))
			b.WriteString("\n")
		}
		for _, line := range d.DetailLines() {
			b.WriteString(styles.Render(styles.Detail, line))
			b.WriteString("\n")
		}
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render(styles.Header, msg))
	return err
}
