// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/arthur-debert/packmapper/pkg/convert"
	"github.com/arthur-debert/packmapper/pkg/ui/summary"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output  io.Writer
	verbose bool
}

// New creates a new text renderer
func New(output io.Writer, verbose bool) *Renderer {
	return &Renderer{output: output, verbose: verbose}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *convert.RunResult:
		return r.renderRun(v)
	case *summary.Advisory:
		// Markdown is readable as it is
		_, err := io.WriteString(r.output, v.Markdown())
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderRun(result *convert.RunResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s) in %s\n",
		summary.Headline(result),
		result.OutputKind,
		humanize.Bytes(uint64(result.OutputBytes)),
		result.Duration.Round(time.Millisecond))

	for _, row := range summary.Rows(result) {
		fmt.Fprintf(&b, "  %-12s %s\n", row.Pass, row.Counts())
	}

	if warnings := summary.Warnings(result); len(warnings) > 0 {
		fmt.Fprintf(&b, "\n%d %s, left untouched:\n", len(warnings), plural(len(warnings), "warning"))
		for _, w := range warnings {
			fmt.Fprintf(&b, "  %s: %s: %s\n", w.Pass, w.Path, w.Reason)
		}
	}

	if hint := summary.AdvisoryHint(result); hint != "" {
		fmt.Fprintf(&b, "\n%s\n", hint)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	d := summary.Diagnose(err)
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", d.Headline())
	if r.verbose {
		for _, link := range d.Chain[1:] {
			fmt.Fprintf(&b, "  caused by %s\n", link)
		}
		for _, line := range d.DetailLines() {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
