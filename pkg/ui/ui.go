// Package ui renders conversion results, the new-asset advisory and
// errors as styled terminal output, plain text or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/ui/json"
	"github.com/arthur-debert/packmapper/pkg/ui/terminal"
	"github.com/arthur-debert/packmapper/pkg/ui/text"
)

// Renderer is the common interface of all output renderers
type Renderer interface {
	// RenderResult renders a *convert.RunResult or a *summary.Advisory
	RenderResult(result interface{}) error

	// RenderError renders an error, with its chain and details when verbose
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// Options tune every renderer
type Options struct {
	// Verbose adds the wrapped error chain and error details
	Verbose bool
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to terminal output otherwise.
func NewRenderer(format Format, output io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output, opts)
		}
		return NewRenderer(FormatTerminal, output, opts)
	case FormatTerminal:
		return terminal.New(output, opts.Verbose), nil
	case FormatText:
		return text.New(output, opts.Verbose), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
