package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/packmapper/pkg/errors"
)

// Format selects how results and errors are rendered
type Format int

const (
	// FormatAuto resolves to terminal or text once the output is known
	FormatAuto Format = iota
	// FormatTerminal uses colours, tables and rendered markdown
	FormatTerminal
	// FormatText is plain text, safe for pipes and log files
	FormatText
	// FormatJSON is one JSON document per result
	FormatJSON
)

var formatNames = []string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// aliases accepted on the command line besides the canonical names
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat parses the value of a --format flag, ignoring case
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(s)
	for f, canonical := range formatNames {
		if name == canonical {
			return Format(f), nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for output. NO_COLOR, a pipe or a
// colourless terminal all mean plain text.
func DetectFormat(output *os.File) Format {
	fd := output.Fd()
	switch {
	case os.Getenv("NO_COLOR") != "":
		return FormatText
	case !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd):
		return FormatText
	case termenv.ColorProfile() == termenv.Ascii:
		return FormatText
	}
	return FormatTerminal
}
