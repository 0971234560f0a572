// Package summary turns conversion results and errors into the neutral
// values every renderer draws from. It holds no styling of its own.
package summary

import (
	stderrors "errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/packmapper/pkg/convert"
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/passes"
)

// Row is one line of the per-pass table
type Row struct {
	Pass      string
	Created   int
	Moved     int
	Renamed   int
	Rewritten int
	Warnings  int
}

// Rows returns one row per pass, in pipeline order
func Rows(result *convert.RunResult) []Row {
	rows := make([]Row, 0, len(result.Reports))
	for _, r := range result.Reports {
		rows = append(rows, Row{
			Pass:      r.Pass,
			Created:   r.Created,
			Moved:     r.Moved,
			Renamed:   r.Renamed,
			Rewritten: r.Rewritten,
			Warnings:  len(r.Warnings),
		})
	}
	return rows
}

// Counts describes the non-zero counters of a row, such as "moved 3, renamed 1"
func (r Row) Counts() string {
	var parts []string
	add := func(label string, n int) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", label, n))
		}
	}
	add("created", r.Created)
	add("moved", r.Moved)
	add("renamed", r.Renamed)
	add("rewritten", r.Rewritten)
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// PassWarning is a warning tagged with the pass that raised it
type PassWarning struct {
	Pass string
	passes.Warning
}

// Warnings flattens the warnings of every pass
func Warnings(result *convert.RunResult) []PassWarning {
	var out []PassWarning
	for _, r := range result.Reports {
		for _, w := range r.Warnings {
			out = append(out, PassWarning{Pass: r.Pass, Warning: w})
		}
	}
	return out
}

// Headline is the first line of a run summary
func Headline(result *convert.RunResult) string {
	return fmt.Sprintf("Converted %s to %s", result.Input, result.Output)
}

// AdvisoryHint points at the assets a converted pack still lacks
func AdvisoryHint(result *convert.RunResult) string {
	n := len(result.RequiredNewAssets)
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d textures added to the game since 1.12.2 are not in the pack and will use the defaults. Run `packmapper advisory` to list them.", n)
}

// Advisory lists the textures a converted pack does not provide
type Advisory struct {
	Assets []string `json:"required_new_assets"`
}

// Groups returns the assets keyed by their directory, with sorted keys
func (a *Advisory) Groups() ([]string, map[string][]string) {
	groups := make(map[string][]string)
	for _, asset := range a.Assets {
		dir := path.Dir(asset)
		groups[dir] = append(groups[dir], path.Base(asset))
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}

// Markdown renders the advisory as a markdown document
func (a *Advisory) Markdown() string {
	var b strings.Builder
	b.WriteString("# Textures to add\n\n")
	if len(a.Assets) == 0 {
		b.WriteString("The rule set lists no new textures.\n")
		return b.String()
	}
	b.WriteString("These textures appeared after 1.12.2. Converted packs do not contain them, so the game shows its own versions.\n")

	keys, groups := a.Groups()
	for _, dir := range keys {
		fmt.Fprintf(&b, "\n## %s (%d)\n\n", dir, len(groups[dir]))
		for _, name := range groups[dir] {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
	}
	return b.String()
}

// Diagnostic is an error broken down for display
type Diagnostic struct {
	Code    errors.ErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Cause   string                 `json:"cause,omitempty"`
	Chain   []string               `json:"chain,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Diagnose breaks err into its code, message and wrapped chain
func Diagnose(err error) Diagnostic {
	d := Diagnostic{
		Code:    errors.GetErrorCode(err),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}

	var packErr *errors.PackError
	if stderrors.As(err, &packErr) {
		d.Message = packErr.Message
	}

	// The cause is the innermost coded link, so the fatal category stays
	// visible, followed by the error it wraps, if any
	var inner, leaf string
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		pe, ok := e.(*errors.PackError)
		if !ok {
			leaf = e.Error()
			d.Chain = append(d.Chain, leaf)
			break
		}
		link := fmt.Sprintf("[%s] %s", pe.Code, pe.Message)
		if len(d.Chain) > 0 {
			inner = link
		}
		d.Chain = append(d.Chain, link)
	}
	switch {
	case len(d.Chain) < 2:
	case inner != "" && leaf != "":
		d.Cause = inner + ": " + leaf
	case inner != "":
		d.Cause = inner
	default:
		d.Cause = leaf
	}
	return d
}

// Headline is the one-line form of the diagnostic
func (d Diagnostic) Headline() string {
	line := fmt.Sprintf("[%s] %s", d.Code, d.Message)
	if d.Cause != "" {
		line += ": " + d.Cause
	}
	return line
}

// DetailLines returns the details as sorted "key: value" lines
func (d Diagnostic) DetailLines() []string {
	keys := make([]string, 0, len(d.Details))
	for k := range d.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, d.Details[k]))
	}
	return lines
}
