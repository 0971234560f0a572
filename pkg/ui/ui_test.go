// pkg/ui/ui_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test renderer selection and the output of each renderer

package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packmapper/pkg/convert"
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/passes"
	"github.com/arthur-debert/packmapper/pkg/ui"
	uijson "github.com/arthur-debert/packmapper/pkg/ui/json"
	"github.com/arthur-debert/packmapper/pkg/ui/summary"
	"github.com/arthur-debert/packmapper/pkg/ui/terminal"
	"github.com/arthur-debert/packmapper/pkg/ui/text"
)

func sampleResult() *convert.RunResult {
	metadata := passes.NewReport(passes.MetadataPassName)
	metadata.Created = 1
	textures := passes.NewReport(passes.TexturePassName)
	textures.Moved = 12
	textures.Renamed = 2
	models := passes.NewReport(passes.ModelPassName)
	models.Rewritten = 3
	models.Warnings = append(models.Warnings, passes.Warning{
		Path:   "assets/minecraft/models/block/broken.json",
		Reason: "unexpected end of JSON input",
	})

	return &convert.RunResult{
		RunID:             "run-1",
		Input:             "old.zip",
		Output:            "new.zip",
		OutputKind:        convert.OutputArchive,
		OutputBytes:       2048,
		Duration:          1500 * time.Millisecond,
		Reports:           []*passes.Report{metadata, textures, models},
		RequiredNewAssets: []string{"block/bamboo.png", "item/trident.png"},
	}
}

func sampleError() error {
	cause := errors.New(errors.ErrMalformedMetadata, "pack.mcmeta is malformed")
	return errors.Wrap(cause, errors.ErrConversion, "conversion failed at metadata").
		WithDetail("step", "metadata").
		WithDetail("input", "old.zip")
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		format   ui.Format
		expected interface{}
	}{
		{ui.FormatAuto, &terminal.Renderer{}},
		{ui.FormatTerminal, &terminal.Renderer{}},
		{ui.FormatText, &text.Renderer{}},
		{ui.FormatJSON, &uijson.Renderer{}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(tt.format, &buf, ui.Options{})
			require.NoError(t, err)
			assert.IsType(t, tt.expected, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(42), &buf, ui.Options{})
	assert.Error(t, err)
}

func TestTextRenderer_Run(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, text.New(&buf, false).RenderResult(sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Converted old.zip to new.zip (archive, 2.0 kB) in 1.5s")
	assert.Contains(t, out, "metadata     created 1")
	assert.Contains(t, out, "textures     moved 12, renamed 2")
	assert.Contains(t, out, "1 warning, left untouched:")
	assert.Contains(t, out, "models: assets/minecraft/models/block/broken.json: unexpected end of JSON input")
	assert.Contains(t, out, "2 textures added to the game since 1.12.2")
}

func TestTextRenderer_Error(t *testing.T) {
	var quiet, verbose bytes.Buffer
	require.NoError(t, text.New(&quiet, false).RenderError(sampleError()))
	require.NoError(t, text.New(&verbose, true).RenderError(sampleError()))

	assert.Equal(t,
		"Error: [CONVERSION] conversion failed at metadata: [MALFORMED_METADATA] pack.mcmeta is malformed\n",
		quiet.String())
	assert.Contains(t, verbose.String(), "caused by [MALFORMED_METADATA] pack.mcmeta is malformed")
	assert.Contains(t, verbose.String(), "  input: old.zip\n  step: metadata\n")
}

func TestTextRenderer_Advisory(t *testing.T) {
	var buf bytes.Buffer
	advisory := &summary.Advisory{Assets: sampleResult().RequiredNewAssets}
	require.NoError(t, text.New(&buf, false).RenderResult(advisory))

	assert.Contains(t, buf.String(), "## block (1)")
	assert.Contains(t, buf.String(), "- `trident.png`")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := uijson.New(&buf)
	require.NoError(t, r.RenderResult(sampleResult()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, "archive", decoded["output_kind"])
	assert.Len(t, decoded["reports"], 3)

	buf.Reset()
	require.NoError(t, r.RenderError(sampleError()))
	var errOut struct {
		Error summary.Diagnostic `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &errOut))
	assert.Equal(t, errors.ErrConversion, errOut.Error.Code)
	assert.Equal(t, "[MALFORMED_METADATA] pack.mcmeta is malformed", errOut.Error.Cause)
	assert.Equal(t, "metadata", errOut.Error.Details["step"])

	buf.Reset()
	require.NoError(t, r.RenderMessage("hello"))
	assert.JSONEq(t, `{"message": "hello"}`, buf.String())
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := terminal.New(&buf, true)

	require.NoError(t, r.RenderResult(sampleResult()))
	out := buf.String()
	assert.Contains(t, out, "Converted old.zip to new.zip")
	assert.Contains(t, out, "2.0 kB")
	for _, pass := range []string{"metadata", "textures", "models"} {
		assert.Contains(t, out, pass)
	}
	assert.Contains(t, out, "assets/minecraft/models/block/broken.json")

	buf.Reset()
	require.NoError(t, r.RenderError(sampleError()))
	assert.Contains(t, buf.String(), "[CONVERSION] conversion failed at metadata")
	assert.Contains(t, buf.String(), "step: metadata")

	buf.Reset()
	require.NoError(t, r.RenderResult(&summary.Advisory{Assets: []string{"block/bamboo.png"}}))
	assert.Contains(t, buf.String(), "bamboo.png")
}
