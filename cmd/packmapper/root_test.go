// cmd/packmapper/root_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem (t.TempDir), environment variables
// PURPOSE: Test the command line from arguments to exit code

package packmapper

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packmapper/pkg/config"
	"github.com/arthur-debert/packmapper/pkg/testutil"
)

type runOutput struct {
	code   int
	stdout string
	stderr string
}

// run executes the command line with the user config and log file
// redirected into temp dirs
func run(t *testing.T, args ...string) runOutput {
	t.Helper()
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return runOutput{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func samplePack(t *testing.T) *testutil.TestPack {
	t.Helper()
	pack := testutil.SetupTestPack(t)
	pack.AddTexture(t, "assets/minecraft/textures/blocks/stone_granite.png")
	pack.AddFile(t, "assets/minecraft/models/block/granite.json", `{"textures": {"all": "blocks/stone_granite"}}`)
	return pack
}

func TestConvert_JSONSummary(t *testing.T) {
	pack := samplePack(t)
	output := filepath.Join(t.TempDir(), "out.zip")

	out := run(t, "--format", "json", pack.Dir, output)
	require.Equal(t, ExitOK, out.code, out.stderr)
	assert.FileExists(t, output)

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &summary))
	assert.Equal(t, "archive", summary["output_kind"])
	assert.Equal(t, output, summary["output"])
	assert.Len(t, summary["reports"], 5)
}

func TestConvert_TextSummaryAndFlagOverrides(t *testing.T) {
	pack := samplePack(t)
	output := filepath.Join(t.TempDir(), "out")

	out := run(t, "--format", "text", "--target-format", "57", "--description", "Flag pack", pack.Dir, output)
	require.Equal(t, ExitOK, out.code, out.stderr)

	assert.Contains(t, out.stdout, "Converted "+pack.Dir+" to "+output)
	assert.Contains(t, out.stdout, "textures     moved 1, renamed 1")
	assert.Contains(t, out.stdout, "packmapper advisory")

	meta, err := os.ReadFile(filepath.Join(output, "pack.mcmeta"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"pack_format": 57`)
	assert.Contains(t, string(meta), `"description": "Flag pack"`)
}

func TestConvert_ConfigFile(t *testing.T) {
	pack := samplePack(t)
	output := filepath.Join(t.TempDir(), "out")
	cfgFile := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("rules:\n  target:\n    format: 60\n"), 0644))

	out := run(t, "--config", cfgFile, "--format", "text", pack.Dir, output)
	require.Equal(t, ExitOK, out.code, out.stderr)

	meta, err := os.ReadFile(filepath.Join(output, "pack.mcmeta"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"pack_format": 60`)
}

func TestConvert_Failures(t *testing.T) {
	pack := samplePack(t)
	missing := filepath.Join(t.TempDir(), "missing.zip")
	output := filepath.Join(t.TempDir(), "out.zip")

	tests := []struct {
		name     string
		args     []string
		contains []string
		usage    bool
	}{
		{
			name:     "no arguments",
			args:     []string{},
			contains: []string{"[USAGE] expected an input and an output, got 0 argument(s)"},
			usage:    true,
		},
		{
			name:     "one argument",
			args:     []string{pack.Dir},
			contains: []string{"[USAGE]"},
			usage:    true,
		},
		{
			name:     "unknown flag",
			args:     []string{"--bogus", pack.Dir, output},
			contains: []string{"[USAGE] invalid flags"},
			usage:    true,
		},
		{
			name:     "missing input",
			args:     []string{"--format", "text", missing, output},
			contains: []string{"Error: [CONVERSION] conversion failed at acquire: [INPUT] cannot read input " + missing},
		},
		{
			name:     "missing input verbose",
			args:     []string{"-v", "--format", "text", missing, output},
			contains: []string{"caused by [INPUT]", "step: acquire"},
		},
		{
			name:     "output inside input",
			args:     []string{"--format", "text", pack.Dir, filepath.Join(pack.Dir, "out.zip")},
			contains: []string{"[CONVERSION] conversion failed at validate"},
		},
		{
			name:     "unknown output format",
			args:     []string{"--format", "xml", pack.Dir, output},
			contains: []string{"[INVALID_INPUT] unknown format: xml"},
		},
		{
			name:     "missing config file",
			args:     []string{"--format", "text", "--config", missing + ".toml", pack.Dir, output},
			contains: []string{"[CONFIG_LOAD]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, tt.args...)
			assert.Equal(t, ExitFailure, out.code)
			for _, s := range tt.contains {
				assert.Contains(t, out.stderr, s)
			}
			if tt.usage {
				assert.Contains(t, out.stderr, "USAGE:")
			} else {
				assert.NotContains(t, out.stderr, "USAGE:")
			}
		})
	}

	assert.NoFileExists(t, output)
	assert.False(t, pack.Exists("out.zip"))
}

func TestRulesCmd(t *testing.T) {
	out := run(t, "rules")
	require.Equal(t, ExitOK, out.code, out.stderr)
	assert.Contains(t, out.stdout, "[[rules.file_renames]]")
	assert.Contains(t, out.stdout, "stone_granite.png")

	out = run(t, "rules", "--format", "yaml", "--description", "Custom description")
	require.Equal(t, ExitOK, out.code, out.stderr)
	assert.Contains(t, out.stdout, "file_renames:")
	assert.Contains(t, out.stdout, "Custom description")

	out = run(t, "rules", "--format", "json")
	assert.Equal(t, ExitFailure, out.code)
	assert.Contains(t, out.stderr, "[INVALID_INPUT]")
}

func TestRulesCmd_OutputLoadsBack(t *testing.T) {
	out := run(t, "rules", "--target-format", "61")
	require.Equal(t, ExitOK, out.code, out.stderr)

	cfgFile := filepath.Join(t.TempDir(), "exported.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(out.stdout), 0644))

	again := run(t, "rules", "--config", cfgFile)
	require.Equal(t, ExitOK, again.code, again.stderr)
	assert.Equal(t, out.stdout, again.stdout)
}

func TestAdvisoryCmd(t *testing.T) {
	out := run(t, "advisory", "--format", "text")
	require.Equal(t, ExitOK, out.code, out.stderr)
	assert.Contains(t, out.stdout, "# Textures to add")
	assert.Contains(t, out.stdout, "- `trident.png`")

	out = run(t, "advisory", "--format", "json")
	require.Equal(t, ExitOK, out.code, out.stderr)
	var advisory struct {
		Assets []string `json:"required_new_assets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &advisory))
	assert.Len(t, advisory.Assets, 77)
}

func TestPassesCmd(t *testing.T) {
	out := run(t, "passes")
	require.Equal(t, ExitOK, out.code, out.stderr)
	assert.Contains(t, out.stdout, "1. metadata")
	assert.Contains(t, out.stdout, "5. sounds")
	assert.Contains(t, out.stdout, "Renames sound events in the sound definitions")
}

func TestVersionCmd(t *testing.T) {
	out := run(t, "version")
	require.Equal(t, ExitOK, out.code)
	assert.Contains(t, out.stdout, "packmapper version")
}

func TestCompletionCmd(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out := run(t, "completion", shell)
			require.Equal(t, ExitOK, out.code, out.stderr)
			assert.Contains(t, out.stdout, "packmapper")
		})
	}

	out := run(t, "completion", "tcsh")
	assert.Equal(t, ExitFailure, out.code)
}
