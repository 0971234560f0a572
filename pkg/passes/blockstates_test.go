// pkg/passes/blockstates_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test model reference rewriting in blockstate variants

package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packmapper/pkg/passes"
	"github.com/arthur-debert/packmapper/pkg/testutil"
)

const blockstateRoot = "assets/minecraft/blockstates"

func TestBlockstatePass_RewritesRecordsAndLists(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	pack.AddFile(t, blockstateRoot+"/stone.json", `{
  "variants": {
    "": {
      "model": "blocks/stone"
    },
    "snowy=true": [
      {
        "model": "blocks/stone_snowy",
        "y": 90
      },
      {
        "model": "block/already_new"
      }
    ]
  }
}
`)

	report, err := passes.NewBlockstatePass(testutil.RuleSet(t)).Apply(treeFor(pack))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Rewritten)

	assert.Equal(t, `{
  "variants": {
    "": {
      "model": "block/stone"
    },
    "snowy=true": [
      {
        "model": "block/stone_snowy",
        "y": 90
      },
      {
        "model": "block/already_new"
      }
    ]
  }
}
`, pack.ReadFile(t, blockstateRoot+"/stone.json"))
}

func TestBlockstatePass_OnlyBlockNamespace(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	content := `{"variants": {"": {"model": "items/stick"}}}`
	pack.AddFile(t, blockstateRoot+"/stick.json", content)

	report, err := passes.NewBlockstatePass(testutil.RuleSet(t)).Apply(treeFor(pack))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Rewritten)
	assert.Equal(t, content, pack.ReadFile(t, blockstateRoot+"/stick.json"))
}

func TestBlockstatePass_DiscoversRecursively(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	pack.AddFile(t, blockstateRoot+"/nested/dirt.json", `{"variants": {"": {"model": "blocks/dirt"}}}`)

	report, err := passes.NewBlockstatePass(testutil.RuleSet(t)).Apply(treeFor(pack))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Rewritten)
	assert.Contains(t, pack.ReadFile(t, blockstateRoot+"/nested/dirt.json"), `"model": "block/dirt"`)
}

func TestBlockstatePass_IgnoresMultipartAndOddShapes(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	multipart := `{"multipart": [{"apply": {"model": "blocks/fence_post"}}]}`
	pack.AddFile(t, blockstateRoot+"/fence.json", multipart)
	odd := `{"variants": {"a": "blocks/x", "b": [1, "blocks/y"], "c": {"model": 5}}}`
	pack.AddFile(t, blockstateRoot+"/odd.json", odd)

	report, err := passes.NewBlockstatePass(testutil.RuleSet(t)).Apply(treeFor(pack))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Rewritten)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, multipart, pack.ReadFile(t, blockstateRoot+"/fence.json"))
	assert.Equal(t, odd, pack.ReadFile(t, blockstateRoot+"/odd.json"))
}

func TestBlockstatePass_MalformedFileBecomesWarning(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	broken := `{"variants": {"": {"model": "blocks/dirt"}}`
	pack.AddFile(t, blockstateRoot+"/dirt.json", broken)

	report, err := passes.NewBlockstatePass(testutil.RuleSet(t)).Apply(treeFor(pack))
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, blockstateRoot+"/dirt.json", report.Warnings[0].Path)
	assert.Equal(t, broken, pack.ReadFile(t, blockstateRoot+"/dirt.json"))
}

func TestBlockstatePass_MissingRoot(t *testing.T) {
	pack := testutil.SetupTestPack(t)

	report, err := passes.NewBlockstatePass(testutil.RuleSet(t)).Apply(treeFor(pack))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Changed())
	assert.Empty(t, report.Warnings)
}
