package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packmapper/pkg/rules"
)

// TestDefinition returns a small rule table shaped like the production one
func TestDefinition() rules.Definition {
	return rules.Definition{
		Target: rules.Target{Format: 48, Description: "Converted for tests"},
		PathPrefixRenames: []rules.Rename{
			{From: "assets/minecraft/textures/blocks/", To: "assets/minecraft/textures/block/"},
			{From: "assets/minecraft/textures/items/", To: "assets/minecraft/textures/item/"},
		},
		FileRenames: []rules.Rename{
			{From: "stone_granite.png", To: "granite.png"},
			{From: "stone_diorite.png", To: "diorite.png"},
			{From: "fireworks.png", To: "firework_rocket.png"},
		},
		SoundEventRenames: []rules.Rename{
			{From: "block.wood.break", To: "block.wood.destroy"},
			{From: "block.wood.step", To: "block.wood.step"},
		},
		BlockNamespace:    rules.Rename{From: "blocks/", To: "block/"},
		ItemNamespace:     rules.Rename{From: "items/", To: "item/"},
		RequiredNewAssets: []string{"block/bamboo.png", "item/trident.png"},
	}
}

// RuleSet builds the rule set of TestDefinition
func RuleSet(t *testing.T) *rules.RuleSet {
	t.Helper()

	rs, err := rules.New(TestDefinition())
	require.NoError(t, err)
	return rs
}
