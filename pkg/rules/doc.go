// Package rules holds the static rename tables that drive a conversion.
//
// A RuleSet is built once from a Definition (usually decoded from the
// embedded defaults by pkg/config) and is read-only afterwards, so a
// single value can be shared by concurrent conversions.
//
// # Tables
//
//   - path prefix renames: texture directories that moved, e.g.
//     assets/minecraft/textures/blocks/ to assets/minecraft/textures/block/
//   - file renames: texture file names that changed, e.g.
//     stone_granite.png to granite.png
//   - sound event renames: keys of sounds.json that changed
//   - block and item namespaces: the substrings rewritten inside model
//     and blockstate references (blocks/ to block/, items/ to item/)
//   - required new assets: textures the target version introduced; only
//     reported, never fetched
//
// Tables are ordered. Renames are applied in the order they are declared,
// which keeps the output of a conversion reproducible.
//
// # Configuration
//
// Tables are arrays of tables so that dotted keys such as sound events
// survive the configuration loader:
//
//	[[rules.file_renames]]
//	from = "stone_granite.png"
//	to = "granite.png"
//
//	[[rules.sound_event_renames]]
//	from = "block.wood.break"
//	to = "block.wood.destroy"
package rules
