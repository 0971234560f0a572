package packmapper

import (
	_ "embed"
	"strings"
)

// Short messages
const (
	MsgRootShort       = "Convert Minecraft resource packs from 1.12.2 to 1.21.1"
	MsgRulesShort      = "Print the effective conversion rules"
	MsgAdvisoryShort   = "List textures a converted pack still lacks"
	MsgPassesShort     = "List the conversion passes in the order they run"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Config file with layout and rule overrides (.toml, .yaml)"
	MsgFlagFormat       = "Output format: auto, term, text or json"
	MsgFlagRulesFormat  = "Output format: toml or yaml"
	MsgFlagTargetFormat = "Pack format to declare in pack.mcmeta"
	MsgFlagDescription  = "Description for a synthesized pack.mcmeta"

	// Errors
	MsgErrArgs = "expected an input and an output, got %d argument(s)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/advisory-long.txt
	msgAdvisoryLongRaw string
	MsgAdvisoryLong    = strings.TrimSpace(msgAdvisoryLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
