// Package paths provides centralized path handling for packmapper.
//
// A Layout names the fixed on-disk conventions of a resource pack: the
// metadata descriptor, the texture, model and blockstate roots, the sound
// definitions file and the extensions the passes look for. Every path in
// a Layout is relative to the pack root and uses forward slashes, the same
// way archive entry names do; Join converts them for the host filesystem.
package paths
