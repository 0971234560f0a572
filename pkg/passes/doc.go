// Package passes implements the rewrite passes that turn an old resource
// pack work tree into the target layout.
//
// A conversion runs the passes returned by Default in order over one
// work tree:
//
//	metadata     writes or updates pack.mcmeta with the target format
//	textures     relocates texture directories and renames texture files
//	models       rewrites texture references inside model definitions
//	blockstates  rewrites model references inside blockstate variants
//	sounds       renames sound event keys in sounds.json
//
// Each pass returns a Report. Files that cannot be read, parsed or
// written become warnings on the report; only the metadata pass can fail
// a conversion. Every pass is idempotent: running it over its own output
// changes nothing.
package passes
