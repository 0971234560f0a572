// Package filesystem provides the filesystem abstraction used by packmapper.
//
// Every pass and the assembler work against the FS interface. The
// production implementation is backed by afero's OS filesystem; input
// packs are read through a read-only view so a conversion can never
// modify its source.
package filesystem
