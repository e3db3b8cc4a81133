// Package io reads and writes resolver graphs as JSON or TOML files.
//
// # Format
//
// Both formats hold two ordered lists. In JSON:
//
//	{
//	  "atoms": [
//	    {"atom": ">=dev-libs/foo-1", "parents": ["app-misc/root-1"], "matches": ["dev-libs/foo-1.2"]},
//	    {"atom": "dev-libs/missing", "parents": ["app-misc/root-1"]}
//	  ],
//	  "pkgs": [
//	    {"id": "app-misc/root-1"},
//	    {"id": "dev-libs/foo-1.2", "data": {"repo": "gentoo"}}
//	  ]
//	}
//
// and in TOML as [[atoms]] and [[pkgs]] tables with the same keys. An atom
// without matches is unresolved. The "data" value is free-form and carried
// through unchanged; exporters ignore it.
//
// Lists are used instead of objects so that file order becomes graph order
// and DOT output is reproducible.
//
// # Import
//
// [Import] picks the decoder from the file extension:
//
//	g, err := io.Import("world.toml")
//
// [ReadJSON] and [ReadTOML] decode from any reader; [Decode] takes bytes
// already in memory and picks the format from a file name, which lets
// callers hash a file's contents before decoding it. Errors carry codes from
// pkg/errors: FILE_NOT_FOUND, INVALID_INPUT for bad content, INVALID_FORMAT
// for an unknown extension.
//
// # Export
//
// [WriteJSON] output is indented and deterministic for a given graph, which
// the pipeline relies on when hashing graphs for cache keys.
package io
