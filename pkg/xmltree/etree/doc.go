// Package etree registers an [xmltree.Backend] built on
// [github.com/beevik/etree] at the native tier.
//
// Import it for its side effect:
//
//	import _ "github.com/matzehuels/depdot/pkg/xmltree/etree"
//
// Build with the xmltree_noetree tag to leave the backend out.
package etree
