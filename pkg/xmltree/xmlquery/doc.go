// Package xmlquery registers an [xmltree.Backend] built on
// [github.com/antchfx/xmlquery] at the legacy tier.
//
// Build with the xmltree_noxmlquery tag to leave the backend out.
package xmlquery
