// Package xmltree gives depdot one XML tree API over several parser
// libraries.
//
// # Backends
//
// A [Backend] parses a document into an [Element] tree and writes one back.
// Backends are ranked by [Tier]:
//
//	TierNative       github.com/beevik/etree        (xmltree/etree)
//	TierAccelerated  -
//	TierLegacy       github.com/antchfx/xmlquery    (xmltree/xmlquery)
//	TierStdlib       -
//	TierBundled      encoding/xml, always present   (this package)
//
// Backend packages register themselves from init. Blank-import
// xmltree/backends to link them all; build tags xmltree_noetree and
// xmltree_noxmlquery drop individual ones.
//
// # Selection
//
// [Default] binds the best registered backend on first use and keeps it for
// the life of the process. Registering after that point panics. Tests and
// tools that need their own ranking can build a [Selector].
//
// # Escaping
//
// [Escape] is the minimal text escaper: &, < and > only, in that order, with
// no rescanning. [EscapeAttr] also handles double quotes. [Encode] is the
// serializer shared by backends that have no writer of their own.
package xmltree
