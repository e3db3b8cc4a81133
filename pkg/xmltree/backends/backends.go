// Package backends links every optional xmltree backend into the binary.
//
//	import _ "github.com/matzehuels/depdot/pkg/xmltree/backends"
//
// Individual backends can still be compiled out with their build tags.
package backends

import (
	_ "github.com/matzehuels/depdot/pkg/xmltree/etree"
	_ "github.com/matzehuels/depdot/pkg/xmltree/xmlquery"
)
