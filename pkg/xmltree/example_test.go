package xmltree_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/depdot/pkg/xmltree"
)

func ExampleEscape() {
	fmt.Println(xmltree.Escape("a & b < c > d"))
	fmt.Println(xmltree.Escape("&lt;"))
	fmt.Println(xmltree.Escape(`"quoted"`))
	// Output:
	// a &amp; b &lt; c &gt; d
	// &amp;lt;
	// "quoted"
}

func ExampleEncode() {
	root, _ := xmltree.Bundled().Parse(strings.NewReader(`<use><flag name="ssl">TLS &amp; more</flag></use>`))
	root.Find("flag").Set("default", "on")
	_ = xmltree.Encode(os.Stdout, root)
	fmt.Println()
	// Output:
	// <use><flag name="ssl" default="on">TLS &amp; more</flag></use>
}
